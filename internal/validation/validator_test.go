package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type size int

func (s size) Valid() bool { return s >= 0 && s < 3 }

type sample struct {
	Name string `validate:"required,max=5"`
	Size size   `validate:"enum"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		wantFields []string
		input      sample
	}{
		{name: "valid", input: sample{Name: "abc", Size: 2}},
		{name: "missing name", input: sample{Size: 1}, wantFields: []string{"Name"}},
		{name: "name too long", input: sample{Name: "abcdef", Size: 1}, wantFields: []string{"Name"}},
		{name: "enum out of range", input: sample{Name: "a", Size: 3}, wantFields: []string{"Size"}},
		{name: "both invalid", input: sample{Size: -1}, wantFields: []string{"Name", "Size"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.True(t, verr.Has(f), "expected %s to fail", f)
			}
		})
	}
}

func TestStruct_Messages(t *testing.T) {
	err := Struct(sample{Name: "abcdef", Size: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name must be at most 5 characters")
	assert.Contains(t, err.Error(), "Size has an unknown value 7")
}
