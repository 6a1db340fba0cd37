package match

import (
	"testing"

	"github.com/Veraticus/whattodo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_Exhaustive(t *testing.T) {
	for _, f := range model.Fields() {
		for rec := 0; rec < f.Cardinality(); rec++ {
			for flt := 0; flt < f.Cardinality(); flt++ {
				r, v := model.Ordinal(rec), model.Ordinal(flt)

				assert.Equal(t, rec <= flt, Matches(f, Inclusive, r, v),
					"%s inclusive record=%d filter=%d", f, rec, flt)
				assert.Equal(t, rec == flt, Matches(f, Exclusive, r, v),
					"%s exclusive record=%d filter=%d", f, rec, flt)
			}
			assert.True(t, Matches(f, Inclusive, model.Ordinal(rec), model.Unset))
			assert.True(t, Matches(f, Exclusive, model.Ordinal(rec), model.Unset))
		}
	}
}

func TestMatches_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		record model.Ordinal
		filter model.Ordinal
		want   bool
	}{
		{name: "inclusive equal", mode: Inclusive, record: 2, filter: 2, want: true},
		{name: "inclusive one below", mode: Inclusive, record: 1, filter: 2, want: true},
		{name: "inclusive one above", mode: Inclusive, record: 3, filter: 2, want: false},
		{name: "inclusive lowest filter", mode: Inclusive, record: 0, filter: 0, want: true},
		{name: "exclusive one below", mode: Exclusive, record: 1, filter: 2, want: false},
		{name: "exclusive one above", mode: Exclusive, record: 3, filter: 2, want: false},
		{name: "unknown mode", mode: Mode(7), record: 0, filter: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(model.FieldPrice, tt.mode, tt.record, tt.filter))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Inclusive")
	require.NoError(t, err)
	assert.Equal(t, Inclusive, m)

	m, err = ParseMode(" exclusive ")
	require.NoError(t, err)
	assert.Equal(t, Exclusive, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)

	assert.Equal(t, "inclusive", Inclusive.String())
	assert.Equal(t, "exclusive", Exclusive.String())
	assert.False(t, Mode(2).Valid())
}
