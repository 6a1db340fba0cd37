package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/whattodo/internal/match"
	"github.com/Veraticus/whattodo/internal/model"
)

const maxNotesWidth = 40

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// FormatModes renders modes as "priceRange=inclusive weather=inclusive ...".
func FormatModes(m match.Modes) string {
	parts := make([]string, 0, model.FieldCount)
	for _, f := range model.Fields() {
		parts = append(parts, f.Name()+"="+m.Mode(f).String())
	}
	return strings.Join(parts, " ")
}

// WriteActivities renders activities as a plain table. Long notes are cut short.
func WriteActivities(w io.Writer, activities []model.Activity) error {
	if len(activities) == 0 {
		_, err := fmt.Fprintln(w, "No activities saved yet.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tWEATHER\tTIME\tPEOPLE\tNOTES")
	for _, a := range activities {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Price, a.Weather, a.Time, a.People, truncate(a.Notes, maxNotesWidth))
	}
	return tw.Flush()
}

// WriteRanking renders a ranking best match first. limit <= 0 shows every result.
func WriteRanking(w io.Writer, r match.Ranking, limit int) error {
	if _, err := fmt.Fprintf(w, "Filter: %s\nModes:  %s\n\n", r.Selection, FormatModes(r.Modes)); err != nil {
		return err
	}
	if r.Len() == 0 {
		_, err := fmt.Fprintln(w, "No activities saved yet.")
		return err
	}

	results := r.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tSCORE\tID\tNAME\tPRICE\tWEATHER\tTIME\tPEOPLE\tMISMATCHES")
	for i, res := range results {
		a := res.Activity
		mismatches := "-"
		if names := res.MismatchNames(); len(names) > 0 {
			mismatches = strings.Join(names, ",")
		}
		fmt.Fprintf(tw, "%d\t%d/%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, res.Score, match.MaxScore, a.ID, a.Name, a.Price, a.Weather, a.Time, a.People, mismatches)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if hidden := r.Len() - len(results); hidden > 0 {
		_, err := fmt.Fprintf(w, "... and %d more\n", hidden)
		return err
	}
	return nil
}

func truncate(s string, width int) string {
	if s == "" {
		return "-"
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
