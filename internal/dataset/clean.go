package dataset

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"1/2/2006", "2006-01-02"}

const timeLayout = "15:04:05"

// Summary is the cleaning diagnostic: how many rows came in, how many
// survived, and why the rest were dropped. It is for human inspection only;
// nothing downstream consumes it.
type Summary struct {
	RawRows        int
	Kept           int
	BadDate        int
	BadTime        int
	UnknownBorough int
	MissingField   int
}

// Dropped is the total number of removed rows.
func (s Summary) Dropped() int {
	return s.BadDate + s.BadTime + s.UnknownBorough + s.MissingField
}

// Markdown renders the summary as a compact report section.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("## Cleaning summary\n\n")
	fmt.Fprintf(&b, "- Raw rows: %d\n", s.RawRows)
	fmt.Fprintf(&b, "- Kept: %d\n", s.Kept)
	fmt.Fprintf(&b, "- Dropped: %d\n", s.Dropped())
	if s.Dropped() > 0 {
		fmt.Fprintf(&b, "  - unparsable date: %d\n", s.BadDate)
		fmt.Fprintf(&b, "  - unparsable time: %d\n", s.BadTime)
		fmt.Fprintf(&b, "  - unknown borough: %d\n", s.UnknownBorough)
		fmt.Fprintf(&b, "  - missing field: %d\n", s.MissingField)
	}
	return b.String()
}

// Clean turns the raw table into typed incident records. Irrelevant columns
// are ignored entirely; a row with an unparsable date or time, an unknown
// borough, or a missing value in any retained field is dropped and tallied.
// The input is never mutated and the output has no missing values.
func Clean(raw *RawTable) ([]Incident, Summary) {
	dateIdx, _ := raw.Column(ColOccurDate)
	timeIdx, _ := raw.Column(ColOccurTime)
	boroIdx, _ := raw.Column(ColBorough)
	precIdx, _ := raw.Column(ColPrecinct)
	perpIdx, _ := raw.Column(ColPerpAgeGroup)
	vicIdx, _ := raw.Column(ColVicAgeGroup)

	sum := Summary{RawRows: len(raw.Rows)}
	out := make([]Incident, 0, len(raw.Rows))

	for _, rec := range raw.Rows {
		date, ok := parseDate(rec[dateIdx])
		if !ok {
			sum.BadDate++
			continue
		}
		tod, ok := parseTimeOfDay(rec[timeIdx])
		if !ok {
			sum.BadTime++
			continue
		}
		if isMissing(rec[boroIdx]) {
			sum.MissingField++
			continue
		}
		boro, ok := ParseBorough(rec[boroIdx])
		if !ok {
			sum.UnknownBorough++
			continue
		}
		precinct := strings.TrimSpace(rec[precIdx])
		if isMissing(precinct) {
			sum.MissingField++
			continue
		}
		perp, ok := parseAge(rec[perpIdx])
		if !ok {
			sum.MissingField++
			continue
		}
		vic, ok := parseAge(rec[vicIdx])
		if !ok {
			sum.MissingField++
			continue
		}

		out = append(out, Incident{
			Date:      date,
			TimeOfDay: tod,
			Borough:   boro,
			Precinct:  precinct,
			PerpAge:   perp,
			VicAge:    vic,
		})
	}
	sum.Kept = len(out)
	return out, sum
}

// isMissing reports whether a raw value is one of the export's placeholder
// markers for absent data.
func isMissing(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", "(NULL)", "NULL", "NA", "N/A":
		return true
	}
	return false
}

func parseDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseTimeOfDay(s string) (time.Duration, bool) {
	v := strings.TrimSpace(s)
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, true
}

func parseAge(s string) (AgeGroup, bool) {
	if isMissing(s) {
		return "", false
	}
	// "UNKNOWN" and the occasional junk code (e.g. "1020") are missing data,
	// not categories.
	return ParseAgeGroup(s)
}
