package dataset

import (
	"strings"
	"time"
)

// Column names as published in the NYC Open Data CSV export. Header mapping
// is by name, so column order and the extra descriptive columns (coordinates,
// jurisdiction code, location description, ...) don't matter; anything not
// listed here is dropped on load.
const (
	ColOccurDate    = "OCCUR_DATE"
	ColOccurTime    = "OCCUR_TIME"
	ColBorough      = "BORO"
	ColPrecinct     = "PRECINCT"
	ColPerpAgeGroup = "PERP_AGE_GROUP"
	ColVicAgeGroup  = "VIC_AGE_GROUP"
)

// RequiredColumns are the columns the cleaner consumes. A source file missing
// any of them is a schema mismatch and aborts the run.
var RequiredColumns = []string{
	ColOccurDate, ColOccurTime, ColBorough, ColPrecinct, ColPerpAgeGroup, ColVicAgeGroup,
}

// Borough is the closed set of five geographic subdivisions used to group
// incidents. Any other value is an unknown region and the row carrying it is
// dropped rather than passed through.
type Borough string

const (
	Bronx        Borough = "BRONX"
	Brooklyn     Borough = "BROOKLYN"
	Manhattan    Borough = "MANHATTAN"
	Queens       Borough = "QUEENS"
	StatenIsland Borough = "STATEN ISLAND"
)

// Boroughs returns the enum values in a fixed, sorted order.
func Boroughs() []Borough {
	return []Borough{Bronx, Brooklyn, Manhattan, Queens, StatenIsland}
}

// ParseBorough maps raw CSV text to the enum. Matching is case-insensitive
// and whitespace-tolerant because historic exports vary in casing.
func ParseBorough(s string) (Borough, bool) {
	v := Borough(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case Bronx, Brooklyn, Manhattan, Queens, StatenIsland:
		return v, true
	}
	return "", false
}

// AgeGroup is the closed set of age brackets used for perpetrators and
// victims. The export uses "UNKNOWN" (and occasional junk codes) for missing
// ages; both are treated as missing, not as categories.
type AgeGroup string

const (
	AgeUnder18 AgeGroup = "<18"
	Age18To24  AgeGroup = "18-24"
	Age25To44  AgeGroup = "25-44"
	Age45To64  AgeGroup = "45-64"
	Age65Plus  AgeGroup = "65+"
)

// ParseAgeGroup maps raw CSV text to the enum.
func ParseAgeGroup(s string) (AgeGroup, bool) {
	v := AgeGroup(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case AgeUnder18, Age18To24, Age25To44, Age45To64, Age65Plus:
		return v, true
	}
	return "", false
}

// Incident is one cleaned record: every field is present and typed.
type Incident struct {
	Date      time.Time     // calendar date, midnight UTC
	TimeOfDay time.Duration // offset from midnight
	Borough   Borough
	Precinct  string
	PerpAge   AgeGroup
	VicAge    AgeGroup
}

// Month truncates the incident date to the first day of its month.
func (i Incident) Month() time.Time {
	return time.Date(i.Date.Year(), i.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
