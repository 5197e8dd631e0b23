// Package daterange turns the report's MM/DD/YYYY input dates into a unix
// timestamp interval usable as a "created" filter.
package daterange

import (
	"strings"
	"time"
)

// Layout is the accepted input date format.
const Layout = "01/02/2006"

// Range is an inclusive interval of unix seconds.
type Range struct {
	Gte int64 `json:"gte"`
	Lte int64 `json:"lte"`
}

// Resolve converts start and end into a Range at local midnight of each date.
// It never fails: empty or malformed input on either side yields ok == false,
// meaning "no range".
func Resolve(start, end string, loc *time.Location) (Range, bool) {
	if start == "" || end == "" {
		return Range{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	startTime, err := time.ParseInLocation(Layout, start, loc)
	if err != nil {
		return Range{}, false
	}
	endTime, err := time.ParseInLocation(Layout, end, loc)
	if err != nil {
		return Range{}, false
	}

	return Range{Gte: startTime.Unix(), Lte: endTime.Unix()}, true
}

// IsValidDate reports whether date parses in Layout.
func IsValidDate(date string) bool {
	_, err := time.Parse(Layout, date)
	return err == nil
}

// Valid reports whether the interval is not inverted.
func (r Range) Valid() bool {
	return r.Gte <= r.Lte
}

// ExtendToEndOfDay moves Lte to 23:59:59 of its calendar day in loc.
// Days with a clock change are 23 or 25 hours long, so the bound is
// computed on the wall clock rather than by adding a fixed duration.
func (r Range) ExtendToEndOfDay(loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	end := time.Unix(r.Lte, 0).In(loc)
	y, m, d := end.Date()
	r.Lte = time.Date(y, m, d+1, 0, 0, 0, 0, loc).Add(-time.Second).Unix()
	return r
}

// Filename returns the CSV name for a report over start..end.
func Filename(start, end string) string {
	return "orders_" + strings.ReplaceAll(start, "/", "-") + "_" + strings.ReplaceAll(end, "/", "-") + ".csv"
}
