package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of booking dates.
const DateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("end date must not be before start date")

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", value)
	}
	return t, nil
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{Start: s, End: e}, nil
}

// Overlaps reports whether the two ranges share at least one day. Touching
// ranges (one ends on the day the other starts) overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
