package rental

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPeriod        = errors.New("end date must be after start date")
	ErrAmbiguousExtension   = errors.New("extension amount given in both months and days")
	ErrMissingExtension     = errors.New("extension amount required")
	ErrNonPositiveExtension = errors.New("extension amount must be positive")
)

// Period is the half-open rental window [start, end).
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !end.After(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time { return p.start }
func (p Period) End() time.Time   { return p.end }

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && t.Before(p.end)
}

// Overlaps uses half-open interval semantics: back-to-back periods
// ([a,b) and [b,c)) do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.start.Before(other.end) && other.start.Before(p.end)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.RFC3339), p.end.Format(time.RFC3339))
}

// ExtensionAmount is a duration given in exactly one unit. The source DTOs
// carried both a months and a days field; dual input is rejected as ambiguous
// instead of guessing a precedence.
type ExtensionAmount struct {
	months int
	days   int
}

func NewExtensionAmount(months, days int) (ExtensionAmount, error) {
	if months < 0 || days < 0 {
		return ExtensionAmount{}, ErrNonPositiveExtension
	}
	if months > 0 && days > 0 {
		return ExtensionAmount{}, ErrAmbiguousExtension
	}
	if months == 0 && days == 0 {
		return ExtensionAmount{}, ErrMissingExtension
	}
	return ExtensionAmount{months: months, days: days}, nil
}

func MonthsAmount(months int) (ExtensionAmount, error) {
	return NewExtensionAmount(months, 0)
}

func DaysAmount(days int) (ExtensionAmount, error) {
	return NewExtensionAmount(0, days)
}

func (a ExtensionAmount) Months() int { return a.months }
func (a ExtensionAmount) Days() int   { return a.days }

// Apply pushes t forward by the amount. Months use calendar arithmetic so a
// one-month extension of Jan 31 lands on the provider-normalized date.
func (a ExtensionAmount) Apply(t time.Time) time.Time {
	if a.months > 0 {
		return t.AddDate(0, a.months, 0)
	}
	return t.AddDate(0, 0, a.days)
}
