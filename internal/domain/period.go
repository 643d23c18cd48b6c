package domain

import (
	"fmt"
	"time"
)

// Period is a (year, month) payment period. Month is conventionally 1-12,
// but callers may produce out-of-range months through arithmetic; Normalize
// folds those back into the calendar.
type Period struct {
	Year  int
	Month int
}

// Normalize folds an out-of-range month into a valid calendar period:
// month <= 0 borrows from the previous year, month > 12 carries into the next.
func (p Period) Normalize() Period {
	for p.Month <= 0 {
		p.Year--
		p.Month += 12
	}
	for p.Month > 12 {
		p.Year++
		p.Month -= 12
	}
	return p
}

// Before reports whether p is strictly earlier than q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

func (p Period) Equal(q Period) bool { return p.Year == q.Year && p.Month == q.Month }

func (p Period) String() string { return fmt.Sprintf("%04d-%02d", p.Year, p.Month) }

// DefaultCutoff computes the default arrears cutoff: two calendar months
// before now. A member is not delinquent for the current or immediately
// preceding month, since that period's payment window may not yet have closed.
func DefaultCutoff(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month()) - 2}.Normalize()
}
