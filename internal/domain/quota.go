package domain

import "time"

// Quota is a single payment record for a member. Code is an opaque label
// shown on reports (usually the period it covers, but callers must not
// assume structure beyond that).
type Quota struct {
	MemberID MemberID
	Period   Period
	Code     string
	PaidAt   time.Time
}
