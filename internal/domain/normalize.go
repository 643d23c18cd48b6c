package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// Applied to person full names and organization names on signup.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
