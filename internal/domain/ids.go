package domain

// PersonID is an internal identifier for a person record.
type PersonID string

// OrganizationID is an internal identifier for an organization record.
type OrganizationID string

// MemberID is an internal identifier for a member record.
type MemberID string
