package domain

import "time"

// Person is an individual applicant's profile.
type Person struct {
	ID PersonID

	FullName string
	Email    string
	// Nickname is the member's preferred handle; nil means never provided.
	Nickname *string
	// Picture is a reference (path/URL) to the profile picture; nil or empty
	// means no picture is on file.
	Picture *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPicture reports whether a usable picture reference is on file.
func (p Person) HasPicture() bool { return p.Picture != nil && *p.Picture != "" }

// Organization is an organizational applicant. It follows the same signup
// flow as Person but is a distinct entity.
type Organization struct {
	ID OrganizationID

	Name         string
	ContactEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}
