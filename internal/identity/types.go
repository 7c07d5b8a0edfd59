package identity

import (
	"bytes"
	"encoding/json"
)

// Organization is the subset of a directory organization the CLI consumes.
type Organization struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	MembersCount int    `json:"members_count,omitempty"`
	CreatedAt    int64  `json:"created_at,omitempty"`
}

// User mirrors a directory user record. ID is a pointer because member listings
// may contain entries without an identifier.
type User struct {
	ID                    *string        `json:"id"`
	FirstName             OptionalString `json:"first_name"`
	LastName              OptionalString `json:"last_name"`
	Username              OptionalString `json:"username"`
	PrimaryEmailAddressID OptionalString `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	CreatedAt             int64          `json:"created_at,omitempty"`
	UpdatedAt             int64          `json:"updated_at,omitempty"`
	LastSignInAt          *int64         `json:"last_sign_in_at,omitempty"`
	LastActiveAt          *int64         `json:"last_active_at,omitempty"`
}

// UserID returns the user's identifier, or "" when the record carries none.
func (u User) UserID() string {
	if u.ID == nil {
		return ""
	}
	return *u.ID
}

// EmailAddress is one entry of a user's email address list.
type EmailAddress struct {
	ID           string `json:"id,omitempty"`
	EmailAddress string `json:"email_address"`
}

// UserFilter narrows a ListUsers call. A zero Limit asks the directory for every
// matching user.
type UserFilter struct {
	OrganizationIDs []string
	OrderBy         string
	Limit           int
	Offset          int
}

// OptionalString is a JSON string that can be absent, null, or set.
// Absent and null both leave Value nil; Present records whether the key was seen.
type OptionalString struct {
	Present bool
	Value   *string
}

// Some returns a present OptionalString holding s.
func Some(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// Get returns the string and true only when it is set and non-empty.
func (o OptionalString) Get() (string, bool) {
	if o.Value == nil || *o.Value == "" {
		return "", false
	}
	return *o.Value, true
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
