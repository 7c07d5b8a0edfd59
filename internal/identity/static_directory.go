package identity

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// StaticDirectory serves organizations and users from a JSON fixture for offline use.
type StaticDirectory struct {
	mu    sync.RWMutex
	orgs  []Organization
	users []fixtureUser
}

type fixtureUser struct {
	User
	OrganizationIDs []string `json:"organization_ids"`
}

// NewStaticDirectory parses the provided JSON payload and stores its records in memory.
// The fixture lists organizations and users; each user names the organizations it
// belongs to through organization_ids.
func NewStaticDirectory(data []byte) (*StaticDirectory, error) {
	type doc struct {
		Organizations []Organization `json:"organizations"`
		Users         []fixtureUser  `json:"users"`
	}
	var parsed doc
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("identity: parse fixture: %w", err)
	}

	for _, org := range parsed.Organizations {
		if org.ID == "" {
			return nil, errors.New("identity: fixture contains organization without id")
		}
	}
	return &StaticDirectory{
		orgs:  parsed.Organizations,
		users: parsed.Users,
	}, nil
}

// GetOrganization returns the organization whose ID or slug matches id.
func (d *StaticDirectory) GetOrganization(_ context.Context, id string) (*Organization, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, org := range d.orgs {
		if org.ID == id || (org.Slug != "" && org.Slug == id) {
			copy := org
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("organization %q: %w", id, ErrNotFound)
}

// ListUsers returns members of any organization in the filter, ordered by filter.OrderBy.
func (d *StaticDirectory) ListUsers(_ context.Context, filter UserFilter) ([]User, error) {
	less, err := userOrdering(filter.OrderBy)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	var matches []User
	for _, u := range d.users {
		if len(filter.OrganizationIDs) > 0 && !memberOfAny(u.OrganizationIDs, filter.OrganizationIDs) {
			continue
		}
		matches = append(matches, u.User)
	}
	d.mu.RUnlock()

	if less != nil {
		slices.SortStableFunc(matches, less)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matches) {
			return []User{}, nil
		}
		matches = matches[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

// GetUser returns the user with the given ID.
func (d *StaticDirectory) GetUser(_ context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID != nil && *u.ID == id {
			copy := u.User
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
}

func memberOfAny(memberships, wanted []string) bool {
	for _, id := range wanted {
		if slices.Contains(memberships, id) {
			return true
		}
	}
	return false
}

// userOrdering maps a Clerk-style order_by value to a comparison. A leading "+"
// sorts ascending; "-" or no prefix sorts descending. Keys the fixture holds no data
// for keep fixture order.
func userOrdering(orderBy string) (func(a, b User) int, error) {
	key := strings.TrimSpace(orderBy)
	if key == "" {
		return nil, nil
	}
	ascending := false
	switch key[0] {
	case '+':
		ascending = true
		key = key[1:]
	case '-':
		key = key[1:]
	}

	var compare func(a, b User) int
	switch key {
	case "created_at":
		compare = func(a, b User) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case "updated_at":
		compare = func(a, b User) int { return cmp.Compare(a.UpdatedAt, b.UpdatedAt) }
	case "last_sign_in_at":
		compare = func(a, b User) int { return cmp.Compare(deref(a.LastSignInAt), deref(b.LastSignInAt)) }
	case "last_active_at":
		compare = func(a, b User) int { return cmp.Compare(deref(a.LastActiveAt), deref(b.LastActiveAt)) }
	case "first_name":
		compare = func(a, b User) int { return compareOptional(a.FirstName, b.FirstName) }
	case "last_name":
		compare = func(a, b User) int { return compareOptional(a.LastName, b.LastName) }
	case "username":
		compare = func(a, b User) int { return compareOptional(a.Username, b.Username) }
	case "email_address":
		compare = func(a, b User) int { return strings.Compare(firstEmail(a), firstEmail(b)) }
	case "phone_number", "web3wallet":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidOrderBy, orderBy)
	}

	if ascending {
		return compare, nil
	}
	return func(a, b User) int { return compare(b, a) }, nil
}

func deref(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func compareOptional(a, b OptionalString) int {
	av, _ := a.Get()
	bv, _ := b.Get()
	return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
}

func firstEmail(u User) string {
	if len(u.EmailAddresses) == 0 {
		return ""
	}
	return strings.ToLower(u.EmailAddresses[0].EmailAddress)
}
