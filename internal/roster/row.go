// Package roster aggregates the members of several organizations into display rows.
//
// Every remote failure is downgraded: an organization that cannot be verified is
// skipped, a failed member listing counts as zero members, and a user whose
// details cannot be read still yields a row filled with placeholder text.
package roster

// Placeholder text substituted for fields that could not be resolved.
const (
	NoName        = "<no name>"
	NoEmail       = "<no email>"
	ErrorName     = "<error fetching name>"
	ErrorEmail    = "<error>"
	UnknownUserID = "<unknown user id>"
)

// Row is one user of one organization, ready for display. All fields are always set.
type Row struct {
	OrganizationName string `json:"organization_name"`
	Name             string `json:"name"`
	Email            string `json:"email"`
}

// Outcome classifies how an organization was processed.
type Outcome int

const (
	// OutcomeListed means rows were produced for the organization.
	OutcomeListed Outcome = iota
	// OutcomeEmpty means the organization was verified and has no members.
	OutcomeEmpty
	// OutcomeNotFound means the directory reported the organization does not exist.
	OutcomeNotFound
	// OutcomeUnreachable means verification failed for any other reason.
	OutcomeUnreachable
	// OutcomeListFailed means the organization was verified but its members could not be listed.
	OutcomeListFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeListed:
		return "listed"
	case OutcomeEmpty:
		return "empty"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnreachable:
		return "unreachable"
	case OutcomeListFailed:
		return "list_failed"
	default:
		return "unknown"
	}
}

// OrgReport records what happened to one requested organization.
type OrgReport struct {
	OrganizationID   string
	OrganizationName string
	Outcome          Outcome
	Users            int
	Err              error
}

// Result is the aggregated output. Rows are ordered by organization input order,
// then by the directory's user order within each organization.
type Result struct {
	Rows    []Row
	Reports []OrgReport
}
