package roster

import (
	"context"
	"log/slog"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// Normalizer turns a member listing entry into a Row, reading the user's details
// once per entry.
type Normalizer struct {
	dir    identity.Directory
	logger *slog.Logger
}

func NewNormalizer(dir identity.Directory, logger *slog.Logger) *Normalizer {
	return &Normalizer{dir: dir, logger: logger}
}

// Normalize never fails: anything it cannot resolve becomes placeholder text.
func (n *Normalizer) Normalize(ctx context.Context, orgName string, user identity.User) Row {
	userID := user.UserID()
	if userID == "" {
		return Row{OrganizationName: orgName, Name: UnknownUserID, Email: NoEmail}
	}

	detail, err := n.dir.GetUser(ctx, userID)
	if err != nil {
		n.logger.Debug("user detail lookup failed", "user_id", userID, "error", err)
		return Row{OrganizationName: orgName, Name: ErrorName, Email: ErrorEmail}
	}

	row := Row{OrganizationName: orgName, Name: NoName, Email: NoEmail}
	if name, ok := detail.FirstName.Get(); ok {
		row.Name = name
	}
	if len(detail.EmailAddresses) > 0 {
		row.Email = detail.EmailAddresses[0].EmailAddress
	}
	return row
}
