package roster

import (
	"context"
	"log/slog"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// Fetcher lists the members of a verified organization.
type Fetcher struct {
	dir    identity.Directory
	logger *slog.Logger
}

func NewFetcher(dir identity.Directory, logger *slog.Logger) *Fetcher {
	return &Fetcher{dir: dir, logger: logger}
}

// Fetch returns the organization's users in the order orderBy asks the directory
// for. orderBy is passed through unchecked. On failure the error is logged and an
// empty list is returned alongside it.
func (f *Fetcher) Fetch(ctx context.Context, orgID, orderBy string) ([]identity.User, error) {
	f.logger.Debug("listing organization users", "org_id", orgID, "order_by", orderBy)

	users, err := f.dir.ListUsers(ctx, identity.UserFilter{
		OrganizationIDs: []string{orgID},
		OrderBy:         orderBy,
	})
	if err != nil {
		f.logger.Error("error fetching users for organization", "org_id", orgID, "error", err)
		return []identity.User{}, err
	}
	return users, nil
}
