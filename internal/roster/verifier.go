package roster

import (
	"context"
	"log/slog"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// Verifier confirms an organization exists and is readable with the current credential.
type Verifier struct {
	dir    identity.Directory
	logger *slog.Logger
}

func NewVerifier(dir identity.Directory, logger *slog.Logger) *Verifier {
	return &Verifier{dir: dir, logger: logger}
}

// Verify looks the organization up once. A nil organization means it is absent;
// the error says why and is already logged.
func (v *Verifier) Verify(ctx context.Context, orgID string) (*identity.Organization, error) {
	v.logger.Debug("verifying organization", "org_id", orgID)

	org, err := v.dir.GetOrganization(ctx, orgID)
	if err != nil {
		v.logger.Error("invalid or inaccessible organization", "org_id", orgID, "error", err)
		return nil, err
	}

	v.logger.Debug("organization found", "org_id", org.ID, "org_name", org.Name)
	return org, nil
}
