package cli

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/tailscale-portfolio/clerkcli/internal/render"
	"github.com/tailscale-portfolio/clerkcli/internal/roster"
)

const defaultOrderBy = "last_sign_in_at"

type usersOptions struct {
	orgIDs     string
	orderBy    string
	emailsOnly bool
	output     string
}

func (a *app) usersCommand() *cobra.Command {
	opts := &usersOptions{}
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users in one or more Clerk organizations",
		Long: heredoc.Doc(`
			List the users of each organization given in --org-id, in the order the
			organizations were given.

			Organizations that cannot be found or read are skipped and logged. Users
			whose details cannot be read are shown with placeholder values.
		`),
		Example: heredoc.Doc(`
			$ clerkcli users --org-id org_123,org_456
			$ clerkcli users --org-id org_123 --order-by -created_at --emails-only
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runUsers(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.orgIDs, "org-id", "", "Comma-separated list of organization IDs to query")
	flags.StringVar(&opts.orderBy, "order-by", defaultOrderBy, "Order users by a field. Options: created_at, updated_at, email_address, web3wallet, first_name, last_name, phone_number, username, last_active_at, last_sign_in_at. Use + or - prefix for ascending/descending")
	flags.BoolVar(&opts.emailsOnly, "emails-only", false, "Only print email addresses, one per line")
	flags.StringVarP(&opts.output, "output", "o", string(render.FormatTable), "Output format: table, emails or json")
	flags.Int("workers", 1, "Number of organizations processed concurrently")
	_ = cmd.MarkFlagRequired("org-id")

	return cmd
}

func (a *app) runUsers(cmd *cobra.Command, opts *usersOptions) error {
	format, err := render.ParseFormat(opts.output)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	if opts.emailsOnly {
		format = render.FormatEmails
	}

	dir, err := a.directory()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	orgIDs := ParseOrgIDs(opts.orgIDs)
	if len(orgIDs) == 0 {
		return &ExitError{Code: 1, Err: ErrNoOrganizations}
	}

	agg := roster.NewAggregator(dir, a.logger, roster.WithWorkers(a.cfg.Workers))
	result := agg.Aggregate(cmd.Context(), orgIDs, opts.orderBy)
	if err := cmd.Context().Err(); err != nil {
		// Interrupted runs print nothing rather than a partial listing.
		return &ExitError{Code: 130, Err: err}
	}

	for _, report := range result.Reports {
		a.logger.Debug("organization processed",
			"org_id", report.OrganizationID,
			"org_name", report.OrganizationName,
			"outcome", report.Outcome.String(),
			"count", report.Users,
		)
	}

	return render.Rows(a.stdout, format, result.Rows)
}

// ParseOrgIDs splits a comma-separated list, trimming entries and dropping empty ones.
func ParseOrgIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
