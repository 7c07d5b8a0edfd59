// Package cli implements the clerkcli command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tailscale-portfolio/clerkcli/internal/clerk"
	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// app is the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	stderr io.Writer
	cfg    Config
	logger *slog.Logger
}

// Execute runs clerkcli with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := bindEnvVars(a.v)
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err == nil {
		return 0
	}

	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}
	a.log().Error("clerkcli failed", "error", err)
	return code
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clerkcli",
		Short: "Query a Clerk instance from the command line",
		Long: heredoc.Doc(`
			clerkcli reads organizations and users from the Clerk Backend API.

			The secret key is taken from --secret-key or the CLERK_SECRET_KEY
			environment variable. Diagnostics are written to stderr; results to stdout.
		`),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	flags := cmd.PersistentFlags()
	flags.String("secret-key", "", "Clerk secret key (overrides CLERK_SECRET_KEY)")
	flags.String("api-url", clerk.DefaultBaseURL, "Clerk Backend API base URL")
	flags.Duration("timeout", 10*time.Second, "Timeout for each API request")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("fixture", "", "Serve data from a JSON fixture file instead of the Clerk API")

	cmd.AddCommand(a.usersCommand())
	return cmd
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	cfg, err := loadConfig(a.v)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.stderr)
	return nil
}

// log returns the configured logger, or a plain stderr logger when configuration
// never got that far.
func (a *app) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return newLogger("info", "text", a.stderr)
}

// directory returns the data source selected by the configuration.
func (a *app) directory() (identity.Directory, error) {
	if a.cfg.FixturePath != "" {
		data, err := os.ReadFile(a.cfg.FixturePath)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		return identity.NewStaticDirectory(data)
	}
	if a.cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	return clerk.New(a.cfg.SecretKey,
		clerk.WithBaseURL(a.cfg.APIURL),
		clerk.WithTimeout(a.cfg.Timeout),
	)
}
