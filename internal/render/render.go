// Package render writes roster rows to a terminal or a pipe.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tailscale-portfolio/clerkcli/internal/roster"
)

// Format selects how rows are written.
type Format string

const (
	FormatTable  Format = "table"
	FormatEmails Format = "emails"
	FormatJSON   Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatEmails, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("render: unknown output format %q (want table, emails or json)", s)
	}
}

// Rows writes rows in the given format. Nothing is written when rows is empty.
func Rows(w io.Writer, format Format, rows []roster.Row) error {
	if len(rows) == 0 {
		return nil
	}
	switch format {
	case FormatEmails:
		return Emails(w, rows)
	case FormatJSON:
		return JSON(w, rows)
	case FormatTable, "":
		return Table(w, rows)
	default:
		return fmt.Errorf("render: unknown output format %q", format)
	}
}

// Emails writes one email address per line, in row order.
func Emails(w io.Writer, rows []roster.Row) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row.Email); err != nil {
			return fmt.Errorf("render: write email: %w", err)
		}
	}
	return nil
}

// Table writes a box-drawn table with organization, name and email columns.
func Table(w io.Writer, rows []roster.Row) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleLight),
		})),
	)
	table.Header("Organization", "Name", "Email")
	for _, row := range rows {
		if err := table.Append([]string{row.OrganizationName, row.Name, row.Email}); err != nil {
			return fmt.Errorf("render: append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render: table: %w", err)
	}
	return nil
}

// JSON writes rows as an indented JSON array.
func JSON(w io.Writer, rows []roster.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("render: encode json: %w", err)
	}
	return nil
}
