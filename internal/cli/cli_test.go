package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "organizations": [
    {"id": "org_1", "name": "Acme"},
    {"id": "org_2", "name": "Globex"},
    {"id": "org_empty", "name": "Hollow"}
  ],
  "users": [
    {"id": "user_a", "first_name": "Ada", "email_addresses": [{"email_address": "a@x.com"}], "organization_ids": ["org_1"]},
    {"id": "user_b", "first_name": null, "email_addresses": [{"email_address": "b@y.com"}], "organization_ids": ["org_2"]}
  ]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseOrgIDs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "whitespace and empty segments", in: " , org_1 ,, org_2 ", want: []string{"org_1", "org_2"}},
		{name: "single", in: "org_1", want: []string{"org_1"}},
		{name: "keeps duplicates and order", in: "org_2,org_1,org_2", want: []string{"org_2", "org_1", "org_2"}},
		{name: "only separators", in: " , ,, ", want: nil},
		{name: "empty", in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrgIDs(tt.in))
		})
	}
}

func TestUsersEmailsOnly(t *testing.T) {
	path := writeFixture(t)

	code, stdout, _ := run(t, "--fixture", path, "users", "--org-id", "org_1,org_2", "--emails-only")
	require.Equal(t, 0, code)
	assert.Equal(t, "a@x.com\nb@y.com\n", stdout)
}

func TestUsersTable(t *testing.T) {
	path := writeFixture(t)

	code, stdout, _ := run(t, "--fixture", path, "users", "--org-id", "org_2, org_missing ,org_1")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Globex")
	assert.Contains(t, stdout, "<no name>")
	assert.NotContains(t, stdout, "org_missing")
	assert.Less(t, strings.Index(stdout, "b@y.com"), strings.Index(stdout, "a@x.com"))
}

func TestUsersEmptyResultPrintsNothing(t *testing.T) {
	path := writeFixture(t)

	code, stdout, stderr := run(t, "--fixture", path, "users", "--org-id", "org_empty")
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no users found for any organization")
}

func TestUsersNoOrganizations(t *testing.T) {
	path := writeFixture(t)

	code, stdout, stderr := run(t, "--fixture", path, "users", "--org-id", " , ,")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, ErrNoOrganizations.Error())
}

func TestUsersMissingSecretKey(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "")

	code, stdout, stderr := run(t, "users", "--org-id", "org_1")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "CLERK_SECRET_KEY")
}

func TestUsersInvalidLogLevel(t *testing.T) {
	path := writeFixture(t)

	code, _, stderr := run(t, "--fixture", path, "--log-level", "loud", "users", "--org-id", "org_1")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "log-level")
}

func TestUsersInvalidOutput(t *testing.T) {
	path := writeFixture(t)

	code, _, _ := run(t, "--fixture", path, "users", "--org-id", "org_1", "--output", "yaml")
	assert.Equal(t, 2, code)
}

func TestUsersUnknownFlag(t *testing.T) {
	code, _, _ := run(t, "users", "--org-ids", "org_1")
	assert.Equal(t, 2, code)
}

func TestUsersAgainstClerkAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_env" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/organizations/org_1":
			fmt.Fprint(w, `{"id":"org_1","name":"Acme"}`)
		case "/organizations/org_2":
			w.WriteHeader(http.StatusForbidden)
		case "/users":
			assert.Equal(t, "-created_at", r.URL.Query().Get("order_by"))
			fmt.Fprint(w, `[{"id":"user_1"},{"id":"user_gone"},{}]`)
		case "/users/user_1":
			fmt.Fprint(w, `{"id":"user_1","first_name":"Dana","email_addresses":[{"email_address":"dana@acme.com"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("CLERK_SECRET_KEY", "sk_env")
	t.Setenv("CLERK_API_URL", server.URL)

	code, stdout, stderr := run(t, "--log-format", "json", "users", "--org-id", "org_1,org_2", "--order-by", "-created_at", "-o", "json")
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `[
		{"organization_name": "Acme", "name": "Dana", "email": "dana@acme.com"},
		{"organization_name": "Acme", "name": "<error fetching name>", "email": "<error>"},
		{"organization_name": "Acme", "name": "<unknown user id>", "email": "<no email>"}
	]`, stdout)
	assert.Contains(t, stderr, `"org_id":"org_2"`)
}

func TestSecretKeyFlagOverridesEnv(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_flag", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	t.Setenv("CLERK_SECRET_KEY", "sk_env")

	code, stdout, _ := run(t, "--secret-key", "sk_flag", "--api-url", server.URL, "users", "--org-id", "org_1")
	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{LogLevel: "info", LogFormat: "text", Timeout: 1, Workers: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
