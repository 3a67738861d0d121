package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"studynotes/internal/apperror"
	"studynotes/internal/auth"
	"studynotes/internal/client"
	"studynotes/internal/config"
	"studynotes/internal/db"
	httpx "studynotes/internal/http"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) config.ClientConfig {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrateAndIndexes(gdb))

	srv := httptest.NewServer(httpx.NewRouter(config.Config{}, gdb, auth.NewJWT("cli-secret", time.Hour), zap.NewNop()))
	t.Cleanup(srv.Close)

	return config.ClientConfig{
		APIURL:      srv.URL,
		TokenFile:   filepath.Join(t.TempDir(), "token.json"),
		HTTPTimeout: 5 * time.Second,
	}
}

// run executes one studyctl invocation, like a separate process sharing the
// token file.
func run(t *testing.T, cfg config.ClientConfig, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(cfg, &out, zap.NewNop()).Run(append([]string{"studyctl"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, cfg config.ClientConfig, args ...string) string {
	t.Helper()
	out, err := run(t, cfg, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_EndToEnd(t *testing.T) {
	cfg := setupServer(t)

	out := mustRun(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret1")
	assert.Contains(t, out, "Registered Ada <ada@example.com>")

	out = mustRun(t, cfg, "whoami")
	assert.Contains(t, out, "ada@example.com")

	out = mustRun(t, cfg, "categories", "list")
	assert.Contains(t, out, "System Design")

	out = mustRun(t, cfg, "categories", "add", "--name", "Go", "--topics", "4")
	var catID uint64
	_, err := fmt.Sscanf(out, "Created category %d", &catID)
	require.NoError(t, err, out)

	out = mustRun(t, cfg, "notes", "add", "--title", "Channels", "--tag", "concurrency", "--tag", "go",
		"--category", strconv.FormatUint(catID, 10))
	var noteID uint64
	_, err = fmt.Sscanf(out, "Created note %d", &noteID)
	require.NoError(t, err, out)
	assert.Contains(t, out, "in Go")

	out = mustRun(t, cfg, "notes", "bookmark", strconv.FormatUint(noteID, 10))
	assert.Contains(t, out, "Bookmarked note")

	out = mustRun(t, cfg, "notes", "list", "--bookmarked")
	assert.Contains(t, out, "Channels")
	assert.Contains(t, out, "concurrency,go")

	out = mustRun(t, cfg, "notes", "update", "--title", "Buffered channels", strconv.FormatUint(noteID, 10))
	assert.Contains(t, out, `"Buffered channels"`)

	out = mustRun(t, cfg, "dashboard")
	assert.Contains(t, out, "Notes: 1  Bookmarked: 1  Active categories: 1")
	assert.Contains(t, out, "25%")

	out = mustRun(t, cfg, "suggestions")
	assert.Contains(t, out, "sd-cap")

	out = mustRun(t, cfg, "suggestions", "select", "sd-cap")
	assert.Contains(t, out, "CAP theorem")

	mustRun(t, cfg, "categories", "delete", strconv.FormatUint(catID, 10))
	out = mustRun(t, cfg, "notes", "list")
	assert.NotContains(t, out, "Buffered channels")

	mustRun(t, cfg, "logout")
	_, err = run(t, cfg, "notes", "list")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Unauthenticated))
	assert.Contains(t, Message(err), "studyctl login")
}

func TestCLI_Errors(t *testing.T) {
	cfg := setupServer(t)
	mustRun(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret1")

	_, err := run(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "secret1")
	assert.True(t, apperror.Is(err, apperror.DuplicateUser))

	_, err = run(t, cfg, "login", "--email", "ada@example.com", "--password", "nope")
	assert.True(t, apperror.Is(err, apperror.InvalidCredentials))
	assert.Equal(t, "invalid email or password", Message(err))

	_, err = run(t, cfg, "notes", "delete", "abc")
	assert.ErrorContains(t, err, "usage: studyctl notes delete <id>")

	_, err = run(t, cfg, "notes", "bookmark", "999")
	assert.True(t, apperror.Is(err, apperror.NotFound))

	_, err = run(t, cfg, "categories", "add")
	assert.Error(t, err, "name is required")
}

func TestCLI_PasswordPrompt(t *testing.T) {
	cfg := setupServer(t)
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("secret1\n"), nil }

	out := mustRun(t, cfg, "register", "--name", "Ada", "--email", "ada@example.com")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Registered")

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err := run(t, cfg, "login", "--email", "ada@example.com")
	assert.ErrorContains(t, err, "not a terminal")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "note not found", Message(apperror.NewNotFound("note not found")))

	transport := apperror.New(apperror.Unknown, "cannot reach the server", fmt.Errorf("%w: %w", client.ErrTransport, errors.New("dial tcp: refused")))
	assert.Equal(t, "cannot reach the server: api unreachable: dial tcp: refused", Message(transport))
}
