// Package cli implements studyctl, a terminal front end over the client
// state manager.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"studynotes/internal/apperror"
	"studynotes/internal/client"
	"studynotes/internal/client/state"
	"studynotes/internal/config"
	"studynotes/internal/logging"

	ucli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// readPassword is swapped out in tests.
var readPassword = term.ReadPassword

type App struct {
	cfg config.ClientConfig
	out io.Writer
	log *zap.Logger

	api client.API
	mgr *client.Manager
}

// New builds the CLI. A nil log is replaced in the Before hook by a console
// logger honouring --verbose.
func New(cfg config.ClientConfig, out io.Writer, log *zap.Logger) *App {
	return &App{cfg: cfg, out: out, log: log}
}

func (a *App) Run(args []string) error {
	return a.command().Run(args)
}

func (a *App) command() *ucli.App {
	return &ucli.App{
		Name:      "studyctl",
		Usage:     "manage study categories and notes",
		Writer:    a.out,
		ErrWriter: a.out,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:        "api-url",
				Usage:       "base URL of the studynotes API",
				EnvVars:     []string{"STUDY_API_URL"},
				Value:       a.cfg.APIURL,
				Destination: &a.cfg.APIURL,
			},
			&ucli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: a.setup,
		// errors are reported by the caller
		ExitErrHandler: func(*ucli.Context, error) {},
		After: func(*ucli.Context) error {
			if a.log != nil {
				_ = a.log.Sync()
			}
			return nil
		},
		Commands: []*ucli.Command{
			a.registerCmd(),
			a.loginCmd(),
			a.logoutCmd(),
			a.whoamiCmd(),
			a.categoriesCmd(),
			a.notesCmd(),
			a.dashboardCmd(),
			a.suggestionsCmd(),
		},
	}
}

func (a *App) setup(c *ucli.Context) error {
	if a.log == nil {
		log, err := logging.NewCLI(c.Bool("verbose"))
		if err != nil {
			return err
		}
		a.log = log
	}

	suggestions := state.DefaultSuggestions()
	if a.cfg.SuggestionsFile != "" {
		loaded, err := state.LoadSuggestions(a.cfg.SuggestionsFile)
		if err != nil {
			return err
		}
		suggestions = loaded
	}

	tokens := client.NewTokenStore(a.cfg.TokenFile)
	a.api = client.NewHTTPClient(a.cfg.APIURL, &http.Client{Timeout: a.cfg.HTTPTimeout}, tokens)
	a.mgr = client.NewManager(a.api, a.log, suggestions)

	a.log.Debug("client ready",
		zap.String("api_url", a.cfg.APIURL),
		zap.String("token_file", tokens.Path()),
	)
	return nil
}

// password returns the --password flag, or prompts for it without echo.
func (a *App) password(c *ucli.Context) (string, error) {
	if pw := c.String("password"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(a.out, "Password: ")
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func argID(c *ucli.Context, what string) (uint64, error) {
	raw := c.Args().First()
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("usage: studyctl %s <id>", what)
	}
	return id, nil
}

// Message renders err for the terminal. API failures show only the server's
// message and a hint for an expired session.
func Message(err error) string {
	var ae *apperror.AppError
	if !errors.As(err, &ae) {
		return err.Error()
	}
	switch {
	case ae.Kind == apperror.Unauthenticated:
		return ae.Message + " (run `studyctl login`)"
	case errors.Is(err, client.ErrTransport):
		return ae.Message + ": " + ae.Err.Error()
	default:
		return ae.Message
	}
}
