package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"studynotes/internal/apperror"
	"studynotes/internal/auth"
	"studynotes/internal/study"
)

// ErrTransport marks failures where no API response was received.
var ErrTransport = errors.New("api unreachable")

// StatusError records the HTTP status behind a classified API failure.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string { return "http status " + strconv.Itoa(e.Status) }

// API is the client view of the Resource API and Auth Service.
type API interface {
	Register(ctx context.Context, name, email, password string) (auth.Session, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout() error
	Me(ctx context.Context) (auth.PublicUser, error)

	ListCategories(ctx context.Context) ([]study.Category, error)
	CreateCategory(ctx context.Context, in study.CategoryInput) (study.Category, error)
	UpdateCategory(ctx context.Context, id uint64, p study.CategoryPatch) (study.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error

	ListNotes(ctx context.Context) ([]study.Note, error)
	CreateNote(ctx context.Context, in study.NoteInput) (study.Note, error)
	UpdateNote(ctx context.Context, id uint64, p study.NotePatch) (study.Note, error)
	DeleteNote(ctx context.Context, id uint64) error
	ToggleBookmark(ctx context.Context, id uint64) (study.Note, error)
}

// HTTPClient talks JSON to the API and attaches the stored bearer token.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  *TokenStore
}

var _ API = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, hc *http.Client, tokens *TokenStore) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), hc: hc, tokens: tokens}
}

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	TotalTopics int    `json:"totalTopics"`
}

type categoryPatchBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	TotalTopics *int    `json:"totalTopics,omitempty"`
}

type noteBody struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	IsBookmarked bool     `json:"isBookmarked"`
	Category     uint64   `json:"category"`
}

type notePatchBody struct {
	Title        *string   `json:"title,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	IsBookmarked *bool     `json:"isBookmarked,omitempty"`
	Category     *uint64   `json:"category,omitempty"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (auth.Session, error) {
	var sess auth.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", false, body, &sess); err != nil {
		var ae *apperror.AppError
		if errors.As(err, &ae) && ae.Kind == apperror.ValidationFailure && ae.Message == apperror.MsgUserExists {
			ae.Kind = apperror.DuplicateUser
		}
		return auth.Session{}, err
	}
	return sess, c.tokens.Save(sess.Token, sess.Email)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var sess auth.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &sess); err != nil {
		var ae *apperror.AppError
		if errors.As(err, &ae) && ae.Kind == apperror.Unauthenticated {
			ae.Kind = apperror.InvalidCredentials
		}
		return auth.Session{}, err
	}
	return sess, c.tokens.Save(sess.Token, sess.Email)
}

// Logout forgets the token locally. Tokens are not revoked server-side.
func (c *HTTPClient) Logout() error {
	return c.tokens.Clear()
}

func (c *HTTPClient) Me(ctx context.Context) (auth.PublicUser, error) {
	var u auth.PublicUser
	err := c.do(ctx, http.MethodGet, "/me", true, nil, &u)
	return u, err
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]study.Category, error) {
	var out []study.Category
	err := c.do(ctx, http.MethodGet, "/categories", true, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateCategory(ctx context.Context, in study.CategoryInput) (study.Category, error) {
	var out study.Category
	err := c.do(ctx, http.MethodPost, "/categories", true, categoryBody(in), &out)
	return out, err
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id uint64, p study.CategoryPatch) (study.Category, error) {
	var out study.Category
	err := c.do(ctx, http.MethodPut, "/categories/"+idPath(id), true, categoryPatchBody(p), &out)
	return out, err
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+idPath(id), true, nil, nil)
}

func (c *HTTPClient) ListNotes(ctx context.Context) ([]study.Note, error) {
	var out []study.Note
	err := c.do(ctx, http.MethodGet, "/notes", true, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateNote(ctx context.Context, in study.NoteInput) (study.Note, error) {
	var out study.Note
	body := noteBody{
		Title:        in.Title,
		Content:      in.Content,
		Tags:         in.Tags,
		IsBookmarked: in.IsBookmarked,
		Category:     in.CategoryID,
	}
	err := c.do(ctx, http.MethodPost, "/notes", true, body, &out)
	return out, err
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id uint64, p study.NotePatch) (study.Note, error) {
	var out study.Note
	body := notePatchBody{
		Title:        p.Title,
		Content:      p.Content,
		Tags:         p.Tags,
		IsBookmarked: p.IsBookmarked,
		Category:     p.CategoryID,
	}
	err := c.do(ctx, http.MethodPut, "/notes/"+idPath(id), true, body, &out)
	return out, err
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+idPath(id), true, nil, nil)
}

func (c *HTTPClient) ToggleBookmark(ctx context.Context, id uint64) (study.Note, error) {
	var out study.Note
	err := c.do(ctx, http.MethodPatch, "/notes/"+idPath(id)+"/bookmark", true, nil, &out)
	return out, err
}

func idPath(id uint64) string { return strconv.FormatUint(id, 10) }

// do sends one request. Authenticated calls without a stored token fail with
// Unauthenticated before any network traffic. Non-2xx responses become an
// *apperror.AppError whose Kind follows the status code.
func (c *HTTPClient) do(ctx context.Context, method, path string, authed bool, in, out any) error {
	var token string
	if authed {
		t, err := c.tokens.Load()
		if err != nil {
			return apperror.NewUnauthenticated("cannot read stored token", err)
		}
		if t == "" {
			return apperror.NewUnauthenticated("not logged in", nil)
		}
		token = t
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperror.New(apperror.Unknown, "cannot reach the server", fmt.Errorf("%w: %w", ErrTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er apperror.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&er)
		if er.Message == "" {
			er.Message = http.StatusText(resp.StatusCode)
		}
		return apperror.New(apperror.KindForStatus(resp.StatusCode), er.Message, &StatusError{Status: resp.StatusCode})
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.New(apperror.Unknown, "unexpected response from server", err)
	}
	return nil
}
