package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meddesk-dev/meddesk/internal/cli/session"
)

// ErrSessionExpired is returned when the server rejects a stored token.
// The transport has already cleared the session by the time callers see it.
var ErrSessionExpired = errors.New("session expired or revoked, run 'meddesk login' to sign in again")

// Client represents an HTTP client for the Meddesk admin API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. Every request to the authenticated surface
// picks up the bearer token from the store at send time, so a login or
// logout in between calls takes effect immediately.
func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &authTransport{
				store: store,
				base:  http.DefaultTransport,
			},
		},
	}
}

// SetHTTPClient sets a custom HTTP client. The auth transport is preserved
// on top of the given client's transport.
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	if t, ok := c.httpClient.Transport.(*authTransport); ok {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient.Transport = &authTransport{store: t.store, base: base}
	}
	c.httpClient = httpClient
}

// authTransport attaches the stored bearer token to authenticated requests
// and clears the session when the server rejects it.
type authTransport struct {
	store session.Store
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper. Only /api/ routes are
// authenticated; login and setup go out bare so a stale token can never
// interfere with signing in again. A 401 or 403 on a request that carried
// a token means the session is dead server-side: the store is cleared and
// ErrSessionExpired is returned so the next command starts from logged-out.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.HasPrefix(req.URL.Path, "/api/") {
		return t.base.RoundTrip(req)
	}

	sess, err := t.store.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if sess.Token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sess.Token))
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if sess.Token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		resp.Body.Close()
		if clearErr := t.store.Clear(); clearErr != nil {
			return nil, fmt.Errorf("session rejected and could not be cleared: %w", clearErr)
		}
		return nil, ErrSessionExpired
	}

	return resp, nil
}

// apiError turns a non-success response into an error, surfacing the
// server's message when the body carries one.
func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s (status %d): %s", op, resp.StatusCode, payload.Error)
	}

	return fmt.Errorf("%s (status %d): %s", op, resp.StatusCode, string(body))
}

// doJSON sends a request with an optional JSON body and decodes the
// response into out when out is non-nil.
func (c *Client) doJSON(method, path string, in, out any, want int, op string) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return apiError(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(path string, out any, op string) error {
	return c.doJSON(http.MethodGet, path, nil, out, http.StatusOK, op)
}

func (c *Client) delete(path, op string) error {
	return c.doJSON(http.MethodDelete, path, nil, nil, http.StatusNoContent, op)
}

// formFile names a multipart file field and the local file to send in it.
type formFile struct {
	field string
	path  string
}

func attachFormFile(writer *multipart.Writer, file formFile) error {
	f, err := os.Open(file.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.path, err)
	}
	defer f.Close()

	part, err := writer.CreateFormFile(file.field, filepath.Base(file.path))
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", file.path, err)
	}
	return nil
}

// doForm sends a multipart form with an optional single file attachment.
func (c *Client) doForm(method, path string, fields map[string]string, file *formFile, out any, want int, op string) error {
	var files []formFile
	if file != nil {
		files = append(files, *file)
	}
	return c.doMultiForm(method, path, fields, files, out, want, op)
}

// doMultiForm sends a multipart form carrying any number of files (gallery
// uploads repeat the same field name) and decodes the response into out when
// out is non-nil.
func (c *Client) doMultiForm(method, path string, fields map[string]string, files []formFile, out any, want int, op string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	for _, file := range files {
		if err := attachFormFile(writer, file); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return apiError(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
