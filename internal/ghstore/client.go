// Package ghstore implements the remote document store on top of the GitHub
// contents API: base64 blob reads for the local-cache fallback, and
// create-or-update uploads for republishing.
package ghstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested repository path does not exist.
var ErrNotFound = errors.New("ghstore: file not found")

// Client talks to the GitHub contents API for a single repository.
type Client struct {
	baseURL string
	repo    string // "owner/name"
	token   string
	http    *http.Client
}

// New creates a Client for the given repository. baseURL is normally
// "https://api.github.com"; pointing it elsewhere serves GitHub Enterprise
// and tests.
func New(baseURL, repo, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		repo:    repo,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// contentResponse is the subset of the contents API response we read.
type contentResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", c.baseURL, c.repo, path)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	return c.http.Do(req)
}

// GetFile fetches the blob at the given repository path and returns its
// decoded content and version SHA. Returns ErrNotFound for missing paths.
func (c *Client) GetFile(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path), nil)
	if err != nil {
		return nil, "", fmt.Errorf("building contents request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("fetching %s: status %d: %s", path, resp.StatusCode, body)
	}

	var cr contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, "", fmt.Errorf("decoding contents response for %s: %w", path, err)
	}

	// The API wraps base64 content in newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s content: %w", path, err)
	}
	return decoded, cr.SHA, nil
}

// putRequest is the body of a contents API create-or-update call.
type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// PutFile uploads content to the given repository path with the given commit
// message. When the path already exists its current SHA is fetched first, as
// the API requires it to update an existing blob.
func (c *Client) PutFile(ctx context.Context, path string, content []byte, message string) error {
	sha := ""
	if _, existing, err := c.GetFile(ctx, path); err == nil {
		sha = existing
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking existing %s: %w", path, err)
	}

	body, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("encoding upload for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("uploading %s: status %d: %s", path, resp.StatusCode, respBody)
	}
	return nil
}
