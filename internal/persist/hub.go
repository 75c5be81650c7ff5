package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"GroceryHub/internal/grocery"
)

var (
	ErrHubNoToken     = errors.New("hub token not configured")
	ErrHubBadStatus   = errors.New("hub bad status")
	ErrHubUnavailable = errors.New("hub unavailable")
)

// HubClient stores the document in a remote document repository, addressed
// by a repository identifier and an access token. A missing token or an
// unreachable hub is a normal condition; callers fall back to local storage.
type HubClient struct {
	BaseURL string
	Repo    string
	File    string
	Token   string
	Client  *http.Client
}

func NewHubClient(baseURL, repo, file, token string) *HubClient {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &HubClient{
		BaseURL: baseURL,
		Repo:    repo,
		File:    file,
		Token:   token,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *HubClient) Name() string { return "hub:" + c.Repo }

func (c *HubClient) fileURL() string {
	return fmt.Sprintf("%s/repos/%s/files/%s", c.BaseURL, url.PathEscape(c.Repo), url.PathEscape(c.File))
}

func (c *HubClient) Ping(ctx context.Context) error {
	if c.Token == "" {
		return ErrHubNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.fileURL(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return wrapNetErr(err)
	}
	defer resp.Body.Close()

	// 404 means reachable but empty, which is fine for readiness.
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status=%d", ErrHubBadStatus, resp.StatusCode)
	}
	return nil
}

func (c *HubClient) Load(ctx context.Context) (grocery.Document, bool, error) {
	if c.Token == "" {
		return grocery.Document{}, false, ErrHubNoToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(), nil)
	if err != nil {
		return grocery.Document{}, false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return grocery.Document{}, false, wrapNetErr(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return grocery.Document{}, false, nil
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return grocery.Document{}, false, fmt.Errorf("%w: status=%d", ErrHubBadStatus, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return grocery.Document{}, false, err
	}
	doc, err := DecodeDocument(b)
	if err != nil {
		return grocery.Document{}, false, err
	}
	return doc, true, nil
}

func (c *HubClient) Save(ctx context.Context, doc grocery.Document) error {
	if c.Token == "" {
		return ErrHubNoToken
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.fileURL(), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Revision", uuid.NewString())
	req.Header.Set("X-Commit-Message", "auto-save "+doc.LastUpdated.Format("2006-01-02 15:04:05"))

	resp, err := c.Client.Do(req)
	if err != nil {
		return wrapNetErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrHubBadStatus, resp.StatusCode)
	}
	return nil
}

func wrapNetErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrHubUnavailable
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrHubUnavailable
	}
	return fmt.Errorf("%w: %v", ErrHubUnavailable, err)
}
