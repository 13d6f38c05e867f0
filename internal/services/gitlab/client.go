package gitlab

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// PageSize is the fixed per_page value for all paginated endpoints. A page
// shorter than this signals the end of the data.
const PageSize = 100

// TransportError marks a network or HTTP failure on a non-fatal fetch path,
// so callers can tell an outage apart from an empty page.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gitlab: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// apiError is a non-2xx response from the GitLab API
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("gitlab API returned %d: %s", e.Status, e.Body)
}

// Client is a thin client for the GitLab REST API
type Client struct {
	BaseURL    string
	Token      string
	ProjectID  int64
	HttpClient *http.Client
}

// NewClient creates a new GitLab client
func NewClient(baseURL, token string, projectID int64) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		ProjectID:  projectID,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchIssues returns one page of the project's issues, ordered by creation
// time ascending, optionally filtered by label. Transient failures are
// retried with exponential backoff; a persistent failure is fatal to the
// caller and returned as a plain error.
func (c *Client) FetchIssues(page int, labels string) ([]Issue, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("order_by", "created_at")
	q.Set("sort", "asc")
	if labels != "" {
		q.Set("labels", labels)
	}
	endpoint := fmt.Sprintf("%s/api/v4/projects/%d/issues?%s", c.BaseURL, c.ProjectID, q.Encode())

	var issues []Issue
	fetch := func() error {
		issues = issues[:0]
		err := c.get(endpoint, &issues)
		if apiErr, ok := err.(*apiError); ok && apiErr.Status < 500 {
			// Auth or request errors will not heal on retry
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(fetch, policy); err != nil {
		return nil, fmt.Errorf("failed to fetch issues page %d: %w", page, err)
	}
	return issues, nil
}

// FetchNotes returns one page of an issue's notes, ordered by creation time
// ascending. Failures come back as *TransportError: the orchestrator treats
// them as end-of-data for that ticket only, never as fatal.
func (c *Client) FetchNotes(issueIID int64, page int) ([]Note, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(PageSize))
	q.Set("order_by", "created_at")
	q.Set("sort", "asc")
	endpoint := fmt.Sprintf("%s/api/v4/projects/%d/issues/%d/notes?%s", c.BaseURL, c.ProjectID, issueIID, q.Encode())

	var notes []Note
	if err := c.get(endpoint, &notes); err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("fetch notes for issue %d page %d", issueIID, page), Err: err}
	}
	return notes, nil
}

// get performs an authenticated GET and decodes the JSON response into out
func (c *Client) get(endpoint string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.Token)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &apiError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
