package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
	"github.com/fr4nk3nst1ner/jobboard/internal/normalize"
	"github.com/fr4nk3nst1ner/jobboard/internal/session"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client talks to the job-board REST API on behalf of a session.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	Debug   bool
}

func New(baseURL string, httpClient *http.Client, sess *session.Session) *Client {
	if httpClient == nil {
		httpClient = CreateHTTPClient("", false, 0)
	}
	if sess == nil {
		sess = &session.Session{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: sess,
	}
}

func (c *Client) Session() *session.Session { return c.session }

func (c *Client) SetSession(s *session.Session) {
	if s == nil {
		s = &session.Session{}
	}
	c.session = s
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	if c.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	if c.Debug {
		log.Printf("[client] %s %s", method, path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}
	if c.Debug {
		log.Printf("[client] %s %s -> %d (%d bytes)", method, path, resp.StatusCode, len(data))
	}
	return data, nil
}

func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		for _, key := range []string{"message", "error"} {
			if msg := root.Get(key); msg.Type == gjson.String && msg.Str != "" {
				return msg.Str
			}
		}
	}
	return http.StatusText(status)
}

func escapeID(id string) string { return url.PathEscape(id) }

// SearchJobs fetches the listing for a path and query built by filters.BuildJobsQuery.
func (c *Client) SearchJobs(ctx context.Context, pathAndQuery string) ([]models.Job, error) {
	data, err := c.do(ctx, http.MethodGet, pathAndQuery, nil)
	if err != nil {
		return nil, err
	}
	return normalize.Jobs(data)
}

// CompanyJobs lists the jobs posted by a company.
func (c *Client) CompanyJobs(ctx context.Context, companyID string) ([]models.Job, error) {
	if companyID == "" {
		return nil, errors.New("company id is required")
	}
	data, err := c.do(ctx, http.MethodGet, "/companies/"+escapeID(companyID)+"/jobs", nil)
	if err != nil {
		return nil, err
	}
	return normalize.Jobs(data)
}

func (c *Client) CreateJob(ctx context.Context, posting models.JobPosting) (models.Job, error) {
	data, err := c.do(ctx, http.MethodPost, "/jobs", posting)
	if err != nil {
		return models.Job{}, err
	}
	return singleJob(data, gjson.Result{})
}

// UpdateJob edits a job. previous is the stored record; its salary bounds fill
// in whatever the response leaves out.
func (c *Client) UpdateJob(ctx context.Context, id string, posting models.JobPosting, previous models.Job) (models.Job, error) {
	data, err := c.do(ctx, http.MethodPut, "/jobs/"+escapeID(id), posting)
	if err != nil {
		return models.Job{}, err
	}
	return singleJob(data, gjson.ParseBytes(previous.Raw))
}

func singleJob(data []byte, fallback gjson.Result) (models.Job, error) {
	if !gjson.ValidBytes(data) {
		return models.Job{}, normalize.ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if wrapped := root.Get("job"); wrapped.IsObject() {
		root = wrapped
	}
	job, ok := normalize.Job(root, fallback)
	if !ok {
		return models.Job{}, errors.New("job response carries no id")
	}
	return job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/jobs/"+escapeID(id), nil)
	return err
}

// PendingJobs returns the moderation queue. An empty queue is not an error.
func (c *Client) PendingJobs(ctx context.Context) ([]models.Job, error) {
	data, err := c.do(ctx, http.MethodGet, "/admin/jobs/pending", nil)
	if err != nil {
		return nil, err
	}
	return normalize.Jobs(data)
}

func (c *Client) ApproveJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPatch, "/admin/jobs/"+escapeID(id)+"/approve", nil)
	return err
}

func (c *Client) RejectJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPatch, "/admin/jobs/"+escapeID(id)+"/reject", nil)
	return err
}

// Login authenticates and, on success, switches the client to the new session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	s, err := session.FromLogin(data)
	if err != nil {
		return nil, err
	}
	c.SetSession(s)
	return s, nil
}

// Register creates a user or company account.
func (c *Client) Register(ctx context.Context, kind string, payload any) error {
	if kind != session.RoleUser && kind != session.RoleCompany {
		return fmt.Errorf("unknown account kind %q", kind)
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/register/"+kind, payload)
	return err
}

func (c *Client) Applications(ctx context.Context, userID string) ([]models.Application, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	data, err := c.do(ctx, http.MethodGet, "/applications/user/"+escapeID(userID), nil)
	if err != nil {
		return nil, err
	}
	return normalize.Applications(data)
}

// UpdateProfile saves profile fields for a user or company account.
func (c *Client) UpdateProfile(ctx context.Context, role, id string, payload any) error {
	var path string
	switch role {
	case session.RoleCompany:
		path = "/companies/" + escapeID(id)
	case session.RoleUser:
		path = "/users/" + escapeID(id)
	default:
		return fmt.Errorf("profiles are not editable for role %q", role)
	}
	_, err := c.do(ctx, http.MethodPut, path, payload)
	return err
}
