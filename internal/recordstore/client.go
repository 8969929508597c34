// Package recordstore talks to a remote REST record store exposing a
// conventional /projects collection (GET list, POST create, DELETE by id).
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
)

// DefaultTimeout bounds every request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Options configures a Client.
type Options struct {
	// Token is sent as a bearer token when set.
	Token   string
	Timeout time.Duration
	// Resource is the collection path. Defaults to /projects.
	Resource string
}

// Client is a record store reached over HTTP.
type Client struct {
	http     *req.Client
	resource string
}

// New creates a client for the store rooted at baseURL.
func New(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	resource := opts.Resource
	if resource == "" {
		resource = "/projects"
	}

	c := req.C().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetCommonHeader("Accept", "application/json").
		SetUserAgent("portfolio-recordstore")
	if opts.Token != "" {
		c.SetCommonBearerAuthToken(opts.Token)
	}

	return &Client{http: c, resource: "/" + strings.Trim(resource, "/")}
}

// List fetches every project.
func (c *Client) List(ctx context.Context) ([]project.Project, error) {
	var wire []wireProject
	resp, err := c.http.R().
		SetContext(ctx).
		SetSuccessResult(&wire).
		Get(c.resource)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, statusError(resp)
	}

	projects := make([]project.Project, len(wire))
	for i, w := range wire {
		projects[i] = w.project()
	}
	return projects, nil
}

// Create submits a new project; the store assigns its id.
func (c *Client) Create(ctx context.Context, in project.CreateRequest) (*project.Project, error) {
	var wire wireProject
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetSuccessResult(&wire).
		Post(c.resource)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if !resp.IsSuccessState() {
		if verr := validationError(resp); verr != nil {
			return nil, verr
		}
		return nil, statusError(resp)
	}

	proj := wire.project()
	if proj.ID == "" {
		return nil, fmt.Errorf("create project: store returned no id")
	}
	return &proj, nil
}

// Get fetches a single project.
func (c *Client) Get(ctx context.Context, id string) (*project.Project, error) {
	var wire wireProject
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetSuccessResult(&wire).
		Get(c.resource + "/{id}")
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	if !resp.IsSuccessState() {
		return nil, statusError(resp)
	}
	proj := wire.project()
	return &proj, nil
}

// Activity reads the mutation log of a portfolio server. Plain record
// stores have no such endpoint and answer with a StatusError.
func (c *Client) Activity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	r := c.http.R().SetContext(ctx)
	if opts.Limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		r.SetQueryParam("offset", strconv.Itoa(opts.Offset))
	}
	if opts.ProjectID != "" {
		r.SetQueryParam("project_id", opts.ProjectID)
	}
	if opts.Type != nil {
		r.SetQueryParam("type", string(*opts.Type))
	}

	var entries []activity.Entry
	resp, err := r.SetSuccessResult(&entries).Get("/activity")
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, statusError(resp)
	}
	return entries, nil
}

// Delete removes the project with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(c.resource + "/{id}")
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	if !resp.IsSuccessState() {
		return statusError(resp)
	}
	return nil
}

func statusError(resp *req.Response) error {
	return &StatusError{
		Method:     resp.Request.Method,
		Path:       resp.Request.RawURL,
		StatusCode: resp.StatusCode,
		Body:       resp.String(),
	}
}

// validationError decodes a 400 {"fields": {...}} body into a ValidationError.
func validationError(resp *req.Response) error {
	if resp.StatusCode != http.StatusBadRequest {
		return nil
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(resp.Bytes(), &body); err != nil || len(body.Fields) == 0 {
		return nil
	}
	return &project.ValidationError{Fields: body.Fields}
}

// wireProject accepts both string and numeric ids.
type wireProject struct {
	ID        flexID         `json:"id"`
	Name      string         `json:"name"`
	Owner     string         `json:"owner"`
	Status    project.Status `json:"status"`
	Budget    float64        `json:"budget"`
	Spent     float64        `json:"spent"`
	CreatedAt string         `json:"createdAt"`
}

func (w wireProject) project() project.Project {
	return project.Project{
		ID:        string(w.ID),
		Name:      w.Name,
		Owner:     w.Owner,
		Status:    w.Status,
		Budget:    w.Budget,
		Spent:     w.Spent,
		CreatedAt: w.CreatedAt,
	}
}

type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("id must be a string or a number")
	}
	*f = flexID(n.String())
	return nil
}
