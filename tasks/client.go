package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-taskassign/gateway"
	"github.com/pkg/errors"
)

// Client calls the task endpoints of the task server through the gateway.
// Scalar bodies go as JSON; the file-bearing completion upload goes as
// multipart/form-data.
type Client struct {
	gw *gateway.Gateway
}

// NewClient initializes a task API client.
func NewClient(gw *gateway.Gateway) (*Client, error) {
	if gw == nil {
		return nil, errors.New("[tasks.NewClient] gateway is required")
	}
	return &Client{gw: gw}, nil
}

// ListMine retrieves the tasks assigned to the current user.
func (c *Client) ListMine(ctx context.Context) ([]Task, error) {
	var list []Task
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/api/tasks/user", nil, &list); err != nil {
		return nil, errors.Wrap(err, "[Client.ListMine] get tasks")
	}
	return list, nil
}

// ListAll retrieves every task. Requires an admin session server-side.
func (c *Client) ListAll(ctx context.Context) ([]Task, error) {
	var list []Task
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/api/tasks/all", nil, &list); err != nil {
		return nil, errors.Wrap(err, "[Client.ListAll] get tasks")
	}
	return list, nil
}

// Get retrieves a single task by ID.
func (c *Client) Get(ctx context.Context, id string) (Task, error) {
	var task Task
	if err := c.gw.DoJSON(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return Task{}, errors.Wrapf(err, "[Client.Get] get task %s", id)
	}
	return task, nil
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo"`
}

// Create creates a task assigned to a user. Requires an admin session
// server-side.
func (c *Client) Create(ctx context.Context, title, description, assignedTo string) (Task, error) {
	var created Task
	body := createRequest{Title: title, Description: description, AssignedTo: assignedTo}
	if err := c.gw.DoJSON(ctx, http.MethodPost, "/api/tasks/create", body, &created); err != nil {
		return Task{}, errors.Wrap(err, "[Client.Create] create task")
	}
	return created, nil
}

// Complete marks a task done with an optional note and zero or more evidence
// photos, uploaded as multipart form data.
func (c *Client) Complete(ctx context.Context, id, note string, images []Image) (Task, error) {
	form := gateway.NewForm()
	if note != "" {
		form.AddField("note", note)
	}
	for i, image := range images {
		name := image.Name
		if name == "" {
			name = fmt.Sprintf("image_%d.jpg", i)
		}
		form.AddFile("images", name, image.Reader)
	}

	var updated Task
	path := "/api/tasks/" + url.PathEscape(id) + "/complete"
	if err := c.gw.DoMultipart(ctx, http.MethodPut, path, form, &updated); err != nil {
		return Task{}, errors.Wrapf(err, "[Client.Complete] complete task %s", id)
	}
	return updated, nil
}
