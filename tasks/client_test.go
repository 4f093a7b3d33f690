package tasks_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fakecredentialsrepo "github.com/jrsteele09/go-taskassign/credentials/repofake"
	"github.com/jrsteele09/go-taskassign/gateway"
	errs "github.com/jrsteele09/go-taskassign/internal/errors"
	"github.com/jrsteele09/go-taskassign/internal/utils"
	"github.com/jrsteele09/go-taskassign/tasks"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T, handler http.Handler) *tasks.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	creds := fakecredentialsrepo.NewFakeCredentialsRepo()
	require.NoError(t, creds.Store("tok-1"))

	gw, err := gateway.New(server.URL, creds)
	require.NoError(t, err)

	client, err := tasks.NewClient(gw)
	require.NoError(t, err)
	return client
}

func TestListMine(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-1", r.Header.Get(gateway.AuthTokenHeader))
		require.NoError(t, json.NewEncoder(w).Encode([]tasks.Task{
			{ID: "t1", Title: "Fix the sink", AssignedTo: "u1"},
			{ID: "t2", Title: "Paint the fence", AssignedTo: "u1", Completed: true, CompletedAt: utils.Ptr(time.Now().Truncate(time.Second))},
		}))
	})

	client := setupClient(t, mux)
	list, err := client.ListMine(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Fix the sink", list[0].Title)
	require.True(t, list[1].Completed)
	require.NotNil(t, list[1].CompletedAt)
}

func TestListAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/all", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([]tasks.Task{{ID: "t1"}}))
	})

	client := setupClient(t, mux)
	list, err := client.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(tasks.Task{ID: "t1", Title: "Fix the sink"}))
	})

	client := setupClient(t, mux)
	task, err := client.Get(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", task.ID)
}

func TestGetNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"msg":"no such task"}`, http.StatusNotFound)
	})

	client := setupClient(t, mux)
	_, err := client.Get(context.Background(), "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/tasks/create", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			AssignedTo  string `json:"assignedTo"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Fix the sink", req.Title)
		require.Equal(t, "u2", req.AssignedTo)
		require.NoError(t, json.NewEncoder(w).Encode(tasks.Task{ID: "t9", Title: req.Title, AssignedTo: req.AssignedTo}))
	})

	client := setupClient(t, mux)
	created, err := client.Create(context.Background(), "Fix the sink", "kitchen sink drips", "u2")
	require.NoError(t, err)
	require.Equal(t, "t9", created.ID)
}

func TestComplete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/tasks/t1/complete", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "done and tested", r.FormValue("note"))

		images := r.MultipartForm.File["images"]
		require.Len(t, images, 2)
		require.Equal(t, "evidence.jpg", images[0].Filename)
		require.Equal(t, "image_1.jpg", images[1].Filename) // unnamed image gets a positional name

		file, err := images[0].Open()
		require.NoError(t, err)
		defer file.Close()
		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, "jpeg-bytes", string(contents))

		require.NoError(t, json.NewEncoder(w).Encode(tasks.Task{ID: "t1", Completed: true, Note: "done and tested"}))
	})

	client := setupClient(t, mux)
	updated, err := client.Complete(context.Background(), "t1", "done and tested", []tasks.Image{
		{Name: "evidence.jpg", Reader: strings.NewReader("jpeg-bytes")},
		{Reader: strings.NewReader("more-bytes")},
	})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "done and tested", updated.Note)
}

func TestCompleteWithoutNoteOrImages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/tasks/t1/complete", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Empty(t, r.FormValue("note"))
		require.Empty(t, r.MultipartForm.File["images"])
		require.NoError(t, json.NewEncoder(w).Encode(tasks.Task{ID: "t1", Completed: true}))
	})

	client := setupClient(t, mux)
	updated, err := client.Complete(context.Background(), "t1", "", nil)
	require.NoError(t, err)
	require.True(t, updated.Completed)
}
