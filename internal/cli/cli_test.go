package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	projects []project.Project
	listErr  error
	created  []project.CreateRequest
}

func (s *fakeStore) List(context.Context) ([]project.Project, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]project.Project(nil), s.projects...), nil
}

func (s *fakeStore) Create(_ context.Context, req project.CreateRequest) (*project.Project, error) {
	s.created = append(s.created, req)
	p := project.Project{
		ID:        fmt.Sprintf("n%d", len(s.created)),
		Name:      req.Name,
		Owner:     req.Owner,
		Status:    req.Status,
		Budget:    req.Budget,
		Spent:     req.Spent,
		CreatedAt: req.CreatedAt,
	}
	s.projects = append(s.projects, p)
	return &p, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return project.ErrProjectNotFound
}

func sampleStore() *fakeStore {
	return &fakeStore{projects: []project.Project{
		{ID: "1", Name: "Harbor", Owner: "Hana", Status: project.StatusActive, Budget: 1000, Spent: 250, CreatedAt: "2024-05-01"},
		{ID: "2", Name: "Ironwood", Owner: "Ivo", Status: project.StatusPaused, Budget: 500, Spent: 500, CreatedAt: "2024-06-01"},
		{ID: "3", Name: "Juniper", Owner: "Jae", Status: project.StatusDone, Budget: 12.5, Spent: 0, CreatedAt: "2024-07-01"},
	}}
}

type captured struct {
	server string
	token  string
}

func run(t *testing.T, store *fakeStore, args ...string) (string, captured, error) {
	t.Helper()
	var got captured
	cmd := newRootCmd(func(serverURL, token string, _ time.Duration) dashboard.Store {
		got = captured{server: serverURL, token: token}
		return store
	})
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), got, err
}

func TestDashboard_Text(t *testing.T) {
	out, got, err := run(t, sampleStore(), "dashboard", "--server", "http://store:9000", "--token", "abc")
	require.NoError(t, err)
	require.Equal(t, captured{server: "http://store:9000", token: "abc"}, got)

	require.Contains(t, out, "KPIs")
	require.Contains(t, out, "1512.5")
	require.Contains(t, out, "50%")
	require.Contains(t, out, "Top budgets")
	require.Contains(t, out, "3 of 3 projects match (page 1 of 1)")
	require.Less(t, bytes.Index([]byte(out), []byte("Juniper")), bytes.LastIndex([]byte(out), []byte("Harbor")))
}

func TestDashboard_JSON(t *testing.T) {
	out, _, err := run(t, sampleStore(), "dashboard", "-o", "json", "--status", "active", "--page", "4")
	require.NoError(t, err)

	var view dashboard.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, 1, view.Matched)
	require.Equal(t, 1, view.Page.Index)
	require.Equal(t, dashboard.StatusFilter("ACTIVE"), view.State.Status)
	require.Equal(t, 25, view.Summary.KPIs.BurnRate)
}

func TestDashboard_PageSize(t *testing.T) {
	out, _, err := run(t, sampleStore(), "dashboard", "--page-size", "2", "--sort", "name", "--dir", "asc", "--page", "2")
	require.NoError(t, err)
	require.Contains(t, out, "page 2 of 2")
	require.Contains(t, out, "Juniper")
}

func TestDashboard_InvalidSort(t *testing.T) {
	_, _, err := run(t, sampleStore(), "dashboard", "--sort", "color")
	require.ErrorIs(t, err, dashboard.ErrInvalidState)
}

func TestDashboard_SourceDown(t *testing.T) {
	out, _, err := run(t, &fakeStore{listErr: errors.New("connection refused")}, "dashboard")
	require.Error(t, err)
	require.Contains(t, out, "Record store unavailable")
	require.Contains(t, out, "(no projects)")
}

func TestCreate(t *testing.T) {
	store := sampleStore()
	out, _, err := run(t, store, "create", "--name", "Kestrel", "--owner", "Kim", "--budget", "300", "--created-at", "2024-08-01")
	require.NoError(t, err)
	require.Equal(t, "Created project n1 (Kestrel)\n", out)
	require.Len(t, store.created, 1)
	require.Equal(t, project.StatusActive, store.created[0].Status)
}

func TestCreate_ClampSpent(t *testing.T) {
	store := sampleStore()
	_, _, err := run(t, store, "create", "--clamp-spent", "--name", "Kestrel", "--owner", "Kim", "--budget", "300", "--spent", "450", "--created-at", "2024-08-01")
	require.NoError(t, err)
	require.Equal(t, 300.0, store.created[0].Spent)
}

func TestCreate_Invalid(t *testing.T) {
	store := sampleStore()
	_, _, err := run(t, store, "create", "--name", "Kestrel", "--owner", "Kim", "--budget", "-5", "--status", "LATE")
	var verr *project.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "budget")
	require.Contains(t, verr.Fields, "status")
	require.Empty(t, store.created)
}

func TestCreate_RequiresName(t *testing.T) {
	_, _, err := run(t, sampleStore(), "create", "--owner", "Kim")
	require.ErrorContains(t, err, "name")
}

func TestDelete(t *testing.T) {
	store := sampleStore()
	out, _, err := run(t, store, "delete", "2", "-o", "json")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"2","deleted":true}`, out)
	require.Len(t, store.projects, 2)

	_, _, err = run(t, store, "delete", "2")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	_, _, err := run(t, sampleStore(), "dashboard", "-o", "yaml")
	require.ErrorContains(t, err, "unknown output format")
}

type auditedStore struct {
	*fakeStore
	entries []activity.Entry
	opts    activity.ListOptions
}

func (s *auditedStore) Activity(_ context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	s.opts = opts
	return s.entries, nil
}

func runWith(t *testing.T, store dashboard.Store, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(string, string, time.Duration) dashboard.Store { return store })
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestActivity(t *testing.T) {
	store := &auditedStore{fakeStore: sampleStore(), entries: []activity.Entry{
		{ID: 2, ProjectID: "1", Type: activity.TypeProjectDeleted, Summary: "deleted project 1", CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
	}}

	out, err := runWith(t, store, "activity", "--type", "project_deleted", "--limit", "5")
	require.NoError(t, err)
	require.Contains(t, out, "deleted project 1")
	require.Equal(t, 5, store.opts.Limit)
	require.NotNil(t, store.opts.Type)

	out, err = runWith(t, store, "activity", "-o", "json")
	require.NoError(t, err)
	var entries []activity.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)

	_, err = runWith(t, store, "activity", "--type", "renamed")
	require.ErrorContains(t, err, "unknown activity type")
}

func TestActivity_Unsupported(t *testing.T) {
	_, err := runWith(t, sampleStore(), "activity")
	require.ErrorContains(t, err, "does not expose an activity log")
}

type countingStore struct {
	*fakeStore
	mu    sync.Mutex
	lists int
}

func (s *countingStore) List(ctx context.Context) ([]project.Project, error) {
	s.mu.Lock()
	s.lists++
	s.mu.Unlock()
	return s.fakeStore.List(ctx)
}

func TestDashboard_Watch(t *testing.T) {
	store := &countingStore{fakeStore: sampleStore()}
	cmd := newRootCmd(func(string, string, time.Duration) dashboard.Store { return store })
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"dashboard", "--watch", "20ms", "--page-size", "2", "--page", "2"})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, cmd.ExecuteContext(ctx))

	store.mu.Lock()
	defer store.mu.Unlock()
	require.GreaterOrEqual(t, store.lists, 2)
	require.GreaterOrEqual(t, strings.Count(out.String(), "page 2 of 2"), 2)
}
