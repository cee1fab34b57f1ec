package repositories

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeservices/internal/domain"
	"homeservices/internal/domain/models"
	"homeservices/internal/store"
	"homeservices/internal/supabase"
)

type failingStore struct{ err error }

func (f failingStore) Insert(context.Context, string, store.Row) ([]store.Row, error) {
	return nil, f.err
}
func (f failingStore) Select(context.Context, string, store.Order) ([]store.Row, error) {
	return nil, f.err
}
func (f failingStore) UpdateByID(context.Context, string, string, store.Row) error { return f.err }

func text(s string) *models.Text { return models.NewText(s, true) }

func steppingClock() func() time.Time {
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestBookingRepositoryCreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := BookingRepository{Store: store.NewMemoryStore().WithClock(steppingClock())}

	created, err := repo.Create(ctx, models.BookingInput{FullName: text("A"), Phone: text("1")}, domain.BookingRequested)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, domain.BookingRequested, created[0].Status)
	assert.Equal(t, "A", created[0].FullName.Value())
	assert.Nil(t, created[0].Email, "missing fields are stored as null")
	assert.NotEmpty(t, created[0].ID)

	_, err = repo.Create(ctx, models.BookingInput{FullName: text("B")}, domain.BookingRequested)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].FullName.Value())
	assert.Equal(t, "A", list[1].FullName.Value())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := BookingRepository{Store: mem}

	created, err := repo.Create(ctx, models.BookingInput{}, domain.BookingRequested)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created[0].ID.String(), "confirmed"))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Status("confirmed"), list[0].Status)
}

func TestWorkerRepositoryStoresDocumentURLs(t *testing.T) {
	ctx := context.Background()
	repo := WorkerRepository{Store: store.NewMemoryStore()}

	err := repo.Create(ctx, models.WorkerInput{Phone: text("98")}, map[string]string{
		"aadhaar_url": "http://x/a",
		"pan_url":     "http://x/p",
		"photo_url":   "http://x/ph",
	}, domain.WorkerPending)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.WorkerPending, list[0].Status)
	assert.Equal(t, "http://x/a", list[0].AadhaarURL.Value())
	assert.Equal(t, "http://x/p", list[0].PanURL.Value())
	assert.Equal(t, "http://x/ph", list[0].PhotoURL.Value())

	require.NoError(t, repo.UpdateStatus(ctx, list[0].ID.String(), "approved"))
	list, _ = repo.List(ctx)
	assert.Equal(t, domain.Status("approved"), list[0].Status)
}

func TestRepositoriesWrapStoreFailures(t *testing.T) {
	ctx := context.Background()
	bad := failingStore{err: errors.New("connection refused")}

	_, err := BookingRepository{Store: bad}.List(ctx)
	assert.True(t, domain.IsUpstream(err))
	_, err = BookingRepository{Store: bad}.Create(ctx, models.BookingInput{}, domain.BookingRequested)
	assert.True(t, domain.IsUpstream(err))
	assert.True(t, domain.IsUpstream(WorkerRepository{Store: bad}.UpdateStatus(ctx, "1", "x")))
	assert.True(t, domain.IsUpstream(WorkerRepository{Store: bad}.Create(ctx, models.WorkerInput{}, nil, domain.WorkerPending)))
}

func TestListEmptyTable(t *testing.T) {
	list, err := WorkerRepository{Store: store.NewMemoryStore()}.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Len(t, list, 0)
}

func TestSupabaseBackedListKeepsBigintIDs(t *testing.T) {
	var patchedID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":9007199254740993,"full_name":"Asha","status":"requested","created_at":"2025-06-01T08:00:00Z"}]`)
		case http.MethodPatch:
			patchedID = r.URL.Query().Get("id")
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	client, err := supabase.New(supabase.Config{ProjectURL: srv.URL, ServiceKey: "k"})
	require.NoError(t, err)
	repo := BookingRepository{Store: store.NewSupabase(client)}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "9007199254740993", list[0].ID.String())

	require.NoError(t, repo.UpdateStatus(context.Background(), list[0].ID.String(), "confirmed"))
	assert.Equal(t, "eq.9007199254740993", patchedID)
}
