package supabase

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, string) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{ProjectURL: srv.URL + "/", ServiceKey: "service-key"})
	require.NoError(t, err)
	return c, srv.URL
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{ServiceKey: "k"})
	assert.Error(t, err)
	_, err = New(Config{ProjectURL: "https://x.supabase.co"})
	assert.Error(t, err)
	_, err = New(Config{ProjectURL: "not a url", ServiceKey: "k"})
	assert.Error(t, err)
}

func TestSelectOrdersDescending(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/bookings", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.True(t, strings.HasPrefix(r.URL.Query().Get("order"), "created_at.desc"), r.URL.Query().Get("order"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":2},{"id":1}]`)
	})

	body, _, err := c.From("bookings").Select("*", "", false).Order("created_at", &postgrest.OrderOpts{Ascending: false}).Execute()
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, DecodeRows(body, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, json.Number("2"), rows[0]["id"])
}

func TestInsertAsksForRepresentation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "requested", body["status"])
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":7,"status":"requested"}]`)
	})

	_, _, err := c.From("bookings").Insert(map[string]any{"status": "requested"}, false, "", "representation", "").Execute()
	require.NoError(t, err)
}

func TestUpdateFiltersByID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.15", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	_, _, err := c.From("workers").Update(map[string]any{"status": "approved"}, "minimal", "").Eq("id", "15").Execute()
	require.NoError(t, err)
}

func TestErrorResponseSurfacesMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"PGRST204","message":"column not found"}`)
	})

	_, _, err := c.From("bookings").Select("*", "", false).Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PGRST204")
	assert.Contains(t, err.Error(), "column not found")
}

func TestDecodeRowsKeepsBigintPrecision(t *testing.T) {
	var rows []map[string]any
	require.NoError(t, DecodeRows([]byte(`[{"id":9007199254740993}]`), &rows))
	assert.Equal(t, json.Number("9007199254740993"), rows[0]["id"])

	var empty []map[string]any
	require.NoError(t, DecodeRows(nil, &empty))
	assert.Nil(t, empty)
}

func TestStorageUploadAndPublicURL(t *testing.T) {
	var gotPath, gotType, gotKey string
	var gotBody []byte
	c, base := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotType = r.Header.Get("Content-Type")
		gotKey = r.Header.Get("apikey")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"Key":"worker-documents/aadhaar/x.png"}`)
	})

	ct := "image/png"
	_, err := c.Storage().UploadFile("worker-documents", "aadhaar/98_1700000000_card.png", bytes.NewReader([]byte("png")), storageOptions(&ct))
	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/worker-documents/aadhaar/98_1700000000_card.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, []byte("png"), gotBody)

	u := c.Storage().GetPublicUrl("worker-documents", "aadhaar/98_1700000000_card.png").SignedURL
	assert.Equal(t, base+"/storage/v1/object/public/worker-documents/aadhaar/98_1700000000_card.png", u)
}

func storageOptions(contentType *string) storage_go.FileOptions {
	return storage_go.FileOptions{ContentType: contentType}
}
