package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drinkslane/backend/internal/domain"
)

func TestClient_ListRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/products", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "id.asc", r.URL.Query().Get("order"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		// Prices arrive as strings or bare numbers depending on how the
		// row was entered; both must decode.
		w.Write([]byte(`[
			{"id": "1", "title": "Tusker Lager 500ml", "price": "KES 250", "category": "Beer"},
			{"id": "2", "title": "Gilbeys Gin 750ml", "price": 1400, "category": "Gin"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "product-images")
	rows, err := client.ListRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Tusker Lager 500ml", rows[0].Title)
	assert.Equal(t, "KES 250", rows[0].Price.String())
	assert.Equal(t, "1400", rows[1].Price.String())
}

func TestClient_SearchTitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ilike.*gin*", r.URL.Query().Get("title"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"id": "2", "title": "Gilbeys Gin 750ml", "price": "1400", "category": "Gin"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "product-images")
	rows, err := client.SearchTitles(context.Background(), "gin", 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gilbeys Gin 750ml", rows[0].Title)
}

func TestClient_ListImages(t *testing.T) {
	var serverURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/list/product-images", r.URL.Path)
		w.Write([]byte(`[
			{"name": "gilbeys-gin.jpg"},
			{"name": ""},
			{"name": "tusker-lager.png"}
		]`))
	}))
	defer server.Close()
	serverURL = server.URL

	client := NewClient(server.URL, "test-key", "product-images")
	images, err := client.ListImages(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2, "nameless objects are skipped")

	assert.Equal(t, "gilbeys-gin.jpg", images[0].Name)
	assert.Equal(t, serverURL+"/storage/v1/object/public/product-images/gilbeys-gin.jpg", images[0].PublicURL)
}

func TestClient_ClientErrorNotRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", "product-images")
	_, err := client.ListRows(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "4xx responses must not be retried")
}

func TestClient_ServerErrorRetried(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "product-images")
	rows, err := client.ListRows(context.Background())
	require.NoError(t, err, "third attempt should succeed")
	assert.Empty(t, rows)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rows": "not an array"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "product-images")
	_, err := client.ListRows(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
