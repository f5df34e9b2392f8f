package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/pantry"
)

type memGateway struct {
	state domain.State
}

func (g *memGateway) Load(context.Context) domain.State { return g.state }

func (g *memGateway) Save(_ context.Context, state domain.State) error {
	g.state = state
	return nil
}

func (g *memGateway) Clear(context.Context) error {
	g.state = domain.State{}
	return nil
}

func newTestServer(t *testing.T, initial domain.State) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := pantry.NewStore(context.Background(), &memGateway{state: initial}, logger, time.Hour)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return NewServer(store, true, logger)
}

func seedTwo() domain.State {
	return domain.State{
		Items: []domain.Item{
			{ID: "i1", Name: "eggs", Unit: domain.String("dozen"), OnHand: domain.Number(1), Par: domain.Number(2), UpdatedAt: 200},
			{ID: "i2", Name: "rice", Category: domain.String("Dry Goods"), OnHand: domain.Number(3), UpdatedAt: 100},
		},
		SelectedIDs: []string{},
		Preferences: domain.Preferences{AutoresetAfterShare: true},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestListItems(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodGet, "/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "eggs", resp.Items[0].Name, "updated sort puts the freshest first")
	assert.Equal(t, []string{"Dry Goods"}, resp.Categories)
}

func TestListItemsWithSearch(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodGet, "/items?search=rice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "rice", resp.Items[0].Name)
}

func TestCreateItem(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/items", itemDraft{Name: "beans", Category: "Dry Goods"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "beans", item.Name)
}

func TestCreateItemEmptyNameRejected(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/items", itemDraft{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdjustClampsAtZero(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/items/i1/adjust", map[string]float64{"delta": -10})
	require.Equal(t, http.StatusOK, rec.Code)

	var item domain.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, float64(0), *item.OnHand)
}

func TestDeleteItem(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodDelete, "/items/i2", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/items/i2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareFlow(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/items/i1/select", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp shareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Text, "eggs (dozen)")
	assert.Contains(t, resp.Text, "need 1")
	assert.True(t, resp.SMSCapable)
	assert.Equal(t, 1, resp.ItemCount)

	rec = doJSON(t, s, http.MethodPost, "/share/done", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/items", nil)
	var list listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.SelectedIDs, "autoreset clears the selection after sharing")
}

func TestSetPreference(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPut, "/preferences/showArchived", map[string]bool{"value": true})
	require.Equal(t, http.StatusOK, rec.Code)

	var prefs domain.Preferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.True(t, prefs.ShowArchived)
}

func TestSetPreferenceUnknownKey(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPut, "/preferences/mystery", map[string]bool{"value": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportWithDeclaredResolution(t *testing.T) {
	s := newTestServer(t, seedTwo())

	payload := map[string]any{
		"items": []map[string]any{
			{"id": "x", "name": "EGGS", "updatedAt": 1},
			{"id": "y", "name": "beans", "updatedAt": 2},
		},
	}
	rec := doJSON(t, s, http.MethodPost, "/import?resolve=keep-both", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["conflicts"])
	assert.Equal(t, 4, resp["items"])
}

func TestListItemsBadSort(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodGet, "/items?sort=newest", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportWithoutItemsArray(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/import", map[string]any{"preferences": map[string]bool{"showArchived": true}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportBadResolution(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodPost, "/import?resolve=merge", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportMalformedPayload(t *testing.T) {
	s := newTestServer(t, seedTwo())

	req := httptest.NewRequest(http.MethodPost, "/import", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportHasAttachmentHeaders(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pantri-export-")

	var state domain.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Len(t, state.Items, 2)
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, seedTwo())

	rec := doJSON(t, s, http.MethodGet, "/items", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
