package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDashboard_Health(t *testing.T) {
	store := newTestStore(t)
	router := NewDashboard(store, false)

	w := dashboardRequest(t, router, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDashboard_ReportAPI(t *testing.T) {
	store := newTestStore(t)
	record := sampleRecord("Canal Bom")
	_, err := store.SaveReport(CollectionReport{record}, time.Now())
	require.NoError(t, err)

	router := NewDashboard(store, false)
	w := dashboardRequest(t, router, "/api/report")
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Report   string          `json:"report"`
		Channels []ChannelRecord `json:"channels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Contains(t, payload.Report, "report_")
	require.Len(t, payload.Channels, 1)
	assert.Equal(t, "Canal Bom", payload.Channels[0].ChannelName)
}

func TestDashboard_ReportAPI_NoReport(t *testing.T) {
	store := newTestStore(t)
	router := NewDashboard(store, false)

	w := dashboardRequest(t, router, "/api/report")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_OverviewListsChannelsWithArtifacts(t *testing.T) {
	store := newTestStore(t)

	withArt := sampleRecord("Com Nuvem")
	withArt.WordcloudPath = filepath.Join("wordclouds", "wc_Com_Nuvem.png")
	require.NoError(t, os.WriteFile(filepath.Join(store.DataDir(), withArt.WordcloudPath), []byte("png"), 0644))

	withoutArt := sampleRecord("Sem Nuvem")
	withoutArt.WordcloudPath = filepath.Join("wordclouds", "missing.png")

	_, err := store.SaveReport(CollectionReport{withArt, withoutArt}, time.Now())
	require.NoError(t, err)

	router := NewDashboard(store, false)
	w := dashboardRequest(t, router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Com Nuvem")
	assert.NotContains(t, body, "Sem Nuvem")
	assert.Contains(t, body, "wc_Com_Nuvem.png")
}

func TestDashboard_OverviewWithoutReport(t *testing.T) {
	store := newTestStore(t)
	router := NewDashboard(store, false)

	w := dashboardRequest(t, router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No wordclouds available yet")
}

func TestDashboard_ServesWordcloudImages(t *testing.T) {
	store := newTestStore(t)
	imgPath := filepath.Join(store.DataDir(), "wordclouds", "wc_canal.png")
	require.NoError(t, os.WriteFile(imgPath, []byte("png-bytes"), 0644))

	router := NewDashboard(store, false)
	w := dashboardRequest(t, router, "/wordclouds/wc_canal.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())
}
