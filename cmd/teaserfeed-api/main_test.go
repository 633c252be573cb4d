package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T) (*gin.Engine, string, string) {
	t.Helper()
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "feed.xml")
	reportPath := filepath.Join(dir, "lastrun.json")
	router := NewFeedServer(feedPath, reportPath).SetupRouter()
	return router, feedPath, reportPath
}

// TestHandleGetFeed verifies serving the generated feed document
func TestHandleGetFeed(t *testing.T) {
	router, feedPath, _ := setupTestServer(t)
	require.NoError(t, os.WriteFile(feedPath, []byte(`<rss version="2.0"></rss>`), 0o644))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/feed", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")
	assert.Contains(t, w.Body.String(), "<rss")
}

// TestHandleGetFeed_NotGenerated verifies the 404 error shape before the first run
func TestHandleGetFeed_NotGenerated(t *testing.T) {
	router, _, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/feed", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

// TestHandleGetStatus verifies serving the last run report
func TestHandleGetStatus(t *testing.T) {
	router, _, reportPath := setupTestServer(t)
	require.NoError(t, os.WriteFile(reportPath, []byte(`{"new": 3}`), 0o644))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"new": 3`)
}

// TestCORSHeaders verifies the CORS middleware is applied
func TestCORSHeaders(t *testing.T) {
	router, _, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/api/v1/feed", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
