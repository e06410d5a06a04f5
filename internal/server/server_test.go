package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rdtech2020/pratik-grammars/internal/config"
	"github.com/rdtech2020/pratik-grammars/internal/corrector"
	"github.com/rdtech2020/pratik-grammars/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSettings() config.ServerSettings {
	return config.ServerSettings{Host: "127.0.0.1", Port: 0, PageSize: 20, MaxPageSize: 100}
}

// newTestServer builds a server over the rule cascade only, with an optional
// sqlite store.
func newTestServer(t *testing.T, withStore bool) *Server {
	t.Helper()

	var db *store.Store
	if withStore {
		var err error
		db, err = store.New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}
		t.Cleanup(func() { db.Close() })
	}

	corr := corrector.New(nil, nil, corrector.DefaultPolicy(), nil)
	return New(corr, nil, db, nil, nil, testSettings())
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCorrect(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "how is you?"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp CorrectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Original != "how is you?" || resp.Corrected != "How are you?" {
		t.Errorf("response = %+v, want correction applied", resp)
	}
}

func TestHandleCorrect_MissingText(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodPost, "/correct", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing text", w.Code)
	}
}

func TestHandleCorrect_MalformedJSON(t *testing.T) {
	r := newTestServer(t, false).Router()

	req := httptest.NewRequest(http.MethodPost, "/correct", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed body", w.Code)
	}
}

func TestHandleBatch(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodPost, "/correct/batch", BatchRequest{
		Texts: []string{"how is you?", "The book is on the table"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Results []CorrectionResponse `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Corrected != "How are you?" {
		t.Errorf("first result = %+v, want correction applied", resp.Results[0])
	}
	if resp.Results[1].Corrected != resp.Results[1].Original {
		t.Errorf("second result = %+v, want already-correct text unchanged", resp.Results[1])
	}
}

func TestHandleHealth(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", resp["status"])
	}
	if _, present := resp["model"]; present {
		t.Error("health reported model info without an adapter")
	}
}

func TestHandleInfo(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/correct") {
		t.Error("info response does not list the correction endpoint")
	}
}

func TestHandleHistory_NoStore(t *testing.T) {
	r := newTestServer(t, false).Router()

	w := doJSON(t, r, http.MethodGet, "/history", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without a store", w.Code)
	}
}

func TestHandleHistory(t *testing.T) {
	srv := newTestServer(t, true)
	r := srv.Router()

	doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "she dont like it"})
	doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "fine already"})

	w := doJSON(t, r, http.MethodGet, "/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Corrections []struct {
			OriginalText  string `json:"original_text"`
			CorrectedText string `json:"corrected_text"`
			Changed       bool   `json:"changed"`
		} `json:"corrections"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Corrections) != 2 {
		t.Fatalf("got %d history entries, want 2", len(resp.Corrections))
	}
	if resp.Limit != 20 || resp.Offset != 0 {
		t.Errorf("paging = %d/%d, want defaults 20/0", resp.Limit, resp.Offset)
	}
}

func TestHandleHistory_LimitClamped(t *testing.T) {
	r := newTestServer(t, true).Router()

	w := doJSON(t, r, http.MethodGet, "/history?limit=5000", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Limit != 100 {
		t.Errorf("limit = %d, want clamped to 100", resp.Limit)
	}
}

func TestHandleStats(t *testing.T) {
	r := newTestServer(t, true).Router()

	doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "how is you?"})

	w := doJSON(t, r, http.MethodGet, "/analytics/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if stats.TotalCorrections != 1 || stats.ChangedCount != 1 {
		t.Errorf("stats = %+v, want one changed correction recorded", stats)
	}
}

func TestCorrectOne_MemoryCacheHit(t *testing.T) {
	srv := newTestServer(t, true)
	r := srv.Router()

	doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "how is you?"})
	doJSON(t, r, http.MethodPost, "/correct", TextRequest{Text: "how is you?"})

	w := doJSON(t, r, http.MethodGet, "/analytics/stats", nil)
	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// The repeat request is a cache hit: no second history row.
	if stats.TotalCorrections != 1 {
		t.Errorf("total corrections = %d, want 1 (repeat served from memory)", stats.TotalCorrections)
	}
	if stats.MemoryHits != 1 {
		t.Errorf("memory hits = %d, want 1", stats.MemoryHits)
	}
}
