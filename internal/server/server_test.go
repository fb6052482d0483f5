package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/docx"
	"resumeforge/internal/errors"
	"resumeforge/internal/observability"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelError)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			DefaultTemplate: "classic",
		},
		Storage: config.StorageConfig{
			Driver: "file",
			Path:   t.TempDir() + "/resumes.json",
			UserID: "local",
		},
	}
}

func testObservability(t *testing.T, cfg *config.Config) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	return om
}

func newTestServer(t *testing.T, cfg *config.Config, serverCfg ServerConfig) (*Server, *http.ServeMux) {
	t.Helper()

	resumes, err := store.New(context.Background(), &cfg.Storage, testLogger)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { _ = resumes.Close() })

	srv := NewServer(cfg, serverCfg, resumes, testLogger)
	if srv.RateLimiter != nil {
		t.Cleanup(srv.RateLimiter.Close)
	}

	om := testObservability(t, cfg)
	return srv, srv.setupRoutes(om)
}

func sampleResume() types.ResumeData {
	return types.ResumeData{
		Name: "Jane Doe",
		Contact: types.Contact{
			Phone:    "555-0100",
			Email:    "jane@example.com",
			Location: "Portland, OR",
		},
		Summary: "Platform engineer with a decade of infrastructure work.",
		Experience: []types.Experience{
			{
				Company:     "Acme Corp",
				JobTitle:    "Staff Engineer",
				Dates:       "2019 - Present",
				Description: []string{"Led migration to Kubernetes."},
			},
		},
		Education: []types.Education{
			{Institution: "State University", Degree: "BS Computer Science", Dates: "2010 - 2014"},
		},
		Skills: []types.Skill{
			{Category: "Infrastructure", Details: "Kubernetes, Terraform"},
		},
	}
}

// fakeAIProvider returns canned results without touching the network.
type fakeAIProvider struct {
	parseResult types.ResumeData
	parseErr    error
	scoreResult types.AtsAnalysis
	scoreErr    error
}

func (f *fakeAIProvider) ParseResume(ctx context.Context, rawText string) (types.ResumeData, *ai.TokenUsage, error) {
	return f.parseResult, nil, f.parseErr
}

func (f *fakeAIProvider) ScoreResume(ctx context.Context, resume types.ResumeData, jobDescription string) (types.AtsAnalysis, *ai.TokenUsage, error) {
	return f.scoreResult, nil, f.scoreErr
}

func (f *fakeAIProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeAIProvider) Close() error { return nil }

func useFakeAI(srv *Server, fake *fakeAIProvider) {
	srv.AIFactory = func(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*ai.Service, error) {
		return &ai.Service{Provider: fake}, nil
	}
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareResolvesUserIdentity(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, ServerConfig{
		APIKeys:       []string{"team-alpha-key-0001", "team-beta-key-0002"},
		Users:         map[string]string{"team-alpha-key-0001": "alpha"},
		DefaultUserID: "local",
	}, nil, testLogger)

	var gotUser string
	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUser = requestUserID(r, "fallback")
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     map[string]string
		wantStatus int
		wantUser   string
	}{
		{
			name:       "MissingKey",
			header:     nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "InvalidKey",
			header:     map[string]string{"X-API-Key": "bogus"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MappedKeyUsesConfiguredUser",
			header:     map[string]string{"X-API-Key": "team-alpha-key-0001"},
			wantStatus: http.StatusOK,
			wantUser:   "alpha",
		},
		{
			name:       "UnmappedKeyFallsBackToKey",
			header:     map[string]string{"X-API-Key": "team-beta-key-0002"},
			wantStatus: http.StatusOK,
			wantUser:   "team-beta-key-0002",
		},
		{
			name:       "BearerTokenAccepted",
			header:     map[string]string{"Authorization": "Bearer team-alpha-key-0001"},
			wantStatus: http.StatusOK,
			wantUser:   "alpha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUser != "" && gotUser != tt.wantUser {
				t.Errorf("user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestAuthMiddlewareWithoutKeysUsesDefaultUser(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, ServerConfig{DefaultUserID: "shared"}, nil, testLogger)

	var gotUser string
	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUser = requestUserID(r, "fallback")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/resumes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUser != "shared" {
		t.Errorf("user = %q, want %q", gotUser, "shared")
	}
}

func TestResumesLifecycle(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	// Create
	rec := postJSON(t, mux, "/resumes", SaveResumeRequest{
		Name:    "Jane Doe",
		RawText: "raw resume text",
		Resume:  sampleResume(),
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created types.SavedResume
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has no id")
	}

	// Update in place
	updated := sampleResume()
	updated.Summary = "Updated summary."
	rec = postJSON(t, mux, "/resumes", SaveResumeRequest{
		ID:      created.ID,
		Name:    "Jane Doe",
		RawText: "raw resume text",
		Resume:  updated,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// List
	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, req)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status = %d", listRec.Code)
	}
	var records []types.SavedResume
	if err := json.Unmarshal(listRec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].ResumeData.Summary != "Updated summary." {
		t.Errorf("summary = %q, update was not applied", records[0].ResumeData.Summary)
	}

	// Delete
	delReq := httptest.NewRequest(http.MethodDelete, "/resumes/"+created.ID, nil)
	delRec := httptest.NewRecorder()
	mux.ServeHTTP(delRec, delReq)
	if delRec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", delRec.Code)
	}

	// Deleting again reports not found
	delRec = httptest.NewRecorder()
	mux.ServeHTTP(delRec, httptest.NewRequest(http.MethodDelete, "/resumes/"+created.ID, nil))
	if delRec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want %d", delRec.Code, http.StatusNotFound)
	}
}

func TestSaveResumeUnknownIDIsNotFound(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	rec := postJSON(t, mux, "/resumes", SaveResumeRequest{
		ID:     "11111111-1111-4111-8111-111111111111",
		Name:   "Jane Doe",
		Resume: sampleResume(),
	}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestExportHandlerProducesAttachment(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	rec := postJSON(t, mux, "/export", ExportRequest{Resume: sampleResume(), Template: "modern"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if got := rec.Header().Get("Content-Type"); got != docx.MIMEType {
		t.Errorf("Content-Type = %q, want %q", got, docx.MIMEType)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Jane_Doe_Resume.docx") {
		t.Errorf("Content-Disposition = %q, want filename Jane_Doe_Resume.docx", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("response body is not a zip archive")
	}
}

func TestExportHandlerRejectsUnknownTemplate(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	rec := postJSON(t, mux, "/export", ExportRequest{Resume: sampleResume(), Template: "fancy"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFormatHandlerValidation(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local", MaxRequestSize: 1 << 20})

	t.Run("MissingRawText", func(t *testing.T) {
		rec := postJSON(t, mux, "/format", FormatRequest{RawText: "   "}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if resp.Error != "Missing resume text" {
			t.Errorf("error = %q", resp.Error)
		}
	})

	t.Run("WrongContentType", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/format", strings.NewReader("rawText=abc"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		rec := postJSON(t, mux, "/format", FormatRequest{RawText: "some resume", Template: "fancy"}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestScoreHandlerValidation(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	t.Run("MissingJobDescription", func(t *testing.T) {
		rec := postJSON(t, mux, "/score", ScoreRequest{Resume: sampleResume()}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("InvalidResume", func(t *testing.T) {
		rec := postJSON(t, mux, "/score", ScoreRequest{JobDescription: "Go engineer"}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestRequestSizeLimit(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local", MaxRequestSize: 256})

	huge := strings.Repeat("x", 2048)
	rec := postJSON(t, mux, "/format", FormatRequest{RawText: huge}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("body = %q, want size limit message", rec.Body.String())
	}
}

func TestRateLimitReturns429(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{
		DefaultUserID: "local",
		RateLimit: &config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 1,
			BurstCapacity:  1,
			ByIP:           true,
			Window:         time.Minute,
		},
	})

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", code, http.StatusOK)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", code, http.StatusTooManyRequests)
	}
}

func TestStatsHandler(t *testing.T) {
	cfg := testConfig(t)
	srv, mux := newTestServer(t, cfg, ServerConfig{
		Version:        "1.2.3",
		DefaultUserID:  "local",
		MaxRequestSize: 1 << 20,
	})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var stats map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["service"] != "resumeforge" {
		t.Errorf("service = %v, want resumeforge", stats["service"])
	}
	if stats["version"] != srv.Version {
		t.Errorf("version = %v, want %s", stats["version"], srv.Version)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"team-alpha-key-0001", "team-alp****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTemplateOrDefault(t *testing.T) {
	cfg := testConfig(t)
	srv := NewServer(cfg, ServerConfig{}, nil, testLogger)

	got, err := srv.templateOrDefault("")
	if err != nil {
		t.Fatalf("templateOrDefault(\"\") error = %v", err)
	}
	if got != types.TemplateClassic {
		t.Errorf("default template = %q, want classic", got)
	}

	if _, err := srv.templateOrDefault("fancy"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestResumesAreScopedPerAPIKey(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{
		APIKeys: []string{"team-alpha-key-0001", "team-beta-key-0002"},
		Users: map[string]string{
			"team-alpha-key-0001": "alpha",
			"team-beta-key-0002":  "beta",
		},
	})

	alphaHeader := map[string]string{"X-API-Key": "team-alpha-key-0001"}
	rec := postJSON(t, mux, "/resumes", SaveResumeRequest{Name: "Jane Doe", Resume: sampleResume()}, alphaHeader)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	list := func(key string) []types.SavedResume {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		req.Header.Set("X-API-Key", key)
		listRec := httptest.NewRecorder()
		mux.ServeHTTP(listRec, req)
		if listRec.Code != http.StatusOK {
			t.Fatalf("list status = %d", listRec.Code)
		}
		var records []types.SavedResume
		if err := json.Unmarshal(listRec.Body.Bytes(), &records); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		return records
	}

	if got := len(list("team-alpha-key-0001")); got != 1 {
		t.Errorf("alpha sees %d resumes, want 1", got)
	}
	if got := len(list("team-beta-key-0002")); got != 0 {
		t.Errorf("beta sees %d resumes, want 0", got)
	}
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErrorResponse(rec, "Something failed", "details here", http.StatusTeapot)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Something failed" || resp.Message != "details here" {
		t.Errorf("response = %+v", resp)
	}
}

func TestFormatHandlerScoresAgainstJobDescription(t *testing.T) {
	cfg := testConfig(t)
	srv, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local", MaxRequestSize: 1 << 20})
	useFakeAI(srv, &fakeAIProvider{
		parseResult: sampleResume(),
		scoreResult: types.AtsAnalysis{Score: 82, Suggestions: []string{"Add metrics to bullets."}},
	})

	rec := postJSON(t, mux, "/format", FormatRequest{RawText: "raw resume text", JobDescription: "Go engineer"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Resume.Name != "Jane Doe" {
		t.Errorf("resume name = %q, want Jane Doe", resp.Resume.Name)
	}
	if resp.Analysis == nil || resp.Analysis.Score != 82 {
		t.Fatalf("analysis = %+v, want score 82", resp.Analysis)
	}
	if resp.AnalysisError != "" {
		t.Errorf("analysisError = %q, want empty", resp.AnalysisError)
	}
	if len(resp.View.Columns) == 0 {
		t.Error("response has no rendered view")
	}
}

func TestFormatHandlerRetainsResumeWhenScoringFails(t *testing.T) {
	cfg := testConfig(t)
	srv, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local", MaxRequestSize: 1 << 20})
	useFakeAI(srv, &fakeAIProvider{
		parseResult: sampleResume(),
		scoreErr:    fmt.Errorf("model unavailable"),
	})

	rec := postJSON(t, mux, "/format", FormatRequest{RawText: "raw resume text", JobDescription: "Go engineer"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Resume.Name != "Jane Doe" {
		t.Errorf("resume name = %q, extraction result was dropped", resp.Resume.Name)
	}
	if resp.Analysis != nil {
		t.Errorf("analysis = %+v, want nil", resp.Analysis)
	}
	if !strings.Contains(resp.AnalysisError, "model unavailable") {
		t.Errorf("analysisError = %q, want scoring failure message", resp.AnalysisError)
	}
	if len(resp.View.Columns) == 0 {
		t.Error("response has no rendered view")
	}
}

func TestEditHandlerAppliesFieldEdits(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	rec := postJSON(t, mux, "/edit", EditRequest{
		Resume: sampleResume(),
		Edits: []EditOp{
			{Path: "summary", Value: "Rewritten summary."},
			{Path: "contact.email", Value: "new@example.com"},
			{Path: "experience[0].description[0]", Remove: true},
		},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Resume.Summary != "Rewritten summary." {
		t.Errorf("summary = %q, want rewritten value", resp.Resume.Summary)
	}
	if resp.Resume.Contact.Email != "new@example.com" {
		t.Errorf("email = %q, want new@example.com", resp.Resume.Contact.Email)
	}
	if len(resp.Resume.Experience[0].Description) != 0 {
		t.Errorf("description = %v, want bullet removed", resp.Resume.Experience[0].Description)
	}
	if len(resp.View.Columns) == 0 {
		t.Error("response has no rendered view")
	}
}

func TestEditHandlerValidation(t *testing.T) {
	cfg := testConfig(t)
	_, mux := newTestServer(t, cfg, ServerConfig{DefaultUserID: "local"})

	t.Run("NoEdits", func(t *testing.T) {
		rec := postJSON(t, mux, "/edit", EditRequest{Resume: sampleResume()}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("UnknownPath", func(t *testing.T) {
		rec := postJSON(t, mux, "/edit", EditRequest{
			Resume: sampleResume(),
			Edits:  []EditOp{{Path: "salary", Value: "100"}},
		}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("RemoveOutOfRange", func(t *testing.T) {
		rec := postJSON(t, mux, "/edit", EditRequest{
			Resume: sampleResume(),
			Edits:  []EditOp{{Path: "experience[5]", Remove: true}},
		}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("InvalidResume", func(t *testing.T) {
		rec := postJSON(t, mux, "/edit", EditRequest{
			Edits: []EditOp{{Path: "summary", Value: "x"}},
		}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestRateLimiterStats(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 10, testLogger)
	defer limiter.Close()

	for i := range 3 {
		limiter.Allow(fmt.Sprintf("ip:198.51.100.%d", i))
	}

	stats := limiter.GetStats()
	if stats["active_limiters"] != 3 {
		t.Errorf("active_limiters = %v, want 3", stats["active_limiters"])
	}
	if stats["burst_capacity"] != 10 {
		t.Errorf("burst_capacity = %v, want 10", stats["burst_capacity"])
	}
}
