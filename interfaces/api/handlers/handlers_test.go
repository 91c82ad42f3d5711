package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogpost-generator/application/serviceimpl"
	"blogpost-generator/domain/models"
	"blogpost-generator/domain/services"
	"blogpost-generator/infrastructure/cache"
	"blogpost-generator/pkg/apperrors"
	"blogpost-generator/pkg/config"
	"blogpost-generator/pkg/logger"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "handlers-logs")
	if err == nil {
		_ = logger.Init(dir, false)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeGeneration struct {
	result *models.GenerationResult
	err    error
}

func (f *fakeGeneration) Generate(ctx context.Context, params models.GenerationParameters) (*models.GenerationResult, error) {
	return f.result, f.err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	app      *fiber.App
	sessions services.SessionService
}

func newTestServer(gen *fakeGeneration) *testServer {
	sessions := serviceimpl.NewSessionService(cache.NewSessionRepository(time.Hour), gen)
	cfg := &config.Config{Admin: config.AdminConfig{Token: "secret"}}
	h := NewHandlers(&Services{
		GenerationService: serviceimpl.NewGenerationService(gen),
		SessionService:    sessions,
	}, &Infrastructure{Provider: "fake"}, cfg)

	app := fiber.New()
	app.Get("/health", h.Health.Health)
	app.Get("/health/detailed", h.Health.DetailedHealth)

	api := app.Group("/api/v1")
	api.Get("/options", h.Options.GetOptions)
	api.Post("/articles/generate", h.Article.GenerateArticle)
	api.Post("/sessions", h.Session.CreateSession)
	api.Get("/sessions/:id", h.Session.GetSession)
	api.Patch("/sessions/:id/fields", h.Session.UpdateField)
	api.Post("/sessions/:id/submit", h.Session.Submit)
	api.Get("/sessions/:id/view", h.Session.GetView)
	api.Post("/sessions/:id/copy", h.Session.Copy)
	api.Post("/sessions/:id/share", h.Session.Share)
	api.Get("/sessions/:id/article.html", h.Session.ExportHTML)
	api.Get("/admin/logs", h.Log.GetLogs)

	return &testServer{app: app, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return env
}

func TestGetOptions(t *testing.T) {
	s := newTestServer(&fakeGeneration{})

	resp, body := s.do(t, http.MethodGet, "/api/v1/options", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var opts models.OptionSets
	if err := json.Unmarshal(decode(t, body).Data, &opts); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if len(opts.Languages) != len(models.Languages) || opts.Defaults.ArticleLength != models.LengthLong {
		t.Errorf("options = %+v", opts)
	}
}

func TestGenerateArticle(t *testing.T) {
	tests := []struct {
		name       string
		gen        *fakeGeneration
		body       string
		wantStatus int
		wantKind   string
	}{
		{
			name:       "missing product url",
			gen:        &fakeGeneration{},
			body:       `{"productUrl":""}`,
			wantStatus: fiber.StatusBadRequest,
			wantKind:   string(apperrors.KindValidation),
		},
		{
			name:       "unknown option",
			gen:        &fakeGeneration{},
			body:       `{"productUrl":"https://x.test","language":"Klingon"}`,
			wantStatus: fiber.StatusBadRequest,
			wantKind:   string(apperrors.KindValidation),
		},
		{
			name:       "provider failure",
			gen:        &fakeGeneration{err: apperrors.Generation(errors.New("quota"))},
			body:       `{"productUrl":"https://x.test"}`,
			wantStatus: fiber.StatusBadGateway,
			wantKind:   string(apperrors.KindGeneration),
		},
		{
			name:       "success",
			gen:        &fakeGeneration{result: models.NewGenerationResult("## Hi\nText", nil)},
			body:       `{"productUrl":"https://x.test","generateImages":false}`,
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.gen)
			resp, body := s.do(t, http.MethodPost, "/api/v1/articles/generate", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body)
			}

			env := decode(t, body)
			if tt.wantKind != "" {
				if env.Error == nil || env.Error.Kind != tt.wantKind {
					t.Errorf("error = %+v, want kind %s", env.Error, tt.wantKind)
				}
				return
			}

			var article ArticleResponse
			if err := json.Unmarshal(env.Data, &article); err != nil {
				t.Fatalf("decode article: %v", err)
			}
			if len(article.Nodes) != 2 || article.Nodes[0].Type != models.NodeHeading {
				t.Errorf("nodes = %+v", article.Nodes)
			}
		})
	}
}

func createSession(t *testing.T, s *testServer) string {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/v1/sessions", "")
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d (%s)", resp.StatusCode, body)
	}

	var created SessionResponse
	if err := json.Unmarshal(decode(t, body).Data, &created); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return created.Session.ID.String()
}

func TestSessionFlow(t *testing.T) {
	article := "## Great Blender\nThis blender made my mornings faster and my smoothies far smoother than before.\n[IMAGE_1]"
	s := newTestServer(&fakeGeneration{
		result: models.NewGenerationResult(article, []string{"data:image/jpeg;base64,QUJD"}),
	})
	id := createSession(t, s)
	base := "/api/v1/sessions/" + id

	resp, body := s.do(t, http.MethodPost, base+"/submit", "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("submit without url status = %d (%s)", resp.StatusCode, body)
	}

	resp, body = s.do(t, http.MethodPatch, base+"/fields", `{"field":"productUrl","value":"https://shop.test/blender"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("patch status = %d (%s)", resp.StatusCode, body)
	}
	resp, body = s.do(t, http.MethodPatch, base+"/fields", `{"field":"generateImages","value":true}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("patch bool status = %d (%s)", resp.StatusCode, body)
	}

	resp, body = s.do(t, http.MethodPost, base+"/submit", "")
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("submit status = %d (%s)", resp.StatusCode, body)
	}
	var submitted SubmitResponse
	if err := json.Unmarshal(decode(t, body).Data, &submitted); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if submitted.RequestID != 2 {
		t.Errorf("requestId = %d, want 2 after the rejected submit", submitted.RequestID)
	}
	s.sessions.Wait()

	_, body = s.do(t, http.MethodGet, base+"/view", "")
	var view models.DisplayView
	if err := json.Unmarshal(decode(t, body).Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Kind != models.ViewSucceeded || len(view.Nodes) != 3 {
		t.Fatalf("view = %+v", view)
	}

	resp, body = s.do(t, http.MethodPost, base+"/copy", `{"clipboard":false}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("copy without clipboard status = %d (%s)", resp.StatusCode, body)
	}
	resp, body = s.do(t, http.MethodPost, base+"/copy", `{"clipboard":true}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("copy status = %d (%s)", resp.StatusCode, body)
	}
	var copied CopyResponse
	if err := json.Unmarshal(decode(t, body).Data, &copied); err != nil || copied.Text != article {
		t.Errorf("copied = %+v, err %v", copied, err)
	}

	resp, body = s.do(t, http.MethodPost, base+"/share", `{"nativeShare":true}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("share status = %d (%s)", resp.StatusCode, body)
	}
	var share models.ShareData
	if err := json.Unmarshal(decode(t, body).Data, &share); err != nil {
		t.Fatalf("decode share: %v", err)
	}
	if share.Title != "Great Blender" || share.URL != "https://shop.test/blender" {
		t.Errorf("share = %+v", share)
	}

	resp, body = s.do(t, http.MethodGet, base+"/article.html", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("content type = %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), `src="data:image/jpeg;base64,QUJD"`) {
		t.Errorf("export should inline the image, got %s", body)
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestServer(&fakeGeneration{})
	id := createSession(t, s)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"unknown session", http.MethodGet, "/api/v1/sessions/00000000-0000-0000-0000-000000000001", "", fiber.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/v1/sessions/not-a-uuid/view", "", fiber.StatusNotFound},
		{"unknown field", http.MethodPatch, "/api/v1/sessions/" + id + "/fields", `{"field":"color","value":"red"}`, fiber.StatusBadRequest},
		{"bad option", http.MethodPatch, "/api/v1/sessions/" + id + "/fields", `{"field":"language","value":"Klingon"}`, fiber.StatusBadRequest},
		{"copy without article", http.MethodPost, "/api/v1/sessions/" + id + "/copy", `{"clipboard":true}`, fiber.StatusBadRequest},
		{"export without article", http.MethodGet, "/api/v1/sessions/" + id + "/article.html", "", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body)
			}
			if env := decode(t, body); env.Success {
				t.Error("success should be false")
			}
		})
	}
}

func TestAdminLogsRequireToken(t *testing.T) {
	s := newTestServer(&fakeGeneration{})

	resp, _ := s.do(t, http.MethodGet, "/api/v1/admin/logs", "")
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("no token status = %d", resp.StatusCode)
	}

	resp, _ = s.do(t, http.MethodGet, "/api/v1/admin/logs?token=secret", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("with token status = %d", resp.StatusCode)
	}
}

func TestDetailedHealth(t *testing.T) {
	s := newTestServer(&fakeGeneration{})

	resp, body := s.do(t, http.MethodGet, "/health/detailed", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var health DetailedHealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %s", health.Status)
	}
	if health.Components["redis"].Status != "unavailable" || health.Components["ai_provider"].Message != "fake" {
		t.Errorf("components = %+v", health.Components)
	}
}
