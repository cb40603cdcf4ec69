package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/halfwave/puffextract/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeExtractionService lets handler tests control what the service
// layer returns without exercising the real cryptographic pipeline.
type fakeExtractionService struct {
	result   *service.ExtractedFile
	warnings []string
	err      error
}

func (f *fakeExtractionService) Extract(context.Context, []service.CarrierUpload, string, service.PasswordFields) (*service.ExtractedFile, []string, error) {
	return f.result, f.warnings, f.err
}

func newExtractRequest(t *testing.T, fields map[string]string, includeCarrier bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if includeCarrier {
		part, err := w.CreateFormFile("carriers", "carrier.wav")
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("RIFF....WAVE"))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestExtractHandlerRejectsMissingCarriers(t *testing.T) {
	h := NewHandlers(&fakeExtractionService{})
	r := gin.New()
	r.POST("/api/v1/extract", h.ExtractHandler)

	rec := httptest.NewRecorder()
	req := newExtractRequest(t, map[string]string{"password_a": "password"}, false)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractHandlerRejectsMissingPasswordA(t *testing.T) {
	h := NewHandlers(&fakeExtractionService{})
	r := gin.New()
	r.POST("/api/v1/extract", h.ExtractHandler)

	rec := httptest.NewRecorder()
	req := newExtractRequest(t, nil, true)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractHandlerReturnsRecoveredPayload(t *testing.T) {
	h := NewHandlers(&fakeExtractionService{
		result: &service.ExtractedFile{Filename: "secret.txt", Content: []byte("hello"), FromDecoy: true},
	})
	r := gin.New()
	r.POST("/api/v1/extract", h.ExtractHandler)

	rec := httptest.NewRecorder()
	req := newExtractRequest(t, map[string]string{"password_a": "password"}, true)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if rec.Body.String() != "hello" {
		t.Fatalf("body = %q, want %q", rec.Body.String(), "hello")
	}
	if got := rec.Header().Get("X-Puffextract-From-Decoy"); got != "true" {
		t.Fatalf("X-Puffextract-From-Decoy = %q, want %q", got, "true")
	}
}

func TestHealthHandlerReportsHealthy(t *testing.T) {
	h := NewHandlers(&fakeExtractionService{})
	r := gin.New()
	r.GET("/api/v1/health", h.HealthHandler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
