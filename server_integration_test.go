package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"receiptscan/pkg/auth"
	"receiptscan/pkg/config"
	"receiptscan/pkg/receipt"

	"github.com/gin-gonic/gin"
)

type stubScanner struct {
	text     string
	err      error
	lastPath string
	existed  bool
}

func (s *stubScanner) Scan(_ context.Context, path string) (receipt.Result, error) {
	s.lastPath = path
	_, statErr := os.Stat(path)
	s.existed = statErr == nil
	if s.err != nil {
		return receipt.Result{}, s.err
	}
	return receipt.Parse(s.text), nil
}

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func uploadBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, err := mw.CreateFormFile(field, "receipt.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = w.Write(content)
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func setupTestServer(t *testing.T, s imageScanner, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Server: config.ServerConfig{
		JWTSecret:      secret,
		UploadBase:     t.TempDir(),
		MaxUploadBytes: 1024,
	}}
	configure(cfg, s)
	r := gin.New()
	setupRoutes(r)
	return r
}

func TestParseReceiptFlow(t *testing.T) {
	stub := &stubScanner{text: "Free Jalapeno Peppers(Qty:2)-$0.47\nOrder Total: $45.67\nGiant Yacht (Q:1) $99.99"}
	r := setupTestServer(t, stub, "test-secret")

	// 1. health is public
	resp := performRequest(r, http.MethodGet, "/healthz", nil, "", "")
	if resp.Code != http.StatusOK || resp.Header().Get("X-Request-ID") == "" {
		t.Fatalf("health failed status=%d headers=%v", resp.Code, resp.Header())
	}

	// 2. upload without token is rejected
	body, ct := uploadBody(t, "receipt", []byte("PNG"))
	resp = performRequest(r, http.MethodPost, "/parse-receipt", body, "", ct)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	body, ct = uploadBody(t, "receipt", []byte("PNG"))
	resp = performRequest(r, http.MethodPost, "/parse-receipt", body, "forged", ct)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token got %d", resp.Code)
	}

	token, err := auth.IssueToken([]byte("test-secret"), "tester", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	// 3. missing file
	body, ct = uploadBody(t, "other", []byte("PNG"))
	resp = performRequest(r, http.MethodPost, "/parse-receipt", body, token, ct)
	if resp.Code != http.StatusBadRequest || !bytes.Contains(resp.Body.Bytes(), []byte("No file uploaded")) {
		t.Fatalf("missing file status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 4. too large
	body, ct = uploadBody(t, "receipt", bytes.Repeat([]byte("x"), 2048))
	resp = performRequest(r, http.MethodPost, "/parse-receipt", body, token, ct)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("oversized upload status=%d", resp.Code)
	}

	// 5. success
	body, ct = uploadBody(t, "receipt", []byte("PNG"))
	resp = performRequest(r, http.MethodPost, "/parse-receipt", body, token, ct)
	if resp.Code != http.StatusOK {
		t.Fatalf("parse failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if err := receipt.ValidateDocument(resp.Body.Bytes()); err != nil {
		t.Fatalf("schema: %v body=%s", err, resp.Body.String())
	}
	var res receipt.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 1 || res.Items[0].Name != "Free Jalapeno Peppers" || res.Total.String() != "0.94" {
		t.Fatalf("unexpected result %s", resp.Body.String())
	}
	if !stub.existed {
		t.Fatalf("scanner did not see the uploaded file")
	}
	if _, err := os.Stat(stub.lastPath); !os.IsNotExist(err) {
		t.Fatalf("upload not removed after scan: %v", err)
	}
}

func TestParseReceiptFailure(t *testing.T) {
	r := setupTestServer(t, &stubScanner{err: errors.New("open image: image: unknown format")}, "")
	body, ct := uploadBody(t, "receipt", []byte("not an image"))
	req, _ := http.NewRequest(http.MethodPost, "/parse-receipt", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Request-ID", "req-42")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if resp.Header().Get("X-Request-ID") != "req-42" {
		t.Fatalf("request id not echoed")
	}
	var out map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	if out["error"] != "Failed to parse receipt" || out["details"] != "open image: image: unknown format" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestImageExt(t *testing.T) {
	for in, want := range map[string]string{"a.PNG": ".png", "b.jpeg": ".jpeg", "c.exe": "", "noext": ""} {
		if got := imageExt(in); got != want {
			t.Fatalf("imageExt(%q) = %q want %q", in, got, want)
		}
	}
}
