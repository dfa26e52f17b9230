package handler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func (e *testEnv) upload(t *testing.T, filename string, content []byte, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	e.engine.ServeHTTP(rr, req)
	return rr
}

func TestUploadMediaStoresImage(t *testing.T) {
	env := setupHandlerTest(t)
	editor := env.tokenFor(t, env.createUser(t, "editor@example.com", "editor"))

	rr := env.upload(t, "logo.png", pngBytes(t, 12, 8), map[string]string{"alt": "Logo", "tags": "Brand, hero"}, editor)
	resp := expectStatus(t, rr, http.StatusCreated)

	var item struct {
		Type     string   `json:"type"`
		MimeType string   `json:"mimeType"`
		URL      string   `json:"url"`
		Width    int      `json:"width"`
		Height   int      `json:"height"`
		Tags     []string `json:"tags"`
		Stored   bool     `json:"stored"`
	}
	decodeData(t, resp, &item)
	if item.Type != "image" || item.MimeType != "image/png" || item.Width != 12 || item.Height != 8 {
		t.Fatalf("unexpected media payload: %+v", item)
	}
	if !item.Stored || !strings.HasPrefix(item.URL, "/static/uploads/") {
		t.Fatalf("expected local upload url, got %+v", item)
	}
	if len(item.Tags) != 2 || item.Tags[0] != "brand" {
		t.Fatalf("expected normalized tags, got %v", item.Tags)
	}

	stored := filepath.Join(env.uploadDir, filepath.FromSlash(strings.TrimPrefix(item.URL, "/static/uploads/")))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("expected stored file at %s: %v", stored, err)
	}
}

func TestUploadMediaTooLarge(t *testing.T) {
	env := setupHandlerTest(t, withMaxUpload(64))
	editor := env.tokenFor(t, env.createUser(t, "editor@example.com", "editor"))

	rr := env.upload(t, "big.bin", bytes.Repeat([]byte("a"), 1024), nil, editor)
	expectStatus(t, rr, http.StatusRequestEntityTooLarge)
}

func TestUploadMediaRequiresFile(t *testing.T) {
	env := setupHandlerTest(t)
	editor := env.tokenFor(t, env.createUser(t, "editor@example.com", "editor"))

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+editor)
	rr := httptest.NewRecorder()
	env.engine.ServeHTTP(rr, req)

	resp := expectStatus(t, rr, http.StatusBadRequest)
	if resp.Details["file"] == "" {
		t.Fatalf("expected file detail, got %+v", resp.Details)
	}
}

func TestCreateMediaByURLAndFilterByTag(t *testing.T) {
	env := setupHandlerTest(t)
	editor := env.tokenFor(t, env.createUser(t, "editor@example.com", "editor"))

	expectStatus(t, env.do(t, http.MethodPost, "/api/media", map[string]any{
		"name":     "Intro video",
		"url":      "https://cdn.example.com/intro.mp4",
		"mimeType": "video/mp4",
		"tags":     []string{"launch"},
	}, editor), http.StatusCreated)
	expectStatus(t, env.do(t, http.MethodPost, "/api/media", map[string]any{
		"name": "Deck",
		"url":  "https://cdn.example.com/deck.pdf",
		"type": "document",
	}, editor), http.StatusCreated)

	invalid := env.do(t, http.MethodPost, "/api/media", map[string]any{
		"name": "Bad",
		"url":  "https://cdn.example.com/x",
		"type": "hologram",
	}, editor)
	if resp := expectStatus(t, invalid, http.StatusBadRequest); resp.Details["type"] == "" {
		t.Fatalf("expected type detail, got %+v", resp.Details)
	}

	var list struct {
		Items []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"items"`
		Total int `json:"total"`
	}
	decodeData(t, expectStatus(t, env.do(t, http.MethodGet, "/api/media?tag=launch", nil, editor), http.StatusOK), &list)
	if list.Total != 1 || list.Items[0].Type != "video" {
		t.Fatalf("expected one video tagged launch, got %+v", list)
	}
}

func TestMediaLibraryRequiresEditor(t *testing.T) {
	env := setupHandlerTest(t)
	user := env.tokenFor(t, env.createUser(t, "reader@example.com", "user"))

	expectStatus(t, env.do(t, http.MethodGet, "/api/media", nil, ""), http.StatusUnauthorized)
	expectStatus(t, env.do(t, http.MethodGet, "/api/media", nil, user), http.StatusForbidden)
}
