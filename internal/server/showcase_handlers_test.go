package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, s *Server) string {
	t.Helper()
	w := postJSON(t, s, "/auth/setup", SetupRequest{
		Email:    "admin@example.com",
		Password: "correct-horse",
		Name:     "Admin",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// mediaFile writes a throwaway file with the given name under a temp dir and
// returns its path. Handlers only inspect the extension.
func mediaFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("media"), 0644))
	return path
}

func authedForm(t *testing.T, s *Server, method, path, token string, fields map[string]string, files map[string][]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for field, paths := range files {
		for _, p := range paths {
			part, err := writer.CreateFormFile(field, filepath.Base(p))
			require.NoError(t, err)
			data, err := os.ReadFile(p)
			require.NoError(t, err)
			_, err = part.Write(data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func authedDo(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestBiteTypeLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := adminToken(t, s)

	// Creation requires at least one explainer video
	w := authedForm(t, s, http.MethodPost, "/api/bite-types", token,
		map[string]string{"title": "Deep bite"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "video")

	w = authedForm(t, s, http.MethodPost, "/api/bite-types", token,
		map[string]string{"title": "Deep bite"},
		map[string][]string{"videos": {mediaFile(t, "one.mp4"), mediaFile(t, "two.mp4")}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		VideoPaths []string `json:"video_paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "Deep bite", created.Title)
	require.Len(t, created.VideoPaths, 2)

	// Renaming keeps the videos
	w = authedDo(t, s, http.MethodPatch, "/api/bite-types/"+created.ID, token,
		map[string]string{"title": "Cross bite"})
	require.Equal(t, http.StatusOK, w.Code)

	var renamed struct {
		Title      string   `json:"title"`
		VideoPaths []string `json:"video_paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renamed))
	require.Equal(t, "Cross bite", renamed.Title)
	require.Len(t, renamed.VideoPaths, 2)

	w = authedDo(t, s, http.MethodDelete, "/api/bite-types/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = authedDo(t, s, http.MethodDelete, "/api/bite-types/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactVideoUploadAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := adminToken(t, s)

	// Empty upload is rejected
	w := authedForm(t, s, http.MethodPost, "/api/contact-videos", token, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = authedForm(t, s, http.MethodPost, "/api/contact-videos", token, nil,
		map[string][]string{"videos": {mediaFile(t, "a.mp4"), mediaFile(t, "b.webm")}})
	require.Equal(t, http.StatusCreated, w.Code)

	var uploaded []struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))
	require.Len(t, uploaded, 2)

	w = authedDo(t, s, http.MethodDelete, "/api/contact-videos/"+uploaded[0].ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = authedDo(t, s, http.MethodGet, "/api/contact-videos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var remaining []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &remaining))
	require.Len(t, remaining, 1)
	require.Equal(t, uploaded[1].ID, remaining[0].ID)
}

func TestTransformationCreateAndUpdate(t *testing.T) {
	s := newTestServer(t)
	token := adminToken(t, s)

	// The before/after image is mandatory on create
	w := authedForm(t, s, http.MethodPost, "/api/transformations", token,
		map[string]string{"title": "Smile fix", "description": "Six months of treatment"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = authedForm(t, s, http.MethodPost, "/api/transformations", token,
		map[string]string{"title": "Smile fix", "description": "Six months of treatment"},
		map[string][]string{"image": {mediaFile(t, "before-after.jpg")}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID        string `json:"id"`
		ImagePath string `json:"image_path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ImagePath)

	// Partial update leaves the image alone
	w = authedForm(t, s, http.MethodPut, "/api/transformations/"+created.ID, token,
		map[string]string{"title": "Smile transformation"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Title     string `json:"title"`
		ImagePath string `json:"image_path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "Smile transformation", updated.Title)
	require.Equal(t, created.ImagePath, updated.ImagePath)
}

func TestAlignerGalleryReplacement(t *testing.T) {
	s := newTestServer(t)
	token := adminToken(t, s)

	w := authedForm(t, s, http.MethodPost, "/api/aligners", token,
		map[string]string{"price": "From $1200"},
		map[string][]string{
			"images": {mediaFile(t, "tray.png")},
			"videos": {mediaFile(t, "intro.mp4")},
		})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID         string   `json:"id"`
		ImagePaths []string `json:"image_paths"`
		VideoPaths []string `json:"video_paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.ImagePaths, 1)
	require.Len(t, created.VideoPaths, 1)

	// New images replace the gallery; untouched videos survive
	w = authedForm(t, s, http.MethodPatch, "/api/aligners/"+created.ID, token, nil,
		map[string][]string{"images": {mediaFile(t, "new1.png"), mediaFile(t, "new2.png")}})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		ImagePaths []string `json:"image_paths"`
		VideoPaths []string `json:"video_paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.ImagePaths, 2)
	require.NotContains(t, updated.ImagePaths, created.ImagePaths[0])
	require.Equal(t, created.VideoPaths, updated.VideoPaths)

	// Wrong media kind in the image gallery is a client error
	w = authedForm(t, s, http.MethodPost, "/api/aligners", token,
		map[string]string{"price": "From $1200"},
		map[string][]string{"images": {mediaFile(t, "clip.mp4")}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unsupported image type")
}
