package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(Config{
		BaseURL:   srv.URL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Timeout:   time.Second,
	}, zerolog.Nop())
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestSign(t *testing.T) {
	params := url.Values{}
	params.Set("upload_preset", "course_image")
	params.Set("timestamp", "1700000000")

	// sha1("timestamp=1700000000&upload_preset=course_imagesecret")
	sig := Sign(params, "secret")
	assert.Len(t, sig, 40)
	assert.Equal(t, sig, Sign(params, "secret"))
	assert.NotEqual(t, sig, Sign(params, "other"))
}

func TestUploadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "course_image", r.PostForm.Get("upload_preset"))
		assert.Equal(t, "key", r.PostForm.Get("api_key"))
		assert.Equal(t, "https://example.com/a.png", r.PostForm.Get("file"))

		signed := url.Values{}
		signed.Set("timestamp", r.PostForm.Get("timestamp"))
		signed.Set("upload_preset", "course_image")
		assert.Equal(t, Sign(signed, "secret"), r.PostForm.Get("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://media.example.com/course/a.png"}`))
	}))
	defer srv.Close()

	link, err := newTestClient(srv).Upload(context.Background(), "https://example.com/a.png", "course_image")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/course/a.png", link)
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Upload(context.Background(), "data:image/png;base64,AAAA", "course_image")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUploadFailed))
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestUploadContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	// Cleanups run last-in first-out: release the handler, then close.
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv).Upload(ctx, "https://example.com/a.png", "course_image")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPassthrough(t *testing.T) {
	link, err := Passthrough{}.Upload(context.Background(), "https://example.com/a.png", "course_image")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", link)
}
