// Package media uploads course images to the remote media host.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUploadFailed is returned when the media host rejects or fails an upload
var ErrUploadFailed = errors.New("media upload failed")

// Uploader stores an image and returns its public URL.
// file is either a data URI or a remote URL the host fetches itself.
type Uploader interface {
	Upload(ctx context.Context, file, preset string) (string, error)
}

// Config holds the media host credentials
type Config struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client uploads through the host's signed image upload endpoint
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
	now        func() time.Time
}

// NewClient creates a media client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		now:        time.Now,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Sign computes the request signature: the sorted key=value pairs joined by
// '&', followed by the secret, hashed with SHA-1.
func Sign(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// Upload sends file to the host under preset
func (c *Client) Upload(ctx context.Context, file, preset string) (string, error) {
	signed := url.Values{}
	signed.Set("timestamp", strconv.FormatInt(c.now().Unix(), 10))
	if preset != "" {
		signed.Set("upload_preset", preset)
	}

	form := url.Values{}
	for k := range signed {
		form.Set(k, signed.Get(k))
	}
	form.Set("file", file)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", Sign(signed, c.cfg.APISecret))

	endpoint := fmt.Sprintf("%s/%s/image/upload", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.logger.Error().Err(err).Str("preset", preset).Msg("Media upload request failed")
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUploadFailed, err)
	}

	var out uploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: status %d: unreadable response", ErrUploadFailed, resp.StatusCode)
	}
	if resp.StatusCode >= 300 || out.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("preset", preset).Str("reason", msg).Msg("Media upload rejected")
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, msg)
	}

	link := out.SecureURL
	if link == "" {
		link = out.URL
	}
	if link == "" {
		return "", fmt.Errorf("%w: response has no url", ErrUploadFailed)
	}

	c.logger.Debug().Str("preset", preset).Dur("took", time.Since(start)).Msg("Media uploaded")
	return link, nil
}

// Passthrough stores nothing and returns remote URLs unchanged. It is used
// when no media host is configured; data URIs are kept inline.
type Passthrough struct{}

// Upload returns file as is
func (Passthrough) Upload(_ context.Context, file, _ string) (string, error) {
	return file, nil
}
