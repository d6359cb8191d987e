package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/learnhub/internal/config"
	"github.com/yigit/learnhub/internal/pkg/cache"
	"github.com/yigit/learnhub/internal/pkg/media"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = "memory"
	cfg.Database.Seed = true
	cfg.Media.CourseUploadPreset = "course_image"
	cfg.Cache.ReportTTL = "5m"
	return cfg
}

func TestMemoryStackServesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := memoryConfig()
	lgr := zerolog.Nop()

	storage, err := SetupStorage(context.Background(), cfg, lgr)
	require.NoError(t, err)
	assert.Nil(t, storage.Pool)

	deps := BuildDependencies(cfg, storage, SetupReportCache(context.Background(), cfg, lgr), SetupUploader(cfg, lgr), lgr)
	t.Cleanup(deps.Close)
	router := SetupRouter(cfg, deps, lgr)

	for _, path := range []string{"/ping", "/api/v1/health", "/api/v1/categories/details", "/swagger/doc.json"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	assert.Contains(t, w.Body.String(), "Development")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupReportCacheFallsBackToNoop(t *testing.T) {
	cfg := memoryConfig()
	_, isNoop := SetupReportCache(context.Background(), cfg, zerolog.Nop()).(cache.Noop)
	assert.True(t, isNoop)

	cfg.Cache.RedisAddr = "127.0.0.1:1"
	_, isNoop = SetupReportCache(context.Background(), cfg, zerolog.Nop()).(cache.Noop)
	assert.True(t, isNoop, "unreachable redis disables caching")
}

func TestSetupUploader(t *testing.T) {
	cfg := memoryConfig()
	_, isPassthrough := SetupUploader(cfg, zerolog.Nop()).(media.Passthrough)
	assert.True(t, isPassthrough)

	cfg.Media.Enabled = true
	cfg.Media.CloudName = "demo"
	cfg.Media.Timeout = "2s"
	_, isClient := SetupUploader(cfg, zerolog.Nop()).(*media.Client)
	assert.True(t, isClient)
}
