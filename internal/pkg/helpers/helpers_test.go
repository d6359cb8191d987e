package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"page below one", 0, 5, 0, 5},
		{"size too large", 2, 1000, 10, DefaultPageSize},
		{"size zero", 2, 0, 10, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(27, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.EqualValues(t, 27, info.TotalItems)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]Page{
		"/x":                  {Number: 1, Size: DefaultPageSize},
		"/x?page=3&limit=25":  {Number: 3, Size: 25},
		"/x?page=2&size=7":    {Number: 2, Size: 7},
		"/x?page=-1&limit=0":  {Number: 1, Size: DefaultPageSize},
		"/x?page=abc&limit=x": {Number: 1, Size: DefaultPageSize},
	}
	for target, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		assert.Equal(t, want, ParsePaginationParams(c), target)
	}
}

func TestPageOffsetLimit(t *testing.T) {
	p := Page{Number: 4, Size: 15}
	assert.EqualValues(t, 45, p.Offset())
	assert.EqualValues(t, 15, p.Limit())
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(5, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)
}

func TestParseSortBy(t *testing.T) {
	allowed := map[string]string{"name": "c.name", "createdAt": "c.created_at"}

	col, order := ParseSortBy("name:asc", allowed, "c.created_at")
	assert.Equal(t, "c.name", col)
	assert.Equal(t, "ASC", order)

	col, order = ParseSortBy("name", allowed, "c.created_at")
	assert.Equal(t, "c.name", col)
	assert.Equal(t, "DESC", order)

	col, order = ParseSortBy("password:asc", allowed, "c.created_at")
	assert.Equal(t, "c.created_at", col)
	assert.Equal(t, "ASC", order)

	col, order = ParseSortBy("", allowed, "c.created_at")
	assert.Equal(t, "c.created_at", col)
	assert.Equal(t, "DESC", order)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestParseReportWindow(t *testing.T) {
	w, err := ParseReportWindow("2024-01-01", "")
	require.NoError(t, err)
	assert.Nil(t, w.To)

	w, err = ParseReportWindow("2024-01-01", "2024-02-01")
	require.NoError(t, err)
	require.NotNil(t, w.To)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *w.To)

	_, err = ParseReportWindow("2024-02-01", "2024-01-01")
	assert.Error(t, err)

	_, err = ParseReportWindow("", "")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration("5m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}
