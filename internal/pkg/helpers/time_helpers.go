package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yigit/learnhub/internal/app/models"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate accepts RFC3339 timestamps and plain dates. Values without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseReportWindow builds a window from the fromDate/toDate query values.
// toDate is optional; when present it must be after fromDate.
func ParseReportWindow(from, to string) (models.ReportWindow, error) {
	start, err := ParseDate(from)
	if err != nil {
		return models.ReportWindow{}, fmt.Errorf("fromDate: %w", err)
	}
	window := models.ReportWindow{From: start}
	if strings.TrimSpace(to) == "" {
		return window, nil
	}
	end, err := ParseDate(to)
	if err != nil {
		return models.ReportWindow{}, fmt.Errorf("toDate: %w", err)
	}
	if !end.After(start) {
		return models.ReportWindow{}, fmt.Errorf("toDate must be after fromDate")
	}
	window.To = &end
	return window, nil
}
