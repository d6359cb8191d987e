package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportWindowContains(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	open := ReportWindow{From: from}
	assert.True(t, open.Contains(from), "lower bound is inclusive")
	assert.False(t, open.Contains(from.Add(-time.Second)))
	assert.True(t, open.Contains(from.AddDate(10, 0, 0)), "no upper bound without To")

	bounded := ReportWindow{From: from, To: &to}
	assert.True(t, bounded.Contains(to.Add(-time.Nanosecond)))
	assert.False(t, bounded.Contains(to), "upper bound is exclusive")
}
