package testutils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSlogHandlerCapturesRecords(t *testing.T) {
	logger, h := NewTestLogger()

	logger.With(slog.String("component", "tasks")).Warn("slow query", slog.Int("ms", 250))
	logger.Info("done")

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "tasks", entries[0]["component"])
	assert.Equal(t, int64(250), entries[0]["ms"])
	assert.NotContains(t, entries[1], "component")

	entry, ok := h.Find("done")
	require.True(t, ok)
	assert.Equal(t, "INFO", entry["level"])

	h.Clear()
	assert.Empty(t, h.Entries())
	_, ok = h.Find("done")
	assert.False(t, ok)
}
