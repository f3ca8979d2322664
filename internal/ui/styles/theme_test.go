package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/tgienger/studyhub/internal/models"
)

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "✓", StatusIcon(models.StatusCompleted))
	assert.Equal(t, "◐", StatusIcon(models.StatusInProgress))
	assert.Equal(t, "○", StatusIcon(models.StatusNotStarted))
	assert.Equal(t, "○", StatusIcon(models.TopicStatus("paused")))
}

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []int{-5, 0, 43, 100, 250} {
		assert.Equal(t, 20, lipgloss.Width(ProgressBar(20, pct)), "pct %d", pct)
	}
	assert.Equal(t, 4, lipgloss.Width(ProgressBar(1, 50)), "bars never collapse")
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 0, ContentWidth(0))
	assert.LessOrEqual(t, ContentWidth(500), MaxWidth)
}
