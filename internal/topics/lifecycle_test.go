package topics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/studyhub/internal/models"
)

func TestNextStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, want models.TopicStatus
	}{
		{models.StatusNotStarted, models.StatusInProgress},
		{models.StatusInProgress, models.StatusCompleted},
		{models.StatusCompleted, models.StatusInProgress},
		{models.TopicStatus("bogus"), models.StatusInProgress},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.from), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NextStatus(tt.from))
		})
	}
}

func TestAdvance_ThreeTimes(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	topic := models.Topic{ID: "3", Status: models.StatusNotStarted}

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		topic = Advance(topic, start.Add(time.Duration(i)*time.Minute))
		require.NotNil(t, topic.LastStudied)
		stamps = append(stamps, *topic.LastStudied)
	}

	assert.Equal(t, models.StatusInProgress, topic.Status)
	for i := 1; i < len(stamps); i++ {
		assert.False(t, stamps[i].Before(stamps[i-1]))
	}
	assert.Equal(t, start.Add(2*time.Minute), *topic.LastStudied)
}

func TestAdvance_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	orig := models.Topic{ID: "1", Status: models.StatusCompleted, UserTags: []string{"a"}}
	next := Advance(orig, time.Now())

	assert.Equal(t, models.StatusCompleted, orig.Status)
	assert.Nil(t, orig.LastStudied)
	next.UserTags[0] = "b"
	assert.Equal(t, "a", orig.UserTags[0])
}

func TestAdvance_AlwaysStamps(t *testing.T) {
	t.Parallel()

	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	topic := models.Topic{Status: models.StatusCompleted, LastStudied: &earlier}

	got := Advance(topic, now)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, now, *got.LastStudied)
	assert.Equal(t, earlier, *topic.LastStudied)
}

func TestActionLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Start Topic", ActionLabel(models.StatusNotStarted))
	assert.Equal(t, "Mark Complete", ActionLabel(models.StatusInProgress))
	assert.Equal(t, "Review Topic", ActionLabel(models.StatusCompleted))
}
