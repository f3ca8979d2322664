package topics

import (
	"slices"
	"time"

	"github.com/tgienger/studyhub/internal/models"
)

// NextStatus returns the status a topic moves to when advanced:
// not-started -> in-progress -> completed -> in-progress.
func NextStatus(status models.TopicStatus) models.TopicStatus {
	switch status {
	case models.StatusInProgress:
		return models.StatusCompleted
	default:
		return models.StatusInProgress
	}
}

// Advance moves the topic to its next status and stamps it as studied at now.
// It is the only way a topic's status changes.
func Advance(topic models.Topic, now time.Time) models.Topic {
	topic.Status = NextStatus(topic.Status)
	studied := now
	topic.LastStudied = &studied
	topic.ExamTags = slices.Clone(topic.ExamTags)
	topic.UserTags = slices.Clone(topic.UserTags)
	return topic
}

// ActionLabel is the caption for the button that advances a topic.
func ActionLabel(status models.TopicStatus) string {
	switch status {
	case models.StatusInProgress:
		return "Mark Complete"
	case models.StatusCompleted:
		return "Review Topic"
	default:
		return "Start Topic"
	}
}
