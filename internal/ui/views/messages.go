package views

import (
	"fmt"
	"strings"

	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/ui/styles"
)

// Route names a screen of the application
type Route string

const (
	RouteOnboarding  Route = "onboarding"
	RouteDashboard   Route = "dashboard"
	RouteSyllabus    Route = "syllabus"
	RouteTopicDetail Route = "topic-detail"
	RouteAIAssistant Route = "ai-assistant"
	RouteProgress    Route = "progress"
)

// Resolve maps a route to the screen that renders it. Screens that do not
// exist yet fall back to the dashboard.
func (r Route) Resolve() Route {
	switch r {
	case RouteOnboarding, RouteDashboard, RouteSyllabus, RouteTopicDetail:
		return r
	default:
		return RouteDashboard
	}
}

// Navigate asks the app to switch screens
type Navigate struct {
	To Route
}

// Back returns to the previous screen
type Back struct{}

// OnboardingCompleted carries the finished wizard result
type OnboardingCompleted struct {
	Data models.OnboardingData
}

// OpenSyllabus shows the syllabus of one subject
type OpenSyllabus struct {
	SubjectID string
}

// SelectedTopic opens the detail screen of a topic
type SelectedTopic struct {
	TopicID string
}

// AdvanceTopic moves a topic to its next status
type AdvanceTopic struct {
	TopicID string
}

// SaveNotes replaces the notes of a topic
type SaveNotes struct {
	TopicID string
	Notes   string
}

// ToggleTag adds a user tag to a topic, or removes it when already present
type ToggleTag struct {
	TopicID string
	Tag     string
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// formatMinutes renders a duration as "1h 30m", "45m" or "2h"
func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// statusBadge renders a topic status as a colored icon and label
func statusBadge(status models.TopicStatus) string {
	return styles.StatusStyle(status).Render(styles.StatusIcon(status) + " " + status.Label())
}

// renderUserTags renders at most limit user tags; limit <= 0 renders all
func renderUserTags(s *styles.Styles, tags []string, limit int) string {
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = s.UserTag.Render("#" + t)
	}
	return strings.Join(parts, "")
}

// renderHelpLine renders "key desc • key desc" pairs
func renderHelpLine(s *styles.Styles, pairs ...string) string {
	var items []string
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, s.HelpKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return s.Help.Render(strings.Join(items, " • "))
}
