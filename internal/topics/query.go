// Package topics derives read-only views over topic and subject collections
// and owns the topic status lifecycle. Every function here is pure: inputs are
// never modified and results are freshly allocated.
package topics

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tgienger/studyhub/internal/models"
)

// StatusFilter selects topics by status. FilterAll matches every topic.
type StatusFilter string

const FilterAll StatusFilter = "all"

// StatusFilters lists the filter options in the order the UI cycles through them.
var StatusFilters = []StatusFilter{
	FilterAll,
	StatusFilter(models.StatusNotStarted),
	StatusFilter(models.StatusInProgress),
	StatusFilter(models.StatusCompleted),
}

// Only returns the filter matching a single status.
func Only(status models.TopicStatus) StatusFilter { return StatusFilter(status) }

func (f StatusFilter) Matches(status models.TopicStatus) bool {
	return f == FilterAll || models.TopicStatus(f) == status
}

// Label returns the text shown on the filter button.
func (f StatusFilter) Label() string {
	if f == FilterAll {
		return "All Topics"
	}
	return models.TopicStatus(f).Label()
}

// Next returns the filter after f in StatusFilters, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	i := slices.Index(StatusFilters, f)
	return StatusFilters[(i+1)%len(StatusFilters)]
}

// FilterByText keeps topics whose title or description contains query,
// ignoring case. An empty query keeps everything.
func FilterByText(topics []models.Topic, query string) []models.Topic {
	if query == "" {
		return slices.Clone(topics)
	}
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if strings.Contains(fold.String(t.Title), needle) ||
			strings.Contains(fold.String(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByStatus keeps topics matching the filter.
func FilterByStatus(topics []models.Topic, filter StatusFilter) []models.Topic {
	if filter == FilterAll {
		return slices.Clone(topics)
	}
	out := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if filter.Matches(t.Status) {
			out = append(out, t)
		}
	}
	return out
}

// Filter applies the text and status filters together. Both are plain
// subsequence filters, so the order they are applied in does not matter.
func Filter(topics []models.Topic, query string, filter StatusFilter) []models.Topic {
	return FilterByStatus(FilterByText(topics, query), filter)
}

// MostRecentlyStudied returns up to n studied topics, newest first. Topics that
// were never studied are left out rather than treated as oldest.
func MostRecentlyStudied(topics []models.Topic, n int) []models.Topic {
	if n <= 0 {
		return []models.Topic{}
	}
	studied := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if t.LastStudied != nil {
			studied = append(studied, t)
		}
	}
	slices.SortStableFunc(studied, func(a, b models.Topic) int {
		return b.LastStudied.Compare(*a.LastStudied)
	})
	if len(studied) > n {
		studied = studied[:n]
	}
	return studied
}

// SuggestNext returns the first n topics that have not been started, in their
// original order. This is a placeholder ranking: it ignores difficulty and goals.
func SuggestNext(topics []models.Topic, n int) []models.Topic {
	out := []models.Topic{}
	for _, t := range topics {
		if len(out) >= n {
			break
		}
		if t.Status == models.StatusNotStarted {
			out = append(out, t)
		}
	}
	return out
}

// CountByStatus tallies topics per status.
func CountByStatus(topics []models.Topic) map[models.TopicStatus]int {
	counts := make(map[models.TopicStatus]int, 3)
	for _, t := range topics {
		counts[t.Status]++
	}
	return counts
}
