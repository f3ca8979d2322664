package topics

import (
	"strconv"

	"github.com/tgienger/studyhub/internal/models"
)

// roundHalfUp returns num/den rounded to the nearest integer, halves rounding up.
// Both arguments must be non-negative and den must be positive.
func roundHalfUp(num, den int) int {
	return (2*num + den) / (2 * den)
}

// percent returns part/whole as a rounded percentage, or 0 when whole is 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return roundHalfUp(100*part, whole)
}

// AggregateProgress is the rounded mean of the subjects' progress fields.
func AggregateProgress(subjects []models.Subject) int {
	if len(subjects) == 0 {
		return 0
	}
	sum := 0
	for _, s := range subjects {
		sum += s.Progress
	}
	return roundHalfUp(sum, len(subjects))
}

// TotalCompleted sums the completed topic counts of all subjects.
func TotalCompleted(subjects []models.Subject) int {
	total := 0
	for _, s := range subjects {
		total += s.CompletedTopics
	}
	return total
}

// ChapterProgress is the share of the chapter's topics that are completed.
func ChapterProgress(chapter models.Chapter) int {
	completed := 0
	for _, t := range chapter.Topics {
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	return percent(completed, len(chapter.Topics))
}

// GroupByChapter groups topics by their chapter name. Chapters appear in the
// order their first topic appears and are numbered from "1".
func GroupByChapter(topics []models.Topic) []models.Chapter {
	var chapters []models.Chapter
	index := make(map[string]int)

	for _, t := range topics {
		i, ok := index[t.Chapter]
		if !ok {
			i = len(chapters)
			index[t.Chapter] = i
			chapters = append(chapters, models.Chapter{
				ID:    strconv.Itoa(i + 1),
				Title: t.Chapter,
			})
		}
		chapters[i].Topics = append(chapters[i].Topics, t)
	}

	for i := range chapters {
		chapters[i].Progress = ChapterProgress(chapters[i])
	}
	return chapters
}

// FilterChapters restricts each chapter's topics to those matching the query
// and status filter. Chapters are kept even when nothing matches, and their
// progress still reflects the full chapter.
func FilterChapters(chapters []models.Chapter, query string, filter StatusFilter) []models.Chapter {
	out := make([]models.Chapter, len(chapters))
	for i, ch := range chapters {
		out[i] = models.Chapter{
			ID:       ch.ID,
			Title:    ch.Title,
			Topics:   Filter(ch.Topics, query, filter),
			Progress: ch.Progress,
		}
	}
	return out
}

// ResyncSubject keeps a subject's stored counters in step with a single topic
// transition from one status to another. Only moves into or out of completed
// change the counters; progress is recomputed from them.
func ResyncSubject(subject models.Subject, from, to models.TopicStatus) models.Subject {
	wasDone := from == models.StatusCompleted
	isDone := to == models.StatusCompleted
	if wasDone == isDone {
		return subject
	}

	if isDone {
		subject.CompletedTopics++
	} else {
		subject.CompletedTopics--
	}
	subject.CompletedTopics = max(0, min(subject.CompletedTopics, subject.TotalTopics))
	subject.Progress = percent(subject.CompletedTopics, subject.TotalTopics)
	return subject
}
