// Package catalog holds the subject and topic snapshot the UI works from. It is
// loaded once at start-up, overlaid with the student's saved progress, and then
// updated one topic at a time as topics are advanced or annotated.
package catalog

import (
	"fmt"
	"slices"

	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/topics"
)

// Catalog is not safe for concurrent use; the UI updates it from a single goroutine.
type Catalog struct {
	user      models.User
	offerings []models.Offering
	subjects  []models.Subject
	topics    []models.Topic
}

func newCatalog(f file) *Catalog {
	return &Catalog{
		user:      f.User,
		offerings: f.Offerings,
		subjects:  f.Subjects,
		topics:    f.Topics,
	}
}

func cloneTopic(t models.Topic) models.Topic {
	t.ExamTags = slices.Clone(t.ExamTags)
	t.UserTags = slices.Clone(t.UserTags)
	if t.LastStudied != nil {
		ts := *t.LastStudied
		t.LastStudied = &ts
	}
	return t
}

func (c *Catalog) User() models.User { return c.user }

// Offerings returns the subjects available for selection during onboarding.
func (c *Catalog) Offerings() []models.Offering { return slices.Clone(c.offerings) }

func (c *Catalog) Subjects() []models.Subject { return slices.Clone(c.subjects) }

// Topics returns every topic across all subjects.
func (c *Catalog) Topics() []models.Topic {
	out := make([]models.Topic, len(c.topics))
	for i, t := range c.topics {
		out[i] = cloneTopic(t)
	}
	return out
}

// SubjectTopics returns the topics of one subject in syllabus order.
func (c *Catalog) SubjectTopics(subjectID string) []models.Topic {
	var out []models.Topic
	for _, t := range c.topics {
		if t.SubjectID == subjectID {
			out = append(out, cloneTopic(t))
		}
	}
	return out
}

// Chapters groups a subject's topics by chapter with derived progress.
func (c *Catalog) Chapters(subjectID string) []models.Chapter {
	return topics.GroupByChapter(c.SubjectTopics(subjectID))
}

func (c *Catalog) Subject(id string) (models.Subject, bool) {
	i := slices.IndexFunc(c.subjects, func(s models.Subject) bool { return s.ID == id })
	if i < 0 {
		return models.Subject{}, false
	}
	return c.subjects[i], true
}

func (c *Catalog) Topic(id string) (models.Topic, bool) {
	i := c.topicIndex(id)
	if i < 0 {
		return models.Topic{}, false
	}
	return cloneTopic(c.topics[i]), true
}

// OfferingName returns the display name of an onboarding subject id.
func (c *Catalog) OfferingName(id string) string {
	for _, o := range c.offerings {
		if o.ID == id {
			return o.Name
		}
	}
	return id
}

func (c *Catalog) topicIndex(id string) int {
	return slices.IndexFunc(c.topics, func(t models.Topic) bool { return t.ID == id })
}

// ApplyTopic replaces a topic with an updated copy. When its status moved into
// or out of completed, the owning subject's counters are resynced.
func (c *Catalog) ApplyTopic(t models.Topic) error {
	i := c.topicIndex(t.ID)
	if i < 0 {
		return fmt.Errorf("topic %q: %w", t.ID, models.ErrNotFound)
	}
	from := c.topics[i].Status
	c.topics[i] = cloneTopic(t)
	c.resync(t.SubjectID, from, t.Status)
	return nil
}

func (c *Catalog) resync(subjectID string, from, to models.TopicStatus) {
	for i := range c.subjects {
		if c.subjects[i].ID == subjectID {
			c.subjects[i] = topics.ResyncSubject(c.subjects[i], from, to)
			return
		}
	}
}

// Overlay applies saved progress on top of the loaded snapshot. Topics with a
// saved record take their status, notes and tags from it; the rest keep the
// catalog values. Records for unknown topics are skipped and counted.
func (c *Catalog) Overlay(progress map[string]models.TopicProgress, tags map[string][]string) (skipped int) {
	for id, p := range progress {
		i := c.topicIndex(id)
		if i < 0 || !p.Status.IsValid() {
			skipped++
			continue
		}
		t := c.topics[i]
		from := t.Status
		t.Status = p.Status
		t.LastStudied = p.LastStudied
		t.Notes = p.Notes
		t.UserTags = slices.Clone(tags[id])
		c.topics[i] = t
		c.resync(t.SubjectID, from, t.Status)
	}
	return skipped
}
