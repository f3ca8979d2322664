package db

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/tgienger/studyhub/internal/models"
)

// ListStudyEvents returns events at or after since, oldest first
func (db *DB) ListStudyEvents(since time.Time) ([]models.StudyEvent, error) {
	rows, err := db.builder().
		Select("id", "topic_id", "from_status", "to_status", "occurred_at").
		From("study_events").
		Where(sq.GtOrEq{"occurred_at": since.UTC()}).
		OrderBy("occurred_at", "rowid").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.StudyEvent
	for rows.Next() {
		var (
			ev       models.StudyEvent
			from, to string
		)
		if err := rows.Scan(&ev.ID, &ev.TopicID, &from, &to, &ev.OccurredAt); err != nil {
			return nil, err
		}
		ev.FromStatus = models.TopicStatus(from)
		ev.ToStatus = models.TopicStatus(to)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// prepareEvent assigns a missing id and timestamp and stores the time in UTC
func prepareEvent(ev models.StudyEvent) models.StudyEvent {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	return ev
}

func insertEvent(runner sq.BaseRunner, ev models.StudyEvent) error {
	_, err := sq.StatementBuilder.RunWith(runner).
		Insert("study_events").
		Columns("id", "topic_id", "from_status", "to_status", "occurred_at").
		Values(ev.ID, ev.TopicID, string(ev.FromStatus), string(ev.ToStatus), ev.OccurredAt).
		Exec()
	return err
}

