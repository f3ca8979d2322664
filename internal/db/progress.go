package db

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tgienger/studyhub/internal/models"
)

// SaveTopicProgress stores the user-owned part of a topic: status, last
// studied time, notes and tags.
func (db *DB) SaveTopicProgress(t models.Topic) error {
	return db.inTx(func(tx *sql.Tx) error {
		return saveProgress(tx, t, time.Now())
	})
}

// RecordAdvance saves a topic that moved through its lifecycle together with
// the event describing the move. Either both are stored or neither is.
func (db *DB) RecordAdvance(t models.Topic, ev models.StudyEvent) (models.StudyEvent, error) {
	ev = prepareEvent(ev)
	err := db.inTx(func(tx *sql.Tx) error {
		if err := saveProgress(tx, t, ev.OccurredAt); err != nil {
			return err
		}
		return insertEvent(tx, ev)
	})
	if err != nil {
		return models.StudyEvent{}, err
	}
	return ev, nil
}

// ListTopicProgress returns every saved topic record keyed by topic id
func (db *DB) ListTopicProgress() (map[string]models.TopicProgress, error) {
	rows, err := db.builder().
		Select("topic_id", "status", "last_studied", "notes", "updated_at").
		From("topic_progress").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.TopicProgress)
	for rows.Next() {
		var (
			p           models.TopicProgress
			status      string
			lastStudied sql.NullTime
		)
		if err := rows.Scan(&p.TopicID, &status, &lastStudied, &p.Notes, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Status = models.TopicStatus(status)
		if lastStudied.Valid {
			ts := lastStudied.Time
			p.LastStudied = &ts
		}
		out[p.TopicID] = p
	}
	return out, rows.Err()
}

func saveProgress(tx *sql.Tx, t models.Topic, now time.Time) error {
	var lastStudied any
	if t.LastStudied != nil {
		lastStudied = t.LastStudied.UTC()
	}

	_, err := sq.StatementBuilder.RunWith(tx).
		Insert("topic_progress").
		Columns("topic_id", "status", "last_studied", "notes", "updated_at").
		Values(t.ID, string(t.Status), lastStudied, t.Notes, now.UTC()).
		Suffix(`ON CONFLICT(topic_id) DO UPDATE SET
			status = excluded.status,
			last_studied = excluded.last_studied,
			notes = excluded.notes,
			updated_at = excluded.updated_at`).
		Exec()
	if err != nil {
		return err
	}
	return replaceTags(tx, t.ID, t.UserTags)
}

func (db *DB) inTx(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
