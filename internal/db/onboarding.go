package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tgienger/studyhub/internal/models"
)

// onboardingRow is the only row of the onboarding table
const onboardingRow = 1

// SaveOnboarding stores the wizard result, replacing any earlier one
func (db *DB) SaveOnboarding(data models.OnboardingData) error {
	subjects, err := json.Marshal(data.Subjects)
	if err != nil {
		return err
	}

	_, err = db.builder().
		Insert("onboarding").
		Columns("id", "subjects", "exam_board", "topics_per_week", "study_time_per_day", "completed_at").
		Values(onboardingRow, string(subjects), string(data.ExamBoard),
			data.Goals.TopicsPerWeek, data.Goals.StudyTimePerDay, data.CompletedAt.UTC()).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			subjects = excluded.subjects,
			exam_board = excluded.exam_board,
			topics_per_week = excluded.topics_per_week,
			study_time_per_day = excluded.study_time_per_day,
			completed_at = excluded.completed_at`).
		Exec()
	return err
}

// GetOnboarding returns the saved wizard result, or models.ErrNotFound when
// onboarding has not been completed yet
func (db *DB) GetOnboarding() (*models.OnboardingData, error) {
	var (
		d        models.OnboardingData
		subjects string
		board    string
	)
	err := db.builder().
		Select("subjects", "exam_board", "topics_per_week", "study_time_per_day", "completed_at").
		From("onboarding").
		Where(sq.Eq{"id": onboardingRow}).
		QueryRow().
		Scan(&subjects, &board, &d.Goals.TopicsPerWeek, &d.Goals.StudyTimePerDay, &d.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("onboarding: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(subjects), &d.Subjects); err != nil {
		return nil, fmt.Errorf("onboarding subjects: %w", err)
	}
	d.ExamBoard = models.ExamBoard(board)
	return &d, nil
}
