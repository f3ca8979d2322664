package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/studyhub/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "studyhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_MigratesTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studyhub.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.SetSetting("syllabus_subject", "physics"))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetSetting("syllabus_subject")
	require.NoError(t, err)
	assert.Equal(t, "physics", got)
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	got, err := db.GetSetting("missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, db.SetSetting("k", "one"))
	require.NoError(t, db.SetSetting("k", "two"))
	got, err = db.GetSetting("k")
	require.NoError(t, err)
	assert.Equal(t, "two", got)
}

func TestSaveTopicProgress(t *testing.T) {
	db := openTestDB(t)
	studied := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

	topic := models.Topic{
		ID:          "3",
		Status:      models.StatusInProgress,
		LastStudied: &studied,
		Notes:       "cross-multiply",
		UserTags:    []string{"tricky", " ", "exam", "tricky"},
	}
	require.NoError(t, db.SaveTopicProgress(topic))

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	require.Contains(t, progress, "3")
	p := progress["3"]
	assert.Equal(t, models.StatusInProgress, p.Status)
	assert.Equal(t, "cross-multiply", p.Notes)
	require.NotNil(t, p.LastStudied)
	assert.True(t, studied.Equal(*p.LastStudied))
	assert.False(t, p.UpdatedAt.IsZero())

	tags, err := db.GetTopicTags("3")
	require.NoError(t, err)
	assert.Equal(t, []string{"tricky", "exam"}, tags)

	topic.Status = models.StatusCompleted
	topic.Notes = ""
	topic.UserTags = []string{"exam"}
	require.NoError(t, db.SaveTopicProgress(topic))

	progress, err = db.ListTopicProgress()
	require.NoError(t, err)
	assert.Len(t, progress, 1)
	assert.Equal(t, models.StatusCompleted, progress["3"].Status)
	assert.Empty(t, progress["3"].Notes)

	tags, err = db.GetTopicTags("3")
	require.NoError(t, err)
	assert.Equal(t, []string{"exam"}, tags)
}

func TestSaveTopicProgress_NeverStudied(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveTopicProgress(models.Topic{ID: "7", Status: models.StatusNotStarted}))

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	assert.Nil(t, progress["7"].LastStudied)

	tags, err := db.GetTopicTags("7")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestSaveTopicProgress_RejectsUnknownStatus(t *testing.T) {
	db := openTestDB(t)

	err := db.SaveTopicProgress(models.Topic{ID: "1", Status: "paused", UserTags: []string{"x"}})
	require.Error(t, err)

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	assert.Empty(t, progress)
}

func TestListAllTopicTags(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.SaveTopicProgress(models.Topic{ID: "1", Status: models.StatusCompleted, UserTags: []string{"b", "a"}}))
	require.NoError(t, db.SaveTopicProgress(models.Topic{ID: "2", Status: models.StatusInProgress, UserTags: []string{"c"}}))
	require.NoError(t, db.SaveTopicProgress(models.Topic{ID: "3", Status: models.StatusInProgress}))

	all, err := db.ListAllTopicTags()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"1": {"b", "a"},
		"2": {"c"},
	}, all)
}

func TestRecordAdvance(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	topic := models.Topic{ID: "3", Status: models.StatusInProgress, LastStudied: &now}
	ev, err := db.RecordAdvance(topic, models.StudyEvent{
		TopicID:    "3",
		FromStatus: models.StatusNotStarted,
		ToStatus:   models.StatusInProgress,
		OccurredAt: now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, progress["3"].Status)

	events, err := db.ListStudyEvents(time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ev.ID, events[0].ID)
	assert.Equal(t, models.StatusNotStarted, events[0].FromStatus)
	assert.Equal(t, models.StatusInProgress, events[0].ToStatus)
	assert.True(t, now.Equal(events[0].OccurredAt))
}

func TestRecordAdvance_RollsBack(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	_, err := db.RecordAdvance(
		models.Topic{ID: "3", Status: models.StatusCompleted},
		models.StudyEvent{ID: "dup", TopicID: "3", FromStatus: models.StatusInProgress, ToStatus: models.StatusCompleted, OccurredAt: now},
	)
	require.NoError(t, err)

	_, err = db.RecordAdvance(
		models.Topic{ID: "3", Status: models.StatusInProgress, Notes: "should not stick"},
		models.StudyEvent{ID: "dup", TopicID: "3", FromStatus: models.StatusCompleted, ToStatus: models.StatusInProgress, OccurredAt: now},
	)
	require.Error(t, err)

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, progress["3"].Status)
	assert.Empty(t, progress["3"].Notes)
}

func TestListStudyEvents_Since(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{48 * time.Hour, 0, 24 * time.Hour} {
		id := []string{"a", "b", "c"}[i]
		_, err := db.RecordAdvance(models.Topic{ID: id, Status: models.StatusInProgress}, models.StudyEvent{
			TopicID:    id,
			FromStatus: models.StatusNotStarted,
			ToStatus:   models.StatusInProgress,
			OccurredAt: base.Add(offset),
		})
		require.NoError(t, err)
	}

	all, err := db.ListStudyEvents(time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].TopicID)
	assert.Equal(t, "c", all[1].TopicID)
	assert.Equal(t, "a", all[2].TopicID)

	recent, err := db.ListStudyEvents(base.Add(24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].TopicID)
}

func TestRecordAdvance_AssignsDefaults(t *testing.T) {
	db := openTestDB(t)

	ev, err := db.RecordAdvance(
		models.Topic{ID: "1", Status: models.StatusCompleted},
		models.StudyEvent{TopicID: "1", FromStatus: models.StatusInProgress, ToStatus: models.StatusCompleted},
	)
	require.NoError(t, err)
	assert.Len(t, ev.ID, 36)
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Minute)
}

func TestOnboarding(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetOnboarding()
	assert.ErrorIs(t, err, models.ErrNotFound)

	done := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	want := models.OnboardingData{
		Subjects:    []string{"math", "physics"},
		ExamBoard:   models.ExamBoardAQA,
		Goals:       models.Goals{TopicsPerWeek: 4, StudyTimePerDay: 45},
		CompletedAt: done,
	}
	require.NoError(t, db.SaveOnboarding(want))

	got, err := db.GetOnboarding()
	require.NoError(t, err)
	assert.Equal(t, want.Subjects, got.Subjects)
	assert.Equal(t, want.ExamBoard, got.ExamBoard)
	assert.Equal(t, want.Goals, got.Goals)
	assert.True(t, done.Equal(got.CompletedAt))

	want.Subjects = []string{"biology"}
	require.NoError(t, db.SaveOnboarding(want))
	got, err = db.GetOnboarding()
	require.NoError(t, err)
	assert.Equal(t, []string{"biology"}, got.Subjects)
}

// withLocalZone makes loc the process time zone for the rest of the test.
// Databases must be opened after the call to pick it up.
func withLocalZone(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestTimesReadBackInLocalZone(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	withLocalZone(t, sydney)
	db := openTestDB(t)

	justAfterMidnight := time.Date(2024, 3, 5, 0, 30, 0, 0, sydney)
	_, err := db.RecordAdvance(
		models.Topic{ID: "3", Status: models.StatusInProgress, LastStudied: &justAfterMidnight},
		models.StudyEvent{TopicID: "3", FromStatus: models.StatusNotStarted, ToStatus: models.StatusInProgress, OccurredAt: justAfterMidnight},
	)
	require.NoError(t, err)
	require.NoError(t, db.SaveOnboarding(models.OnboardingData{
		Subjects:    []string{"math"},
		ExamBoard:   models.ExamBoardOCR,
		Goals:       models.Goals{TopicsPerWeek: 3, StudyTimePerDay: 30},
		CompletedAt: justAfterMidnight,
	}))

	progress, err := db.ListTopicProgress()
	require.NoError(t, err)
	studied := progress["3"].LastStudied
	require.NotNil(t, studied)
	assert.True(t, justAfterMidnight.Equal(*studied))
	assert.Equal(t, "5 Mar 2024", studied.Format("2 Jan 2006"))

	events, err := db.ListStudyEvents(time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-03-05 00:30", events[0].OccurredAt.Format("2006-01-02 15:04"))

	saved, err := db.GetOnboarding()
	require.NoError(t, err)
	assert.Equal(t, "5 Mar 2024", saved.CompletedAt.Format("2 Jan 2006"))
}
