package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/db"
	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/ui/views"
)

var fixedNow = time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC)

type harness struct {
	app *App
	db  *db.DB
	cat *catalog.Catalog
}

func newHarness(t *testing.T, onboarded bool) *harness {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "studyhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	if onboarded {
		require.NoError(t, database.SaveOnboarding(models.OnboardingData{
			Subjects:    []string{"math"},
			ExamBoard:   models.ExamBoardCambridge,
			Goals:       models.Goals{TopicsPerWeek: 3, StudyTimePerDay: 90},
			CompletedAt: fixedNow,
		}))
	}

	cat, err := catalog.Load("", nil)
	require.NoError(t, err)

	app := NewApp(database, cat, nil, Options{
		UserName:     "Ana",
		RecentLimit:  3,
		SuggestLimit: 3,
		Now:          func() time.Time { return fixedNow },
	})
	app.Init()
	return &harness{app: app, db: database, cat: cat}
}

// send delivers msg and then any message produced by the returned command,
// the way the Bubble Tea runtime would
func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	for cmd != nil {
		next := cmd()
		switch next.(type) {
		case views.OnboardingCompleted, views.Navigate, views.Back, views.OpenSyllabus,
			views.SelectedTopic, views.AdvanceTopic, views.SaveNotes, views.ToggleTag,
			tea.WindowSizeMsg:
			_, cmd = h.app.Update(next)
		default:
			return
		}
	}
}

func (h *harness) keys(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.send(k)
	}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestInit_StartRoute(t *testing.T) {
	assert.Equal(t, views.RouteOnboarding, newHarness(t, false).app.Route())
	onboarded := newHarness(t, true)
	assert.Equal(t, views.RouteDashboard, onboarded.app.Route())
	assert.Contains(t, onboarded.app.View(), "0m of 1h 30m study time", "saved goals replace the catalog user's")
}

func TestOnboardingFlow(t *testing.T) {
	h := newHarness(t, false)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})

	h.keys(enter, space, enter, right, space, enter, enter)

	assert.Equal(t, views.RouteDashboard, h.app.Route())
	assert.Contains(t, h.app.View(), "Welcome back, Ana!")

	saved, err := h.db.GetOnboarding()
	require.NoError(t, err)
	assert.Equal(t, []string{"math"}, saved.Subjects)
	assert.Equal(t, models.ExamBoardEdexcel, saved.ExamBoard)
	assert.Equal(t, models.Goals{TopicsPerWeek: 3, StudyTimePerDay: 30}, saved.Goals)

	h.send(views.Back{})
	assert.Equal(t, views.RouteDashboard, h.app.Route(), "onboarding is not reachable with back")
	assert.Contains(t, h.app.View(), "0m of 30m study time", "goals chosen during onboarding")
}

func TestAdvanceTopic(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.SelectedTopic{TopicID: "3"})
	require.Equal(t, views.RouteTopicDetail, h.app.Route())

	h.send(views.AdvanceTopic{TopicID: "3"})
	topic, _ := h.cat.Topic("3")
	assert.Equal(t, models.StatusInProgress, topic.Status)
	require.NotNil(t, topic.LastStudied)
	assert.Equal(t, fixedNow, *topic.LastStudied)
	assert.Contains(t, h.app.Status(), "In Progress")
	assert.Contains(t, h.app.View(), "Mark Complete")

	h.keys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	topic, _ = h.cat.Topic("3")
	assert.Equal(t, models.StatusCompleted, topic.Status)

	maths, _ := h.cat.Subject("math")
	assert.Equal(t, 32, maths.CompletedTopics)

	progress, err := h.db.ListTopicProgress()
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, progress["3"].Status)

	h.send(views.Navigate{To: views.RouteDashboard})
	out := h.app.View()
	assert.Contains(t, out, "1/1")
	assert.Contains(t, out, "Daily goal reached!")

	events, err := h.db.ListStudyEvents(time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.StatusNotStarted, events[0].FromStatus)
	assert.Equal(t, models.StatusCompleted, events[1].ToStatus)
}

func TestAdvanceTopic_Unknown(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.AdvanceTopic{TopicID: "404"})
	assert.Contains(t, h.app.Status(), "could not advance topic")

	h.send(views.SelectedTopic{TopicID: "404"})
	assert.Equal(t, views.RouteDashboard, h.app.Route())

	events, err := h.db.ListStudyEvents(time.Time{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNotesAndTags(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.SaveNotes{TopicID: "1", Notes: "BIDMAS"})
	h.send(views.ToggleTag{TopicID: "1", Tag: "exam"})
	h.send(views.ToggleTag{TopicID: "1", Tag: "foundation"})

	topic, _ := h.cat.Topic("1")
	assert.Equal(t, "BIDMAS", topic.Notes)
	assert.Equal(t, []string{"important", "exam"}, topic.UserTags)
	assert.Equal(t, models.StatusCompleted, topic.Status, "editing does not move the lifecycle")

	tags, err := h.db.GetTopicTags("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"important", "exam"}, tags)

	reloaded, err := catalog.Load("", nil)
	require.NoError(t, err)
	progress, err := h.db.ListTopicProgress()
	require.NoError(t, err)
	all, err := h.db.ListAllTopicTags()
	require.NoError(t, err)
	reloaded.Overlay(progress, all)

	again, _ := reloaded.Topic("1")
	assert.Equal(t, "BIDMAS", again.Notes)
	assert.Equal(t, []string{"important", "exam"}, again.UserTags)
}

func TestToggleTag_KeepsStoredForm(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.ToggleTag{TopicID: "3", Tag: "  exam "})
	topic, _ := h.cat.Topic("3")
	assert.Equal(t, []string{"exam"}, topic.UserTags)

	h.send(views.ToggleTag{TopicID: "3", Tag: "exam"})
	topic, _ = h.cat.Topic("3")
	assert.Empty(t, topic.UserTags)
}

func TestNavigationHistory(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.OpenSyllabus{SubjectID: "math"})
	assert.Equal(t, views.RouteSyllabus, h.app.Route())

	h.send(views.SelectedTopic{TopicID: "5"})
	assert.Equal(t, views.RouteTopicDetail, h.app.Route())

	h.send(views.Back{})
	assert.Equal(t, views.RouteSyllabus, h.app.Route())

	h.send(views.Back{})
	assert.Equal(t, views.RouteDashboard, h.app.Route())

	h.send(views.Back{})
	assert.Equal(t, views.RouteDashboard, h.app.Route())
}

func TestSyllabusSubjectIsRemembered(t *testing.T) {
	h := newHarness(t, true)

	h.send(views.OpenSyllabus{SubjectID: "chemistry"})
	got, err := h.db.GetSetting(settingSyllabusSubject)
	require.NoError(t, err)
	assert.Equal(t, "chemistry", got)

	next := NewApp(h.db, h.cat, nil, Options{Now: func() time.Time { return fixedNow }})
	next.Init()
	next.Update(views.Navigate{To: views.RouteSyllabus})
	assert.Equal(t, "chemistry", next.syllabus.SubjectID())
	assert.Contains(t, next.View(), "Chemistry")
}

func TestUnavailableRoutesShowDashboard(t *testing.T) {
	h := newHarness(t, true)

	for _, route := range []views.Route{views.RouteProgress, views.RouteAIAssistant} {
		h.send(views.Navigate{To: route})
		assert.Equal(t, route, h.app.Route())
		assert.Same(t, h.app.dashboard, h.app.current())
		assert.Contains(t, h.app.View(), "Welcome back, Ana!")
		assert.Contains(t, h.app.Status(), "not available yet")
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := newHarness(t, true)

	_, cmd := h.app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
