package ui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/db"
	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/topics"
	"github.com/tgienger/studyhub/internal/ui/styles"
	"github.com/tgienger/studyhub/internal/ui/views"
)

const settingSyllabusSubject = "syllabus_subject"

// Options configures the application shell
type Options struct {
	UserName     string
	RecentLimit  int
	SuggestLimit int
	Now          func() time.Time // defaults to time.Now
}

type App struct {
	db      *db.DB
	catalog *catalog.Catalog
	log     *zap.Logger
	now     func() time.Time
	styles  *styles.Styles

	route   views.Route
	history []views.Route

	onboarding *views.OnboardingView
	dashboard  *views.DashboardView
	syllabus   *views.SyllabusView
	topic      *views.TopicView

	status    string
	statusErr bool
	width     int
	height    int
}

// Creates a new application
func NewApp(database *db.DB, cat *catalog.Catalog, log *zap.Logger, opts Options) *App {
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		db:         database,
		catalog:    cat,
		log:        log,
		now:        now,
		styles:     styles.NewStyles(),
		route:      views.RouteOnboarding,
		onboarding: views.NewOnboardingView(cat.Offerings(), now),
		dashboard: views.NewDashboardView(cat, views.DashboardOptions{
			UserName:     opts.UserName,
			RecentLimit:  opts.RecentLimit,
			SuggestLimit: opts.SuggestLimit,
		}, now),
		syllabus: views.NewSyllabusView(cat, ""),
		topic:    views.NewTopicView(cat),
	}
}

// Route returns the screen the user asked for last
func (a *App) Route() views.Route { return a.route }

// Status returns the text of the status line
func (a *App) Status() string { return a.status }

func (a *App) Init() tea.Cmd {
	saved, err := a.db.GetOnboarding()
	switch {
	case err == nil:
		a.route = views.RouteDashboard
		a.dashboard.SetGoals(saved.Goals.StudyGoals())
	case errors.Is(err, models.ErrNotFound):
		a.route = views.RouteOnboarding
	default:
		a.fail("could not read onboarding", err)
		a.route = views.RouteOnboarding
	}

	if subject, err := a.db.GetSetting(settingSyllabusSubject); err != nil {
		a.log.Warn("could not read setting", zap.String("key", settingSyllabusSubject), zap.Error(err))
	} else if subject != "" {
		a.syllabus.SetSubject(subject)
	}

	events, err := a.db.ListStudyEvents(time.Time{})
	if err != nil {
		a.fail("could not load study history", err)
	}
	a.dashboard.SetEvents(events)

	a.log.Info("app started", zap.String("route", string(a.route)), zap.Int("events", len(events)))
	return nil
}

func (a *App) current() tea.Model {
	switch a.route.Resolve() {
	case views.RouteOnboarding:
		return a.onboarding
	case views.RouteSyllabus:
		return a.syllabus
	case views.RouteTopicDetail:
		return a.topic
	default:
		return a.dashboard
	}
}

// show switches to a route, remembering the current one for Back
func (a *App) show(route views.Route) tea.Cmd {
	if route.Resolve() != route {
		a.info(fmt.Sprintf("%s is not available yet", route))
	}
	if a.route != route {
		a.history = append(a.history, a.route)
	}
	a.route = route
	return a.resize()
}

func (a *App) back() tea.Cmd {
	if len(a.history) == 0 {
		a.route = views.RouteDashboard
		return a.resize()
	}
	a.route = a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.resize()
}

// resize re-sends the window size so a newly shown view can lay itself out
func (a *App) resize() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 0)}
		a.onboarding.Update(inner)
		a.dashboard.Update(inner)
		a.syllabus.Update(inner)
		a.topic.Update(inner)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""

	case views.OnboardingCompleted:
		return a, a.completeOnboarding(msg.Data)

	case views.Navigate:
		if msg.To == views.RouteSyllabus {
			return a, a.openSyllabus(a.syllabus.SubjectID())
		}
		return a, a.show(msg.To)

	case views.Back:
		return a, a.back()

	case views.OpenSyllabus:
		return a, a.openSyllabus(msg.SubjectID)

	case views.SelectedTopic:
		if _, ok := a.catalog.Topic(msg.TopicID); !ok {
			a.fail("could not open topic", fmt.Errorf("topic %q: %w", msg.TopicID, models.ErrNotFound))
			return a, nil
		}
		a.topic.SetTopic(msg.TopicID)
		return a, a.show(views.RouteTopicDetail)

	case views.AdvanceTopic:
		a.advanceTopic(msg.TopicID)
		return a, nil

	case views.SaveNotes:
		a.updateTopic(msg.TopicID, "notes saved", func(t *models.Topic) {
			t.Notes = msg.Notes
		})
		return a, nil

	case views.ToggleTag:
		a.updateTopic(msg.TopicID, "tags updated", func(t *models.Topic) {
			if i := slices.Index(t.UserTags, msg.Tag); i >= 0 {
				t.UserTags = slices.Delete(t.UserTags, i, i+1)
			} else {
				t.UserTags = append(t.UserTags, msg.Tag)
			}
		})
		return a, nil
	}

	_, cmd := a.current().Update(msg)
	return a, cmd
}

func (a *App) completeOnboarding(data models.OnboardingData) tea.Cmd {
	if err := a.db.SaveOnboarding(data); err != nil {
		a.fail("could not save onboarding", err)
		return nil
	}
	a.log.Info("onboarding completed",
		zap.Strings("subjects", data.Subjects),
		zap.String("exam_board", data.ExamBoard.String()),
		zap.Int("topics_per_week", data.Goals.TopicsPerWeek),
		zap.Int("study_time_per_day", data.Goals.StudyTimePerDay),
	)
	a.dashboard.SetGoals(data.Goals.StudyGoals())
	a.history = nil
	a.route = views.RouteDashboard
	return a.resize()
}

func (a *App) openSyllabus(subjectID string) tea.Cmd {
	a.syllabus.SetSubject(subjectID)
	if err := a.db.SetSetting(settingSyllabusSubject, a.syllabus.SubjectID()); err != nil {
		a.log.Warn("could not save setting", zap.String("key", settingSyllabusSubject), zap.Error(err))
	}
	if a.route == views.RouteSyllabus {
		return nil
	}
	return a.show(views.RouteSyllabus)
}

// advanceTopic moves a topic through its lifecycle, stores the move and only
// then applies it to the catalog
func (a *App) advanceTopic(id string) {
	topic, ok := a.catalog.Topic(id)
	if !ok {
		a.fail("could not advance topic", fmt.Errorf("topic %q: %w", id, models.ErrNotFound))
		return
	}

	now := a.now()
	updated := topics.Advance(topic, now)
	ev, err := a.db.RecordAdvance(updated, models.StudyEvent{
		TopicID:    id,
		FromStatus: topic.Status,
		ToStatus:   updated.Status,
		OccurredAt: now,
	})
	if err != nil {
		a.fail("could not save progress", err)
		return
	}
	if err := a.catalog.ApplyTopic(updated); err != nil {
		a.fail("could not update topic", err)
		return
	}

	events, err := a.db.ListStudyEvents(time.Time{})
	if err != nil {
		a.log.Warn("could not reload study history", zap.Error(err))
	} else {
		a.dashboard.SetEvents(events)
	}

	a.log.Info("topic advanced",
		zap.String("topic_id", id),
		zap.String("event_id", ev.ID),
		zap.String("from", topic.Status.String()),
		zap.String("to", updated.Status.String()),
	)
	a.info(fmt.Sprintf("%s: %s", updated.Title, updated.Status.Label()))
}

// updateTopic applies an edit to the user-owned part of a topic and stores it
func (a *App) updateTopic(id, done string, edit func(*models.Topic)) {
	topic, ok := a.catalog.Topic(id)
	if !ok {
		a.fail("could not update topic", fmt.Errorf("topic %q: %w", id, models.ErrNotFound))
		return
	}
	edit(&topic)

	if err := a.db.SaveTopicProgress(topic); err != nil {
		a.fail("could not save topic", err)
		return
	}
	// the store trims tags and drops blanks and repeats
	if tags, err := a.db.GetTopicTags(id); err != nil {
		a.log.Warn("could not reload tags", zap.String("topic_id", id), zap.Error(err))
	} else {
		topic.UserTags = tags
	}
	if err := a.catalog.ApplyTopic(topic); err != nil {
		a.fail("could not update topic", err)
		return
	}
	a.log.Debug("topic updated", zap.String("topic_id", id), zap.String("change", done))
	a.info(done)
}

func (a *App) info(text string) {
	a.status = text
	a.statusErr = false
}

// fail logs an error and shows it in the status line
func (a *App) fail(what string, err error) {
	a.log.Error(what, zap.Error(err))
	a.status = fmt.Sprintf("%s: %v", what, err)
	a.statusErr = true
}

func (a *App) View() string {
	body := a.current().View()
	if a.status == "" {
		return body
	}
	style := a.styles.StatusBar
	if a.statusErr {
		style = a.styles.StatusError
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, style.Render(a.status))
}
