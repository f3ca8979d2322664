package views

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/topics"
	"github.com/tgienger/studyhub/internal/ui/keys"
	"github.com/tgienger/studyhub/internal/ui/styles"
)

// DashboardOptions tunes what the dashboard shows
type DashboardOptions struct {
	UserName     string
	RecentLimit  int
	SuggestLimit int
}

// dashboardEntry is one selectable line: a subject or a topic
type dashboardEntry struct {
	subjectID string
	topicID   string
}

// DashboardView is the home screen: overall progress, stats and shortcuts
type DashboardView struct {
	catalog *catalog.Catalog
	events  []models.StudyEvent
	goals   []models.StudyGoal
	opts    DashboardOptions
	styles  *styles.Styles
	keys    keys.KeyMap
	now     func() time.Time
	width   int
	height  int
	cursor  int

	showHelpPopup bool
}

// NewDashboardView creates the home screen. The catalog's user supplies the
// name and goals until the app provides its own.
func NewDashboardView(cat *catalog.Catalog, opts DashboardOptions, now func() time.Time) *DashboardView {
	user := cat.User()
	if opts.UserName == "" {
		opts.UserName = user.Name
	}
	return &DashboardView{
		catalog: cat,
		goals:   user.Goals,
		opts:    opts,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		now:     now,
	}
}

// SetEvents replaces the study log the stats are computed from
func (v *DashboardView) SetEvents(events []models.StudyEvent) { v.events = events }

// SetGoals replaces the targets behind the daily goal card
func (v *DashboardView) SetGoals(goals []models.StudyGoal) { v.goals = goals }

func (v *DashboardView) Init() tea.Cmd { return nil }

func (v *DashboardView) recent() []models.Topic {
	return topics.MostRecentlyStudied(v.catalog.Topics(), v.opts.RecentLimit)
}

func (v *DashboardView) suggested() []models.Topic {
	return topics.SuggestNext(v.catalog.Topics(), v.opts.SuggestLimit)
}

// entries lists selectable lines in display order: subjects, recent, suggested
func (v *DashboardView) entries() []dashboardEntry {
	var out []dashboardEntry
	for _, s := range v.catalog.Subjects() {
		out = append(out, dashboardEntry{subjectID: s.ID})
	}
	for _, t := range v.recent() {
		out = append(out, dashboardEntry{topicID: t.ID})
	}
	for _, t := range v.suggested() {
		out = append(out, dashboardEntry{topicID: t.ID})
	}
	return out
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		entries := v.entries()
		v.cursor = clamp(v.cursor, 0, max(len(entries)-1, 0))

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(entries)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Syllabus):
			return v, func() tea.Msg { return Navigate{To: RouteSyllabus} }
		case key.Matches(msg, v.keys.Progress):
			return v, func() tea.Msg { return Navigate{To: RouteProgress} }
		case key.Matches(msg, v.keys.Assistant):
			return v, func() tea.Msg { return Navigate{To: RouteAIAssistant} }
		case key.Matches(msg, v.keys.Enter):
			if len(entries) == 0 {
				return v, nil
			}
			e := entries[v.cursor]
			if e.subjectID != "" {
				return v, func() tea.Msg { return OpenSyllabus{SubjectID: e.subjectID} }
			}
			return v, func() tea.Msg { return SelectedTopic{TopicID: e.topicID} }
		}
	}
	return v, nil
}

func (v *DashboardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth == 0 {
		contentWidth = styles.MaxWidth
	}
	subjects := v.catalog.Subjects()
	overall := topics.AggregateProgress(subjects)

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("IGCSE Study Hub"),
		s.TitleMuted.Render(fmt.Sprintf("Welcome back, %s!", v.opts.UserName)),
	)

	welcome := s.Card.Width(contentWidth - 2).Render(lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Width(contentWidth-18).Render(lipgloss.JoinVertical(lipgloss.Left,
			"Ready to continue your IGCSE journey?",
			s.TitleMuted.Render("Keep up the momentum."),
		)),
		lipgloss.JoinVertical(lipgloss.Center,
			s.StatValue.Foreground(styles.Current.Success).Render(fmt.Sprintf("%d%%", overall)),
			s.StatLabel.Render("Overall"),
		),
	))

	now := v.now()
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderStat(strconv.Itoa(len(subjects)), "Active Subjects", contentWidth),
		v.renderStat(strconv.Itoa(topics.TotalCompleted(subjects)), "Topics Completed", contentWidth),
		v.renderStat(formatMinutes(topics.WeeklyStudyMinutes(v.events, v.catalog.Topics(), now)), "This Week", contentWidth),
		v.renderStat(fmt.Sprintf("%dd", topics.StudyStreak(v.events, now)), "Study Streak", contentWidth),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		welcome,
		stats,
		v.renderTodayGoal(topics.TodayGoal(v.events, v.catalog.Topics(), v.goals, now), contentWidth),
		v.renderSubjects(subjects, contentWidth),
		v.renderTopicSection("Recently Studied", v.recent(), len(subjects), "Nothing studied yet"),
		v.renderTopicSection("Suggested Next", v.suggested(), len(subjects)+len(v.recent()), "Every topic has been started"),
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *DashboardView) renderStat(value, label string, width int) string {
	w := max(width/4-2, 12)
	return v.styles.Card.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center,
		v.styles.StatValue.Render(value),
		v.styles.StatLabel.Render(label),
	))
}

func (v *DashboardView) renderTodayGoal(g topics.DailyGoal, width int) string {
	s := v.styles
	hint := "Daily goal reached!"
	switch n := g.Remaining(); {
	case n == 1:
		hint = "1 more topic to reach your daily goal!"
	case n > 1:
		hint = fmt.Sprintf("%d more topics to reach your daily goal!", n)
	}

	lines := []string{
		s.Heading.Render("Today's Goal"),
		s.StatValue.Foreground(styles.Current.Success).Render(fmt.Sprintf("%d/%d", g.TopicsDone, g.TopicsTarget)) +
			" " + s.StatLabel.Render("Topics completed today"),
		styles.ProgressBar(clamp(width-10, 10, 60), g.Percent()),
		s.TitleMuted.Render(hint),
	}
	if g.MinutesTarget > 0 {
		lines = append(lines, s.TopicMeta.Render(fmt.Sprintf("%s of %s study time", formatMinutes(g.Minutes), formatMinutes(g.MinutesTarget))))
	}
	return s.Card.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *DashboardView) renderSubjects(subjects []models.Subject, width int) string {
	s := v.styles
	lines := []string{s.Heading.Render("Subject Progress")}
	for i, sub := range subjects {
		title := fmt.Sprintf("%s  %s",
			sub.Name,
			s.TopicMeta.Render(fmt.Sprintf("%s • %s • %d/%d topics", sub.SyllabusCode, sub.ExamBoard, sub.CompletedTopics, sub.TotalTopics)),
		)
		bar := styles.ProgressBar(clamp(width-16, 10, 60), sub.Progress) + fmt.Sprintf(" %3d%%", sub.Progress)
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Render(title), s.ListItem.Render(bar))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *DashboardView) renderTopicSection(heading string, list []models.Topic, offset int, empty string) string {
	s := v.styles
	lines := []string{s.Heading.Render(heading)}
	if len(list) == 0 {
		lines = append(lines, s.ListItem.Render(s.TitleMuted.Render(empty)))
	}
	for i, t := range list {
		line := fmt.Sprintf("%s %s  %s", styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status)), t.Title, s.TopicMeta.Render(t.SyllabusReference))
		if t.LastStudied != nil {
			line += s.TopicMeta.Render(" • " + t.LastStudied.Local().Format("2 Jan"))
		} else {
			line += s.TopicMeta.Render(fmt.Sprintf(" • %s • %dm", t.Difficulty, t.EstimatedTime))
		}
		style := s.ListItem
		if offset+i == v.cursor {
			style = s.ListSelected
		}
		lines = append(lines, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *DashboardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return renderHelpLine(v.styles, "↵", "open", "s", "syllabus", "p", "progress", "i", "assistant", "q", "quit")
}

func (v *DashboardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		s.HelpKey.Render("↑↓")+"     move",
		s.HelpKey.Render("↵")+"      open subject or topic",
		s.HelpKey.Render("s")+"      syllabus",
		s.HelpKey.Render("p")+"      progress",
		s.HelpKey.Render("i")+"      AI assistant",
		s.HelpKey.Render("q")+"      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
