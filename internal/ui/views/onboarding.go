package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/onboarding"
	"github.com/tgienger/studyhub/internal/ui/keys"
	"github.com/tgienger/studyhub/internal/ui/styles"
)

type offeringItem struct {
	offering models.Offering
}

func (i offeringItem) Title() string       { return i.offering.Name }
func (i offeringItem) Description() string { return i.offering.Code }
func (i offeringItem) FilterValue() string { return i.offering.Name }

// offeringDelegate draws a subject with a checkbox reflecting the wizard state
type offeringDelegate struct {
	styles   *styles.Styles
	width    int
	selected func(id string) bool
}

func (d offeringDelegate) Height() int                               { return 1 }
func (d offeringDelegate) Spacing() int                              { return 0 }
func (d offeringDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d offeringDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	o, ok := item.(offeringItem)
	if !ok {
		return
	}

	box := "[ ]"
	if d.selected(o.offering.ID) {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %-20s %s", box, o.Title(), d.styles.TopicMeta.Render(o.Description()))

	style := d.styles.ListItem
	if index == m.Index() {
		style = d.styles.ListSelected
	}
	fmt.Fprint(w, style.Width(max(d.width-4, 20)).Render(line))
}

// OnboardingView walks a new student through the intake wizard
type OnboardingView struct {
	state     onboarding.State
	subjects  list.Model
	delegate  *offeringDelegate
	styles    *styles.Styles
	keys      keys.KeyMap
	now       func() time.Time
	width     int
	height    int
	board     int // cursor in models.ExamBoards
	goalFocus int // 0=topics per week, 1=study time per day
	err       string
}

func NewOnboardingView(offerings []models.Offering, now func() time.Time) *OnboardingView {
	s := styles.NewStyles()

	v := &OnboardingView{
		state:  onboarding.New(),
		styles: s,
		keys:   keys.DefaultKeyMap(),
		now:    now,
	}
	v.delegate = &offeringDelegate{styles: s, width: styles.MaxWidth, selected: func(id string) bool {
		return v.state.IsSelected(id)
	}}

	items := make([]list.Item, len(offerings))
	for i, o := range offerings {
		items[i] = offeringItem{offering: o}
	}
	l := list.New(items, v.delegate, styles.MaxWidth, len(items)+2)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	v.subjects = l

	return v
}

// State returns the current wizard state
func (v *OnboardingView) State() onboarding.State { return v.state }

func (v *OnboardingView) Init() tea.Cmd { return nil }

func (v *OnboardingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.subjects.SetWidth(contentWidth - 4)
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *OnboardingView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.err = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		v.state = v.state.Back()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.state.Step == onboarding.StepGoals {
			data, err := v.state.Complete(v.now())
			if err != nil {
				v.err = err.Error()
				return v, nil
			}
			return v, func() tea.Msg { return OnboardingCompleted{Data: data} }
		}
		v.state = v.state.Next()
		return v, nil
	}

	switch v.state.Step {
	case onboarding.StepSubjects:
		return v.updateSubjects(msg)
	case onboarding.StepExamBoard:
		return v.updateExamBoard(msg)
	case onboarding.StepGoals:
		return v.updateGoals(msg)
	}
	return v, nil
}

func (v *OnboardingView) updateSubjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		v.subjects.CursorUp()
	case key.Matches(msg, v.keys.Down):
		v.subjects.CursorDown()
	case key.Matches(msg, v.keys.Toggle):
		if item, ok := v.subjects.SelectedItem().(offeringItem); ok {
			v.state = v.state.ToggleSubject(item.offering.ID)
		}
	}
	return v, nil
}

func (v *OnboardingView) updateExamBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up, v.keys.Left):
		v.board = clamp(v.board-1, 0, len(models.ExamBoards)-1)
	case key.Matches(msg, v.keys.Down, v.keys.Right):
		v.board = clamp(v.board+1, 0, len(models.ExamBoards)-1)
	case key.Matches(msg, v.keys.Toggle):
		v.state = v.state.SelectExamBoard(models.ExamBoards[v.board])
	}
	return v, nil
}

func (v *OnboardingView) updateGoals(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up, v.keys.Down, v.keys.Tab, v.keys.ShiftTab):
		v.goalFocus = 1 - v.goalFocus
	case key.Matches(msg, v.keys.Left):
		v.adjustGoal(-1)
	case key.Matches(msg, v.keys.Right):
		v.adjustGoal(1)
	}
	return v, nil
}

func (v *OnboardingView) adjustGoal(dir int) {
	g := v.state.Goals
	if v.goalFocus == 0 {
		v.state = v.state.SetTopicsPerWeek(g.TopicsPerWeek + dir)
		return
	}
	v.state = v.state.SetStudyTimePerDay(g.StudyTimePerDay + dir*onboarding.StudyTimeStep)
}

func (v *OnboardingView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth == 0 {
		contentWidth = styles.MaxWidth
	}

	header := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("Welcome to IGCSE Study Hub"),
		s.TitleMuted.Render("Let's personalize your learning experience"),
		"",
		styles.ProgressBar(contentWidth-8, v.state.Percent()),
		s.TitleMuted.Render(fmt.Sprintf("Step %d of %d", v.state.Step, onboarding.TotalSteps)),
	)

	var body string
	switch v.state.Step {
	case onboarding.StepWelcome:
		body = lipgloss.JoinVertical(lipgloss.Center,
			s.Heading.Render("Ready to excel in your IGCSEs?"),
			s.TitleMuted.Render("Master your syllabus, track progress, and reach your study goals."),
		)
	case onboarding.StepSubjects:
		body = lipgloss.JoinVertical(lipgloss.Left,
			s.Heading.Render(v.state.Step.Title()),
			v.subjects.View(),
		)
	case onboarding.StepExamBoard:
		body = v.renderExamBoards()
	case onboarding.StepGoals:
		body = v.renderGoals(contentWidth)
	}

	parts := []string{header, "", body, "", v.renderButtons()}
	if v.err != "" {
		parts = append(parts, s.StatusError.Render(v.err))
	}
	parts = append(parts, v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *OnboardingView) renderExamBoards() string {
	s := v.styles
	var buttons []string
	for i, b := range models.ExamBoards {
		style := s.Button
		switch {
		case v.state.ExamBoard == b:
			style = s.ButtonPrimary.Border(lipgloss.RoundedBorder()).BorderForeground(styles.Current.Primary)
		case i == v.board:
			style = s.ButtonFocused
		}
		buttons = append(buttons, style.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		s.Heading.Render(v.state.Step.Title()),
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	)
}

func (v *OnboardingView) renderGoals(width int) string {
	s := v.styles
	g := v.state.Goals
	barWidth := clamp(width-20, 10, 50)

	slider := func(label string, focused bool, pct int) string {
		style := s.Input
		if focused {
			style = s.InputFocused
		}
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, label, styles.ProgressBar(barWidth, pct)))
	}

	topicsPct := (g.TopicsPerWeek - onboarding.MinTopicsPerWeek) * 100 /
		(onboarding.MaxTopicsPerWeek - onboarding.MinTopicsPerWeek)
	timePct := (g.StudyTimePerDay - onboarding.MinStudyTimePerDay) * 100 /
		(onboarding.MaxStudyTimePerDay - onboarding.MinStudyTimePerDay)

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Heading.Render(v.state.Step.Title()),
		slider(fmt.Sprintf("Topics per week: %d", g.TopicsPerWeek), v.goalFocus == 0, topicsPct),
		slider(fmt.Sprintf("Study time per day: %d minutes", g.StudyTimePerDay), v.goalFocus == 1, timePct),
	)
}

func (v *OnboardingView) renderButtons() string {
	s := v.styles

	back := s.Button.Render("← Back")
	if v.state.Step == onboarding.StepWelcome {
		back = s.ButtonDisabled.Render("← Back")
	}

	label := "Next →"
	if v.state.Step == onboarding.StepGoals {
		label = "Start Learning ✓"
	}
	next := s.ButtonPrimary.Render(label)
	if !v.state.CanAdvance() {
		next = s.ButtonDisabled.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, back, strings.Repeat(" ", 4), next)
}

func (v *OnboardingView) renderHelp() string {
	switch v.state.Step {
	case onboarding.StepSubjects:
		return renderHelpLine(v.styles, "↑↓", "move", "space", "toggle", "↵", "next", "esc", "back")
	case onboarding.StepExamBoard:
		return renderHelpLine(v.styles, "←→", "move", "space", "choose", "↵", "next", "esc", "back")
	case onboarding.StepGoals:
		return renderHelpLine(v.styles, "↑↓", "goal", "←→", "adjust", "↵", "finish", "esc", "back")
	}
	return renderHelpLine(v.styles, "↵", "next", "q", "quit")
}
