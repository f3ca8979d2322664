package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/topics"
	"github.com/tgienger/studyhub/internal/ui/keys"
	"github.com/tgienger/studyhub/internal/ui/styles"
)

// syllabusRow is either a chapter header or one of its topics
type syllabusRow struct {
	chapter models.Chapter
	topic   *models.Topic
}

// SyllabusView lists a subject's chapters and topics with search and filtering
type SyllabusView struct {
	catalog   *catalog.Catalog
	subjectID string
	styles    *styles.Styles
	keys      keys.KeyMap

	width  int
	height int

	search   textinput.Model
	filter   topics.StatusFilter
	expanded map[string]bool // by chapter title
	cursor   int
	scrollY  int
}

func NewSyllabusView(cat *catalog.Catalog, subjectID string) *SyllabusView {
	search := textinput.New()
	search.Placeholder = "Search topics..."
	search.CharLimit = 100

	v := &SyllabusView{
		catalog: cat,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		search:  search,
		filter:  topics.FilterAll,
	}
	v.SetSubject(subjectID)
	return v
}

// SubjectID returns the subject being shown
func (v *SyllabusView) SubjectID() string { return v.subjectID }

// SetSubject switches to another subject, resetting the cursor and expanding
// only its first chapter. Unknown ids fall back to the first subject.
func (v *SyllabusView) SetSubject(id string) {
	if _, ok := v.catalog.Subject(id); !ok {
		id = ""
		if subjects := v.catalog.Subjects(); len(subjects) > 0 {
			id = subjects[0].ID
		}
	}
	v.subjectID = id
	v.cursor = 0
	v.scrollY = 0
	v.expanded = make(map[string]bool)
	if chapters := v.catalog.Chapters(id); len(chapters) > 0 {
		v.expanded[chapters[0].Title] = true
	}
}

func (v *SyllabusView) chapters() []models.Chapter {
	return topics.FilterChapters(v.catalog.Chapters(v.subjectID), v.search.Value(), v.filter)
}

func (v *SyllabusView) rows() []syllabusRow {
	var rows []syllabusRow
	for _, ch := range v.chapters() {
		rows = append(rows, syllabusRow{chapter: ch})
		if !v.expanded[ch.Title] {
			continue
		}
		for i := range ch.Topics {
			rows = append(rows, syllabusRow{chapter: ch, topic: &ch.Topics[i]})
		}
	}
	return rows
}

func (v *SyllabusView) Init() tea.Cmd { return nil }

func (v *SyllabusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.search.Width = clamp(styles.ContentWidth(msg.Width)-30, 10, 30)
		return v, nil

	case tea.KeyMsg:
		if v.search.Focused() {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *SyllabusView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.search.Blur()
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != before {
		v.cursor = 0
		v.scrollY = 0
	}
	return v, cmd
}

func (v *SyllabusView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.rows()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return Back{} }

	case key.Matches(msg, v.keys.Search):
		v.search.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.filter = v.filter.Next()
		v.cursor = 0
		v.scrollY = 0
		return v, nil

	case key.Matches(msg, v.keys.PrevTab), key.Matches(msg, v.keys.NextTab):
		next := v.neighbourSubject(key.Matches(msg, v.keys.NextTab))
		if next == "" || next == v.subjectID {
			return v, nil
		}
		return v, func() tea.Msg { return OpenSyllabus{SubjectID: next} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Toggle):
		if v.cursor >= len(rows) {
			return v, nil
		}
		row := rows[v.cursor]
		if row.topic == nil {
			v.expanded[row.chapter.Title] = !v.expanded[row.chapter.Title]
			return v, nil
		}
		id := row.topic.ID
		return v, func() tea.Msg { return SelectedTopic{TopicID: id} }
	}
	return v, nil
}

func (v *SyllabusView) neighbourSubject(forward bool) string {
	subjects := v.catalog.Subjects()
	if len(subjects) == 0 {
		return ""
	}
	i := slices.IndexFunc(subjects, func(s models.Subject) bool { return s.ID == v.subjectID })
	if forward {
		i = (i + 1) % len(subjects)
	} else {
		i = (i - 1 + len(subjects)) % len(subjects)
	}
	return subjects[i].ID
}

// visibleRows is how many rows fit below the header
func (v *SyllabusView) visibleRows() int {
	if v.height == 0 {
		return 1 << 16
	}
	return max(v.height-12, 3)
}

func (v *SyllabusView) ensureVisible() {
	n := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.cursor >= v.scrollY+n {
		v.scrollY = v.cursor - n + 1
	}
}

func (v *SyllabusView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth == 0 {
		contentWidth = styles.MaxWidth
	}

	subject, ok := v.catalog.Subject(v.subjectID)
	if !ok {
		return styles.CenterView(s.TitleMuted.Render("No subjects in the catalog"), v.width, v.height)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(subject.Name),
		s.TitleMuted.Render(fmt.Sprintf("%s • %s • %d/%d topics completed",
			subject.SyllabusCode, subject.ExamBoard, subject.CompletedTopics, subject.TotalTopics)),
		styles.ProgressBar(clamp(contentWidth-10, 10, 60), subject.Progress)+fmt.Sprintf(" %d%%", subject.Progress),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		v.renderFilterBar(),
		v.renderRows(contentWidth),
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *SyllabusView) renderFilterBar() string {
	s := v.styles
	searchStyle := s.Input
	if v.search.Focused() {
		searchStyle = s.InputFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		searchStyle.Render(v.search.View()),
		" ",
		s.Button.Render(v.filter.Label()+" ▼"),
	)
}

func (v *SyllabusView) renderRows(width int) string {
	s := v.styles
	rows := v.rows()
	if len(rows) == 0 {
		return s.ListItem.Render(s.TitleMuted.Render("No chapters for this subject"))
	}

	end := min(v.scrollY+v.visibleRows(), len(rows))
	var lines []string
	for i := v.scrollY; i < end; i++ {
		row := rows[i]
		selected := i == v.cursor && !v.search.Focused()

		var line string
		if row.topic == nil {
			line = v.renderChapter(row.chapter, width)
		} else {
			line = v.renderTopic(*row.topic)
		}

		style := s.ListItem
		if selected {
			style = s.ListSelected
		}
		lines = append(lines, style.Render(line))

		if row.topic == nil && v.expanded[row.chapter.Title] && len(row.chapter.Topics) == 0 {
			lines = append(lines, s.ListItem.Render("    "+s.TitleMuted.Render("No matching topics")))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *SyllabusView) renderChapter(ch models.Chapter, width int) string {
	arrow := "▸"
	if v.expanded[ch.Title] {
		arrow = "▾"
	}
	title := fmt.Sprintf("%s Chapter %s: %s", arrow, ch.ID, ch.Title)
	return fmt.Sprintf("%s  %s %3d%%",
		v.styles.ChapterHeader.Render(title),
		styles.ProgressBar(clamp(width-lipgloss.Width(title)-16, 6, 20), ch.Progress),
		ch.Progress,
	)
}

func (v *SyllabusView) renderTopic(t models.Topic) string {
	s := v.styles
	parts := []string{
		"   " + styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status)),
		s.TopicMeta.Render(t.SyllabusReference),
		s.TopicTitle.Render(t.Title),
		s.TopicMeta.Render(fmt.Sprintf("%s • %dm", t.Difficulty, t.EstimatedTime)),
	}
	if tags := renderUserTags(s, t.UserTags, 2); tags != "" {
		parts = append(parts, tags)
	}
	return strings.Join(parts, " ")
}

func (v *SyllabusView) renderHelp() string {
	if v.search.Focused() {
		return renderHelpLine(v.styles, "↵", "done", "esc", "stop searching")
	}
	return renderHelpLine(v.styles, "↵", "open/expand", "/", "search", "f", "filter", "[ ]", "subject", "esc", "back")
}
