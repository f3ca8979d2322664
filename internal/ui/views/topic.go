package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/models"
	"github.com/tgienger/studyhub/internal/topics"
	"github.com/tgienger/studyhub/internal/ui/keys"
	"github.com/tgienger/studyhub/internal/ui/styles"
)

type topicMode int

const (
	topicBrowsing topicMode = iota
	topicEditingNotes
	topicAddingTag
)

// TopicView shows one topic and lets the student advance, annotate and tag it
type TopicView struct {
	catalog *catalog.Catalog
	topicID string
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	mode     topicMode
	notes    textarea.Model
	tagInput textinput.Model
}

func NewTopicView(cat *catalog.Catalog) *TopicView {
	notes := textarea.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 5000
	notes.SetWidth(50)
	notes.SetHeight(5)
	notes.ShowLineNumbers = false

	tagInput := textinput.New()
	tagInput.Placeholder = "tag name"
	tagInput.CharLimit = 40

	return &TopicView{
		catalog:  cat,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		notes:    notes,
		tagInput: tagInput,
	}
}

// SetTopic shows another topic and leaves any edit mode
func (v *TopicView) SetTopic(id string) {
	v.topicID = id
	v.mode = topicBrowsing
	v.notes.Blur()
	v.tagInput.Blur()
}

// TopicID returns the topic being shown
func (v *TopicView) TopicID() string { return v.topicID }

// Editing reports whether a text field has focus
func (v *TopicView) Editing() bool { return v.mode != topicBrowsing }

func (v *TopicView) Init() tea.Cmd { return nil }

func (v *TopicView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.notes.SetWidth(clamp(styles.ContentWidth(msg.Width)-10, 20, 60))
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case topicEditingNotes:
			return v.updateNotes(msg)
		case topicAddingTag:
			return v.updateTag(msg)
		}
		return v.updateBrowsing(msg)
	}
	return v, nil
}

func (v *TopicView) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	topic, ok := v.catalog.Topic(v.topicID)

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return Back{} }

	case !ok:
		return v, nil

	case key.Matches(msg, v.keys.Advance), key.Matches(msg, v.keys.Enter):
		id := topic.ID
		return v, func() tea.Msg { return AdvanceTopic{TopicID: id} }

	case key.Matches(msg, v.keys.Notes):
		v.mode = topicEditingNotes
		v.notes.SetValue(topic.Notes)
		v.notes.Focus()
		return v, textarea.Blink

	case key.Matches(msg, v.keys.Tags):
		v.mode = topicAddingTag
		v.tagInput.Reset()
		v.tagInput.Focus()
		return v, textinput.Blink
	}
	return v, nil
}

func (v *TopicView) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = topicBrowsing
		v.notes.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.mode = topicBrowsing
		v.notes.Blur()
		id, text := v.topicID, strings.TrimSpace(v.notes.Value())
		return v, func() tea.Msg { return SaveNotes{TopicID: id, Notes: text} }
	}

	var cmd tea.Cmd
	v.notes, cmd = v.notes.Update(msg)
	return v, cmd
}

func (v *TopicView) updateTag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = topicBrowsing
		v.tagInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.mode = topicBrowsing
		v.tagInput.Blur()
		tag := strings.TrimSpace(v.tagInput.Value())
		if tag == "" {
			return v, nil
		}
		id := v.topicID
		return v, func() tea.Msg { return ToggleTag{TopicID: id, Tag: tag} }
	}

	var cmd tea.Cmd
	v.tagInput, cmd = v.tagInput.Update(msg)
	return v, cmd
}

func (v *TopicView) View() string {
	s := v.styles
	topic, ok := v.catalog.Topic(v.topicID)
	if !ok {
		return styles.CenterView(s.TitleMuted.Render("Topic not found. Press esc to go back."), v.width, v.height)
	}
	subject, _ := v.catalog.Subject(topic.SubjectID)

	var examTags []string
	for _, t := range topic.ExamTags {
		examTags = append(examTags, s.ExamTag.Render(t))
	}

	meta := s.TopicMeta.Render(fmt.Sprintf("%s • %s • Chapter: %s • %s • %d min",
		subject.Name, topic.SyllabusReference, topic.Chapter, topic.Difficulty, topic.EstimatedTime))

	studied := "Never studied"
	if topic.LastStudied != nil {
		studied = "Last studied " + topic.LastStudied.Local().Format("2 Jan 2006")
	}

	sections := []string{
		s.Title.Render(topic.Title),
		meta,
		lipgloss.JoinHorizontal(lipgloss.Center, statusBadge(topic.Status), "  ", s.TopicMeta.Render(studied)),
		"",
		topic.Description,
	}
	if len(examTags) > 0 {
		sections = append(sections, "", lipgloss.JoinHorizontal(lipgloss.Top, examTags...))
	}

	sections = append(sections,
		"",
		s.ButtonPrimary.Render(topics.ActionLabel(topic.Status)),
		v.renderNotes(topic),
		v.renderTags(topic),
		v.renderRelated(topic),
		v.renderHelp(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TopicView) renderNotes(topic models.Topic) string {
	s := v.styles
	if v.mode == topicEditingNotes {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Heading.Render("Notes"),
			s.InputFocused.Render(v.notes.View()),
		)
	}
	body := topic.Notes
	if body == "" {
		body = s.TitleMuted.Render("No notes yet. Press n to add some.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.Heading.Render("Notes"), body)
}

func (v *TopicView) renderTags(topic models.Topic) string {
	s := v.styles
	tags := renderUserTags(s, topic.UserTags, 0)
	if tags == "" {
		tags = s.TitleMuted.Render("No tags")
	}
	lines := []string{s.Heading.Render("My Tags"), tags}
	if v.mode == topicAddingTag {
		lines = append(lines, s.InputFocused.Render(v.tagInput.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderRelated lists the other topics of the same chapter
func (v *TopicView) renderRelated(topic models.Topic) string {
	s := v.styles
	var lines []string
	for _, t := range v.catalog.SubjectTopics(topic.SubjectID) {
		if t.Chapter != topic.Chapter || t.ID == topic.ID {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.StatusStyle(t.Status).Render(styles.StatusIcon(t.Status)),
			s.TopicMeta.Render(t.SyllabusReference),
			t.Title,
		))
	}
	if len(lines) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{s.Heading.Render("Related Topics")}, lines...)...)
}

func (v *TopicView) renderHelp() string {
	switch v.mode {
	case topicEditingNotes:
		return renderHelpLine(v.styles, "ctrl+s", "save", "esc", "cancel")
	case topicAddingTag:
		return renderHelpLine(v.styles, "↵", "add/remove tag", "esc", "cancel")
	}
	return renderHelpLine(v.styles, "a/↵", "advance", "n", "notes", "t", "tag", "esc", "back", "q", "quit")
}
