// Package onboarding implements the linear four-step intake wizard. State is a
// plain value: every operation returns a new State and leaves the receiver
// untouched, so views can hold it without defensive copying.
package onboarding

import (
	"fmt"
	"slices"
	"time"

	"github.com/tgienger/studyhub/internal/models"
)

// Step identifies a page of the wizard.
type Step int

const (
	StepWelcome Step = iota + 1
	StepSubjects
	StepExamBoard
	StepGoals
)

// TotalSteps is the number of pages in the wizard.
const TotalSteps = int(StepGoals)

// Goal slider bounds.
const (
	MinTopicsPerWeek   = 1
	MaxTopicsPerWeek   = 10
	MinStudyTimePerDay = 15
	MaxStudyTimePerDay = 120
	StudyTimeStep      = 15
)

// Defaults used when the wizard starts.
const (
	DefaultTopicsPerWeek   = 3
	DefaultStudyTimePerDay = 30
)

func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Welcome"
	case StepSubjects:
		return "Choose Your Subjects"
	case StepExamBoard:
		return "Select Your Exam Board"
	case StepGoals:
		return "Set Your Study Goals"
	}
	return ""
}

// State is the wizard's full state.
type State struct {
	Step             Step
	SelectedSubjects []string
	ExamBoard        models.ExamBoard // empty until chosen
	Goals            models.Goals
}

// New returns a wizard on the first step with default goals.
func New() State {
	return State{
		Step: StepWelcome,
		Goals: models.Goals{
			TopicsPerWeek:   DefaultTopicsPerWeek,
			StudyTimePerDay: DefaultStudyTimePerDay,
		},
	}
}

func (s State) clone() State {
	s.SelectedSubjects = slices.Clone(s.SelectedSubjects)
	return s
}

// CanAdvance reports whether the current step's requirements are met.
func (s State) CanAdvance() bool {
	switch s.Step {
	case StepWelcome, StepGoals:
		return true
	case StepSubjects:
		return len(s.SelectedSubjects) > 0
	case StepExamBoard:
		return s.ExamBoard != ""
	}
	return false
}

// Next moves forward one step. It is a no-op on the last step or when the
// current step is incomplete.
func (s State) Next() State {
	s = s.clone()
	if s.Step < StepGoals && s.CanAdvance() {
		s.Step++
	}
	return s
}

// Back moves back one step. It is a no-op on the first step.
func (s State) Back() State {
	s = s.clone()
	if s.Step > StepWelcome {
		s.Step--
	}
	return s
}

// IsSelected reports whether the subject is currently selected.
func (s State) IsSelected(id string) bool {
	return slices.Contains(s.SelectedSubjects, id)
}

// ToggleSubject adds the subject if absent and removes it if present.
func (s State) ToggleSubject(id string) State {
	s = s.clone()
	if i := slices.Index(s.SelectedSubjects, id); i >= 0 {
		s.SelectedSubjects = slices.Delete(s.SelectedSubjects, i, i+1)
	} else {
		s.SelectedSubjects = append(s.SelectedSubjects, id)
	}
	return s
}

// SelectExamBoard records the chosen board. Unknown boards are ignored.
func (s State) SelectExamBoard(board models.ExamBoard) State {
	s = s.clone()
	if board.IsValid() {
		s.ExamBoard = board
	}
	return s
}

// SetTopicsPerWeek sets the weekly topic goal, clamped to the slider range.
func (s State) SetTopicsPerWeek(n int) State {
	s = s.clone()
	s.Goals.TopicsPerWeek = max(MinTopicsPerWeek, min(n, MaxTopicsPerWeek))
	return s
}

// SetStudyTimePerDay sets the daily minutes goal, clamped to the slider range
// and snapped down to a multiple of the slider step.
func (s State) SetStudyTimePerDay(minutes int) State {
	s = s.clone()
	minutes = max(MinStudyTimePerDay, min(minutes, MaxStudyTimePerDay))
	s.Goals.StudyTimePerDay = minutes - minutes%StudyTimeStep
	return s
}

// Percent is how far through the wizard the current step is.
func (s State) Percent() int {
	return int(s.Step) * 100 / TotalSteps
}

// Complete produces the onboarding snapshot. It fails with
// models.ErrInvalidOperation unless the wizard is on its last step with a
// subject and an exam board selected.
func (s State) Complete(now time.Time) (models.OnboardingData, error) {
	if s.Step != StepGoals {
		return models.OnboardingData{}, fmt.Errorf("complete onboarding at step %d of %d: %w", s.Step, TotalSteps, models.ErrInvalidOperation)
	}
	if len(s.SelectedSubjects) == 0 || !s.ExamBoard.IsValid() {
		return models.OnboardingData{}, fmt.Errorf("complete onboarding without subjects or exam board: %w", models.ErrInvalidOperation)
	}
	return models.OnboardingData{
		Subjects:    slices.Clone(s.SelectedSubjects),
		ExamBoard:   s.ExamBoard,
		Goals:       s.Goals,
		CompletedAt: now,
	}, nil
}
