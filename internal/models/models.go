package models

import "time"

// Subject represents a course the student is enrolled in
type Subject struct {
	ID              string    `yaml:"id" validate:"required"`
	Name            string    `yaml:"name" validate:"required"`
	SyllabusCode    string    `yaml:"syllabus_code" validate:"required"`
	ExamBoard       ExamBoard `yaml:"exam_board" validate:"required,exam_board"`
	Progress        int       `yaml:"progress" validate:"min=0,max=100"`
	TotalTopics     int       `yaml:"total_topics" validate:"min=0"`
	CompletedTopics int       `yaml:"completed_topics" validate:"min=0,ltefield=TotalTopics"`
}

// Topic represents a single syllabus learning unit
type Topic struct {
	ID                string      `yaml:"id" validate:"required"`
	SubjectID         string      `yaml:"subject_id" validate:"required"`
	Title             string      `yaml:"title" validate:"required"`
	Description       string      `yaml:"description"`
	SyllabusReference string      `yaml:"syllabus_reference" validate:"required"`
	Chapter           string      `yaml:"chapter" validate:"required"`
	Status            TopicStatus `yaml:"status" validate:"required,topic_status"`
	ExamTags          []string    `yaml:"exam_tags"`
	Difficulty        Difficulty  `yaml:"difficulty" validate:"required,difficulty"`
	EstimatedTime     int         `yaml:"estimated_time" validate:"gt=0"` // minutes
	LastStudied       *time.Time  `yaml:"last_studied"`
	Notes             string      `yaml:"notes"`
	UserTags          []string    `yaml:"user_tags"`
}

// Chapter groups topics under a syllabus heading. Topics is a view, not ownership:
// the same topics are reachable from the flat subject list.
type Chapter struct {
	ID       string
	Title    string
	Topics   []Topic
	Progress int
}

// StudyGoal describes a target the student is working towards
type StudyGoal struct {
	Type   GoalType `yaml:"type" validate:"required,goal_type"`
	Target float64  `yaml:"target" validate:"gte=0"`
	Unit   GoalUnit `yaml:"unit" validate:"required,goal_unit"`
}

// User is the student using the application
type User struct {
	ID    string      `yaml:"id" validate:"required"`
	Name  string      `yaml:"name" validate:"required"`
	Goals []StudyGoal `yaml:"goals" validate:"dive"`
}

// Offering is a subject that can be picked during onboarding
type Offering struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	Code string `yaml:"code" validate:"required"`
}

// Goals are the weekly and daily targets chosen during onboarding
type Goals struct {
	TopicsPerWeek   int // 1-10
	StudyTimePerDay int // minutes, 15-120 in steps of 15
}

// StudyGoals expresses the onboarding choices in the same form as a user's goals
func (g Goals) StudyGoals() []StudyGoal {
	return []StudyGoal{
		{Type: GoalWeekly, Target: float64(g.TopicsPerWeek), Unit: UnitTopics},
		{Type: GoalDaily, Target: float64(g.StudyTimePerDay) / 60, Unit: UnitHours},
	}
}

// OnboardingData is the snapshot produced once the onboarding wizard completes
type OnboardingData struct {
	Subjects    []string
	ExamBoard   ExamBoard
	Goals       Goals
	CompletedAt time.Time
}

// StudyEvent records a single lifecycle transition of a topic
type StudyEvent struct {
	ID         string
	TopicID    string
	FromStatus TopicStatus
	ToStatus   TopicStatus
	OccurredAt time.Time
}

// TopicProgress is the persisted, user-owned part of a topic
type TopicProgress struct {
	TopicID     string
	Status      TopicStatus
	LastStudied *time.Time
	Notes       string
	UpdatedAt   time.Time
}
