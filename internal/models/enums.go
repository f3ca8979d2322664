package models

// TopicStatus is the study state of a topic.
type TopicStatus string

const (
	StatusNotStarted TopicStatus = "not-started"
	StatusInProgress TopicStatus = "in-progress"
	StatusCompleted  TopicStatus = "completed"
)

func (s TopicStatus) String() string { return string(s) }

func (s TopicStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable form used in the UI.
func (s TopicStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ExamBoard is the body that sets and marks the examination.
type ExamBoard string

const (
	ExamBoardCambridge ExamBoard = "Cambridge"
	ExamBoardEdexcel   ExamBoard = "Edexcel"
	ExamBoardAQA       ExamBoard = "AQA"
	ExamBoardOCR       ExamBoard = "OCR"
)

// ExamBoards lists the supported boards in display order.
var ExamBoards = []ExamBoard{ExamBoardCambridge, ExamBoardEdexcel, ExamBoardAQA, ExamBoardOCR}

func (b ExamBoard) String() string { return string(b) }

func (b ExamBoard) IsValid() bool {
	switch b {
	case ExamBoardCambridge, ExamBoardEdexcel, ExamBoardAQA, ExamBoardOCR:
		return true
	}
	return false
}

// Difficulty is the syllabus tier a topic belongs to.
type Difficulty string

const (
	DifficultyCore     Difficulty = "Core"
	DifficultyExtended Difficulty = "Extended"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	return d == DifficultyCore || d == DifficultyExtended
}

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

func (g GoalType) IsValid() bool {
	switch g {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return true
	}
	return false
}

type GoalUnit string

const (
	UnitTopics GoalUnit = "topics"
	UnitHours  GoalUnit = "hours"
)

func (u GoalUnit) IsValid() bool {
	return u == UnitTopics || u == UnitHours
}
