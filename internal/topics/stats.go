package topics

import (
	"math"
	"time"

	"github.com/tgienger/studyhub/internal/models"
)

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StudyStreak counts consecutive calendar days with at least one study event,
// ending today. A streak that ended yesterday still counts so it does not
// reset before the student has had a chance to study today.
func StudyStreak(events []models.StudyEvent, now time.Time) int {
	days := make(map[time.Time]bool, len(events))
	for _, e := range events {
		days[dayOf(e.OccurredAt.In(now.Location()))] = true
	}

	day := dayOf(now)
	if !days[day] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeeklyStudyMinutes estimates study time over the last seven days as the sum
// of the estimated time of every distinct topic studied in that window.
func WeeklyStudyMinutes(events []models.StudyEvent, topics []models.Topic, now time.Time) int {
	since := now.AddDate(0, 0, -7)
	minutes := make(map[string]int, len(topics))
	for _, t := range topics {
		minutes[t.ID] = t.EstimatedTime
	}

	seen := make(map[string]bool)
	total := 0
	for _, e := range events {
		if e.OccurredAt.Before(since) || e.OccurredAt.After(now) || seen[e.TopicID] {
			continue
		}
		seen[e.TopicID] = true
		total += minutes[e.TopicID]
	}
	return total
}

// DailyGoal is today's progress against the student's daily targets
type DailyGoal struct {
	TopicsDone    int
	TopicsTarget  int
	Minutes       int
	MinutesTarget int // 0 when the student set no time goal
}

// Remaining is how many more topics reach the topic target
func (g DailyGoal) Remaining() int { return max(g.TopicsTarget-g.TopicsDone, 0) }

// Percent is topic progress towards today's target, capped at 100
func (g DailyGoal) Percent() int {
	return percent(min(g.TopicsDone, g.TopicsTarget), g.TopicsTarget)
}

// DailyTopicTarget turns goals into topics per day. A daily topic goal is used
// as is; weekly and monthly ones are spread evenly and rounded up. The target
// is never below one topic.
func DailyTopicTarget(goals []models.StudyGoal) int {
	target := 0
	for _, g := range goals {
		if g.Unit != models.UnitTopics || g.Target <= 0 {
			continue
		}
		switch g.Type {
		case models.GoalDaily:
			return max(int(math.Ceil(g.Target)), 1)
		case models.GoalWeekly:
			target = max(target, int(math.Ceil(g.Target/7)))
		case models.GoalMonthly:
			target = max(target, int(math.Ceil(g.Target/30)))
		}
	}
	return max(target, 1)
}

// DailyMinutesTarget turns hour goals into study minutes per day, or 0 when
// there is none.
func DailyMinutesTarget(goals []models.StudyGoal) int {
	for _, g := range goals {
		if g.Unit != models.UnitHours || g.Target <= 0 {
			continue
		}
		switch g.Type {
		case models.GoalDaily:
			return int(math.Round(g.Target * 60))
		case models.GoalWeekly:
			return int(math.Ceil(g.Target * 60 / 7))
		case models.GoalMonthly:
			return int(math.Ceil(g.Target * 60 / 30))
		}
	}
	return 0
}

// TodayGoal measures today's study against goals. A topic counts as done
// today when it was studied today and its current status is completed; minutes
// are the estimated time of every distinct topic studied today.
func TodayGoal(events []models.StudyEvent, topics []models.Topic, goals []models.StudyGoal, now time.Time) DailyGoal {
	today := dayOf(now)
	studied := make(map[string]bool)
	for _, e := range events {
		if e.OccurredAt.After(now) {
			continue
		}
		if dayOf(e.OccurredAt.In(now.Location())).Equal(today) {
			studied[e.TopicID] = true
		}
	}

	var touched []models.Topic
	minutes := 0
	for _, t := range topics {
		if studied[t.ID] {
			touched = append(touched, t)
			minutes += t.EstimatedTime
		}
	}

	return DailyGoal{
		TopicsDone:    CountByStatus(touched)[models.StatusCompleted],
		TopicsTarget:  DailyTopicTarget(goals),
		Minutes:       minutes,
		MinutesTarget: DailyMinutesTarget(goals),
	}
}
