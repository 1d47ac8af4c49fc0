// Package session decides which questions are due, in what order, and
// applies the memory-model update when a review is recorded.
package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Fordzamo/Spaced-Repitition/internal/config"
	"github.com/Fordzamo/Spaced-Repitition/internal/dates"
	"github.com/Fordzamo/Spaced-Repitition/internal/fsrs"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var (
	// ErrInvalidRating means the rating was outside 1-5. The caller should
	// re-prompt; the memory model never sees an invalid rating.
	ErrInvalidRating = errors.New("session: rating must be an integer between 1 and 5")

	// ErrAlreadyReviewed enforces the one-shot daily transition: a second
	// review of the same question on the same day is refused.
	ErrAlreadyReviewed = errors.New("session: question already reviewed today")
)

// maxEffectiveRetention caps the prep-scaled retention target. A factor
// above 1 can push target*factor past 1.0, outside the domain of the
// interval inversion.
const maxEffectiveRetention = 0.98

const minEffectiveRetention = 0.01

// Manager runs review sessions over a question collection.
type Manager struct {
	model    fsrs.Model
	settings config.Settings
}

// NewManager builds a Manager with the given model weights and settings.
func NewManager(model fsrs.Model, settings config.Settings) *Manager {
	return &Manager{model: model, settings: settings}
}

// Outcome reports what one recorded review changed, for display.
type Outcome struct {
	Question      models.Question // the fully updated question
	OldStability  float64
	NewStability  float64
	OldDifficulty float64
	NewDifficulty float64
	NextReview    dates.Day
}

// NewQuestion creates a question with the fixed initial memory state:
// stability w[0], difficulty 5.0, interval 1 day, first review tomorrow.
// A zero retention falls back to the configured default.
func (m *Manager) NewQuestion(name, link string, category models.Category, companyTags []string, retention float64, today dates.Day) models.Question {
	if retention == 0 {
		retention = m.settings.DefaultRetention
	}
	return models.Question{
		Name:            name,
		Link:            link,
		Category:        category,
		CompanyTags:     companyTags,
		LastReviewed:    today,
		NextReview:      today.Add(1),
		Interval:        1,
		Stability:       m.model.InitialStability(),
		Difficulty:      5.0,
		RetentionTarget: retention,
	}
}

// Due selects the questions to show for today: everything whose next review
// has arrived, plus anything already reviewed today (so it can be listed as
// done). An empty company restricts nothing; otherwise only questions
// carrying that tag are kept. The result is ordered by category priority,
// ties keeping input order, and is recomputed fresh on every call.
func (m *Manager) Due(questions []models.Question, today dates.Day, company string) []models.Question {
	var due []models.Question
	for _, q := range questions {
		if company != "" && !q.HasCompanyTag(company) {
			continue
		}
		if !q.NextReview.After(today) || q.LastReviewed == today {
			due = append(due, q)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Category.Priority() < due[j].Category.Priority()
	})
	return due
}

// AlreadyReviewed reports whether q completed its review for today.
func (m *Manager) AlreadyReviewed(q models.Question, today dates.Day) bool {
	return q.LastReviewed == today
}

// RecordReview applies one completed review: it appends to the histories,
// recomputes the observed retention rate and average solving time, runs the
// memory model, and reschedules. The input question is never mutated; on
// error nothing is recorded at all.
func (m *Manager) RecordReview(q models.Question, rating int, minutes float64, explanation string, today dates.Day) (Outcome, error) {
	if !models.ValidRating(rating) {
		return Outcome{}, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if m.AlreadyReviewed(q, today) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrAlreadyReviewed, q.Name)
	}

	next := q.Clone()

	next.Ratings = append(next.Ratings, models.RatingRecord{Date: today, Rating: rating})
	rate := retentionRate(next.Ratings)
	next.RetentionRate = &rate

	next.SolveTimes = append(next.SolveTimes, models.SolveTimeRecord{Date: today, Minutes: minutes})
	avg := averageMinutes(next.SolveTimes)
	next.AverageTime = &avg

	// The model runs on the pre-update state: the elapsed time is the
	// interval that was scheduled, and the retention target is scaled for
	// company prep before this review's update takes effect.
	retention := m.EffectiveRetention(q)
	retrievability := m.model.Retrievability(float64(q.Interval), q.Stability)
	newStability := m.model.NextStability(q.Difficulty, q.Stability, retrievability, rating)
	newDifficulty := m.model.NextDifficulty(q.Difficulty, rating)
	newInterval := m.model.NextInterval(newStability, retention, models.MaxInterval)

	// Total failure resets the cadence regardless of the model's output.
	if rating == 1 {
		newInterval = 1
		newStability = fsrs.FailStability(newStability)
	}

	next.Stability = newStability
	next.Difficulty = newDifficulty
	next.Interval = newInterval
	next.NextReview = today.Add(newInterval)
	next.LastReviewed = today
	next.Explanation = explanation

	return Outcome{
		Question:      next,
		OldStability:  q.Stability,
		NewStability:  newStability,
		OldDifficulty: q.Difficulty,
		NewDifficulty: newDifficulty,
		NextReview:    next.NextReview,
	}, nil
}

// EffectiveRetention returns the retention target used for scheduling q.
// With company prep active, questions not tagged with the prep target get
// their target scaled by the configured factor, loosening their cadence.
// The result is clamped so the interval inversion stays well-defined.
func (m *Manager) EffectiveRetention(q models.Question) float64 {
	retention := q.RetentionTarget
	if m.settings.CompanyPrepMode && !q.HasCompanyTag(m.settings.CompanyPrepTarget) {
		retention *= m.settings.CompanyPrepRetentionFactor
	}
	if retention > maxEffectiveRetention {
		retention = maxEffectiveRetention
	}
	if retention < minEffectiveRetention {
		retention = minEffectiveRetention
	}
	return retention
}

// retentionRate is the running success estimate over the whole rating
// history: ratings 4-5 count as full credit, lower ratings as partial
// credit proportional to their value.
func retentionRate(ratings []models.RatingRecord) float64 {
	total := 0.0
	for _, r := range ratings {
		if r.Rating >= 4 {
			total += 5
		} else {
			total += float64(r.Rating)
		}
	}
	return total / (5 * float64(len(ratings)))
}

func averageMinutes(times []models.SolveTimeRecord) float64 {
	total := 0.0
	for _, t := range times {
		total += t.Minutes
	}
	return total / float64(len(times))
}
