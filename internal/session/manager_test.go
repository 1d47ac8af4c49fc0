package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fordzamo/Spaced-Repitition/internal/config"
	"github.com/Fordzamo/Spaced-Repitition/internal/dates"
	"github.com/Fordzamo/Spaced-Repitition/internal/fsrs"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

const today = dates.Day("2026-06-15")

func newManager(s config.Settings) *Manager {
	if s.DefaultRetention == 0 {
		s.DefaultRetention = 0.85
	}
	if s.CompanyPrepRetentionFactor == 0 {
		s.CompanyPrepRetentionFactor = 1.0
	}
	return NewManager(fsrs.New(fsrs.DefaultWeights), s)
}

func TestNewQuestionDefaults(t *testing.T) {
	m := newManager(config.Settings{})
	q := m.NewQuestion("Two Sum", "https://leetcode.com/problems/two-sum", "Arrays", nil, 0, today)

	assert.Equal(t, 1, q.Interval)
	assert.Equal(t, fsrs.DefaultWeights[0], q.Stability) // 2.5
	assert.Equal(t, 5.0, q.Difficulty)
	assert.Equal(t, 0.85, q.RetentionTarget) // config default
	assert.Equal(t, today.Add(1), q.NextReview)
	assert.Equal(t, today, q.LastReviewed)
	assert.Nil(t, q.RetentionRate)
	assert.Nil(t, q.AverageTime)
	assert.Empty(t, q.Ratings)
}

func TestNewQuestionExplicitRetention(t *testing.T) {
	m := newManager(config.Settings{})
	q := m.NewQuestion("LRU Cache", "", "Linked List", nil, 0.92, today)
	assert.Equal(t, 0.92, q.RetentionTarget)
}

// --- Due ---

func TestDueSelection(t *testing.T) {
	m := newManager(config.Settings{})
	qs := []models.Question{
		{Name: "overdue", Category: "Trees", NextReview: "2026-06-10", LastReviewed: "2026-06-01"},
		{Name: "due-today", Category: "Arrays", NextReview: today, LastReviewed: "2026-06-01"},
		{Name: "future", Category: "Arrays", NextReview: "2026-06-20", LastReviewed: "2026-06-01"},
		{Name: "done-today", Category: "Stack", NextReview: "2026-07-01", LastReviewed: today},
	}

	due := m.Due(qs, today, "")
	names := make([]string, len(due))
	for i, q := range due {
		names[i] = q.Name
	}

	// A future question is never listed unless it was reviewed today.
	assert.NotContains(t, names, "future")
	// Already-reviewed-today items re-surface so they show as completed.
	assert.Contains(t, names, "done-today")
	// Ordered by category priority: Arrays < Stack < Trees.
	assert.Equal(t, []string{"due-today", "done-today", "overdue"}, names)
}

func TestDueTieBreakKeepsInsertionOrder(t *testing.T) {
	m := newManager(config.Settings{})
	qs := []models.Question{
		{Name: "first", Category: "Arrays", NextReview: today},
		{Name: "second", Category: "Arrays", NextReview: today},
		{Name: "third", Category: "Arrays", NextReview: today},
	}
	due := m.Due(qs, today, "")
	require.Len(t, due, 3)
	assert.Equal(t, "first", due[0].Name)
	assert.Equal(t, "second", due[1].Name)
	assert.Equal(t, "third", due[2].Name)
}

func TestDueCompanyFilter(t *testing.T) {
	m := newManager(config.Settings{})
	qs := []models.Question{
		{Name: "g", Category: "Arrays", NextReview: today, CompanyTags: []string{"Google"}},
		{Name: "m", Category: "Arrays", NextReview: today, CompanyTags: []string{"Meta"}},
		{Name: "none", Category: "Arrays", NextReview: today},
	}

	due := m.Due(qs, today, "Google")
	require.Len(t, due, 1)
	assert.Equal(t, "g", due[0].Name)
}

// --- RecordReview ---

func freshQuestion(m *Manager) models.Question {
	q := m.NewQuestion("Two Sum", "", "Arrays", nil, 0, today.Add(-1))
	return q // created yesterday, due today
}

func TestRecordReviewAverageRating(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)

	out, err := m.RecordReview(q, 3, 12.5, "hash map of complements", today)
	require.NoError(t, err)
	updated := out.Question

	// Histories grew by exactly one entry each.
	require.Len(t, updated.Ratings, 1)
	assert.Equal(t, models.RatingRecord{Date: today, Rating: 3}, updated.Ratings[0])
	require.Len(t, updated.SolveTimes, 1)
	assert.Equal(t, 12.5, updated.SolveTimes[0].Minutes)

	// Rating 3 is partial credit: 3 / 5.
	require.NotNil(t, updated.RetentionRate)
	assert.InDelta(t, 0.6, *updated.RetentionRate, 1e-9)
	require.NotNil(t, updated.AverageTime)
	assert.InDelta(t, 12.5, *updated.AverageTime, 1e-9)

	// Deterministic scenario: S=2.5, D=5, interval 1, rated 3 next day.
	assert.InDelta(t, 2.567467, updated.Stability, 1e-4)
	assert.InDelta(t, 5.0, updated.Difficulty, 1e-9)
	assert.Equal(t, 4, updated.Interval)
	assert.Equal(t, today.Add(4), updated.NextReview)
	assert.Equal(t, today, updated.LastReviewed)
	assert.Equal(t, "hash map of complements", updated.Explanation)

	// Outcome mirrors the transition for display.
	assert.Equal(t, 2.5, out.OldStability)
	assert.Equal(t, updated.Stability, out.NewStability)
	assert.Equal(t, updated.NextReview, out.NextReview)
}

func TestRecordReviewDoesNotMutateInput(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)
	q.Ratings = []models.RatingRecord{{Date: "2026-06-10", Rating: 4}}

	_, err := m.RecordReview(q, 2, 5, "", today)
	require.NoError(t, err)

	assert.Len(t, q.Ratings, 1)
	assert.Equal(t, 2.5, q.Stability)
	assert.Equal(t, dates.Day("2026-06-14"), q.LastReviewed)
}

func TestRecordReviewTotalFailure(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)

	out, err := m.RecordReview(q, 1, 30, "blanked completely", today)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Question.Interval)
	assert.Equal(t, today.Add(1), out.Question.NextReview)

	// Stability took the 0.6 penalty on top of the model output, floored.
	r := fsrs.New(fsrs.DefaultWeights).Retrievability(1, 2.5)
	computed := fsrs.New(fsrs.DefaultWeights).NextStability(5.0, 2.5, r, 1)
	assert.InDelta(t, fsrs.FailStability(computed), out.Question.Stability, 1e-9)
	assert.GreaterOrEqual(t, out.Question.Stability, fsrs.MinStability)
}

func TestRecordReviewRetentionRateFullCredit(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)
	q.Ratings = []models.RatingRecord{
		{Date: "2026-06-01", Rating: 5},
		{Date: "2026-06-07", Rating: 2},
	}

	out, err := m.RecordReview(q, 4, 8, "", today)
	require.NoError(t, err)

	// (5 + 2 + 5) / (5 * 3): 4s and 5s are full credit, a 2 is partial.
	require.NotNil(t, out.Question.RetentionRate)
	assert.InDelta(t, 12.0/15.0, *out.Question.RetentionRate, 1e-9)
}

func TestRecordReviewInvalidRating(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)

	for _, r := range []int{0, 6, -3} {
		_, err := m.RecordReview(q, r, 5, "", today)
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", r)
	}
}

func TestRecordReviewOncePerDay(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)

	out, err := m.RecordReview(q, 4, 10, "", today)
	require.NoError(t, err)

	_, err = m.RecordReview(out.Question, 5, 3, "", today)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// The next day it is reviewable again.
	if !out.Question.NextReview.After(today.Add(1)) {
		_, err = m.RecordReview(out.Question, 5, 3, "", today.Add(1))
		assert.NoError(t, err)
	}
}

func TestRecordReviewIntervalNeverExceedsCap(t *testing.T) {
	m := newManager(config.Settings{})
	q := freshQuestion(m)
	q.Stability = 5000 // far past the cap
	q.Interval = 365

	out, err := m.RecordReview(q, 5, 2, "", today)
	require.NoError(t, err)
	assert.Equal(t, models.MaxInterval, out.Question.Interval)
}

// --- Company-prep retention scaling ---

func TestEffectiveRetentionPrepScaling(t *testing.T) {
	m := newManager(config.Settings{
		CompanyPrepMode:            true,
		CompanyPrepTarget:          "Google",
		CompanyPrepRetentionFactor: 0.9,
	})

	tagged := models.Question{RetentionTarget: 0.85, CompanyTags: []string{"Google"}}
	other := models.Question{RetentionTarget: 0.85, CompanyTags: []string{"Meta"}}

	// Target-company questions keep their own target.
	assert.InDelta(t, 0.85, m.EffectiveRetention(tagged), 1e-9)
	// Everything else is loosened by the factor.
	assert.InDelta(t, 0.85*0.9, m.EffectiveRetention(other), 1e-9)
}

func TestEffectiveRetentionClampedAboveOne(t *testing.T) {
	// factor 1.2 on target 0.85 would be 1.02, outside the model's domain.
	m := newManager(config.Settings{
		CompanyPrepMode:            true,
		CompanyPrepTarget:          "Google",
		CompanyPrepRetentionFactor: 1.2,
	})
	q := models.Question{RetentionTarget: 0.85}
	assert.Equal(t, 0.98, m.EffectiveRetention(q))
}

func TestEffectiveRetentionOffMode(t *testing.T) {
	m := newManager(config.Settings{CompanyPrepRetentionFactor: 1.2})
	q := models.Question{RetentionTarget: 0.85}
	assert.InDelta(t, 0.85, m.EffectiveRetention(q), 1e-9)
}

func TestPrepModeShortensTargetIntervalRelatively(t *testing.T) {
	// With a loosening factor < 1 on off-target questions, a tagged
	// question must be rescheduled at least as soon as an untagged one.
	m := newManager(config.Settings{
		CompanyPrepMode:            true,
		CompanyPrepTarget:          "Google",
		CompanyPrepRetentionFactor: 0.9,
	})

	base := freshQuestion(m)
	tagged := base.Clone()
	tagged.CompanyTags = []string{"Google"}
	other := base.Clone()
	other.CompanyTags = []string{"Meta"}

	outTagged, err := m.RecordReview(tagged, 4, 5, "", today)
	require.NoError(t, err)
	outOther, err := m.RecordReview(other, 4, 5, "", today)
	require.NoError(t, err)

	assert.LessOrEqual(t, outTagged.Question.Interval, outOther.Question.Interval)
}
