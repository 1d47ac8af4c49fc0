package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sample() models.Question {
	rate := 0.8
	avg := 14.25
	return models.Question{
		Name:            "Two Sum",
		Link:            "https://leetcode.com/problems/two-sum",
		Category:        "Arrays",
		CompanyTags:     []string{"Google", "Amazon"},
		LastReviewed:    "2026-06-10",
		NextReview:      "2026-06-14",
		Interval:        4,
		Stability:       2.567467,
		Difficulty:      5.0,
		RetentionTarget: 0.85,
		RetentionRate:   &rate,
		AverageTime:     &avg,
		Explanation:     "hash map of complements",
		Ratings: []models.RatingRecord{
			{Date: "2026-06-01", Rating: 3},
			{Date: "2026-06-10", Rating: 4},
		},
		SolveTimes: []models.SolveTimeRecord{
			{Date: "2026-06-01", Minutes: 18.5},
			{Date: "2026-06-10", Minutes: 10.0},
		},
	}
}

func TestAddGetRoundTrip(t *testing.T) {
	s := openStore(t)
	want := sample()
	require.NoError(t, s.AddQuestion(want))

	got, err := s.GetQuestion("Two Sum")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestAddRejectsDuplicate(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AddQuestion(sample()))

	err := s.AddQuestion(sample())
	assert.ErrorIs(t, err, ErrDuplicateQuestion)

	// Collection unchanged.
	qs, err := s.ListQuestions()
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestGetNotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.GetQuestion("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInsertionOrder(t *testing.T) {
	s := openStore(t)
	for _, name := range []string{"zebra", "apple", "mango"} {
		q := sample()
		q.Name = name
		require.NoError(t, s.AddQuestion(q))
	}

	qs, err := s.ListQuestions()
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "zebra", qs[0].Name)
	assert.Equal(t, "apple", qs[1].Name)
	assert.Equal(t, "mango", qs[2].Name)
}

func TestSaveReviewAppendsHistory(t *testing.T) {
	s := openStore(t)
	q := sample()
	require.NoError(t, s.AddQuestion(q))

	// Simulate a recorded review: fields rescheduled, one new entry in
	// each history.
	rate := 0.866
	avg := 12.0
	q.LastReviewed = "2026-06-14"
	q.NextReview = "2026-06-20"
	q.Interval = 6
	q.Stability = 3.1
	q.RetentionRate = &rate
	q.AverageTime = &avg
	q.Explanation = "clean pass"
	q.Ratings = append(q.Ratings, models.RatingRecord{Date: "2026-06-14", Rating: 5})
	q.SolveTimes = append(q.SolveTimes, models.SolveTimeRecord{Date: "2026-06-14", Minutes: 7})

	require.NoError(t, s.SaveReview(q))

	got, err := s.GetQuestion("Two Sum")
	require.NoError(t, err)
	assert.Equal(t, q, *got)
	assert.Len(t, got.Ratings, 3)

	// Earlier entries untouched: the history only grows.
	assert.Equal(t, models.RatingRecord{Date: "2026-06-01", Rating: 3}, got.Ratings[0])
}

func TestSaveReviewUnknownQuestion(t *testing.T) {
	s := openStore(t)
	err := s.SaveReview(sample())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDetailsKeepsScheduling(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AddQuestion(sample()))

	q := sample()
	q.Link = "https://neetcode.io/problems/two-sum"
	q.Category = "Hashing"
	q.RetentionTarget = 0.9
	q.CompanyTags = []string{"Meta"}
	require.NoError(t, s.UpdateDetails(q))

	got, err := s.GetQuestion("Two Sum")
	require.NoError(t, err)
	assert.Equal(t, models.Category("Hashing"), got.Category)
	assert.Equal(t, []string{"Meta"}, got.CompanyTags)
	assert.Equal(t, 0.9, got.RetentionTarget)
	// Scheduling state and histories untouched.
	assert.Equal(t, sample().Stability, got.Stability)
	assert.Len(t, got.Ratings, 2)
}

func TestDeleteQuestion(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AddQuestion(sample()))
	require.NoError(t, s.DeleteQuestion("Two Sum"))

	_, err := s.GetQuestion("Two Sum")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteQuestion("Two Sum"), ErrNotFound)
}

func TestReplaceAll(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.AddQuestion(sample()))

	repl := sample()
	repl.Name = "Valid Anagram"
	repl.Category = "Hashing"
	require.NoError(t, s.ReplaceAll([]models.Question{repl}))

	qs, err := s.ListQuestions()
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, repl, qs[0])
}

func TestStats(t *testing.T) {
	s := openStore(t)
	a := sample() // 2 ratings, retention 0.8
	require.NoError(t, s.AddQuestion(a))

	b := sample()
	b.Name = "Course Schedule"
	b.Category = "Graphs"
	rate := 0.6
	b.RetentionRate = &rate
	b.Ratings = []models.RatingRecord{{Date: "2026-05-01", Rating: 2}}
	require.NoError(t, s.AddQuestion(b))

	stats, err := s.Stats("2026-06-15")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalQuestions)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.Equal(t, 1, stats.ReviewsLast7Days) // only the 06-10 rating
	assert.InDelta(t, 3.0, stats.AverageRating, 1e-9)
	assert.InDelta(t, 0.7, stats.AverageRetention, 1e-9)
	assert.Equal(t, 1, stats.CountByCategory["Arrays"])
	assert.Equal(t, 1, stats.CountByCategory["Graphs"])
}
