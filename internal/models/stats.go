package models

// Stats summarizes collection-wide review progress.
type Stats struct {
	TotalQuestions   int
	TotalReviews     int
	ReviewsLast7Days int
	AverageRating    float64
	AverageRetention float64 // mean observed retention over rated questions
	CountByCategory  map[Category]int
}
