// Package db persists the question collection in a local SQLite database.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Fordzamo/Spaced-Repitition/internal/config"
	"github.com/Fordzamo/Spaced-Repitition/internal/dates"
	"github.com/Fordzamo/Spaced-Repitition/internal/models"
)

var (
	// ErrDuplicateQuestion means the identifier is already tracked.
	// Identifiers are stable keys and are never silently overwritten.
	ErrDuplicateQuestion = errors.New("db: question already exists")

	// ErrNotFound means no question with that name is tracked.
	ErrNotFound = errors.New("db: question not found")
)

type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database in the default data directory.
func NewStore() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Open opens (or creates) the database inside dir.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, "spaced.db")
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			link TEXT,
			category TEXT NOT NULL,
			last_reviewed TEXT NOT NULL,
			next_review TEXT NOT NULL,
			interval INTEGER NOT NULL DEFAULT 1,
			stability REAL NOT NULL,
			difficulty REAL NOT NULL,
			retention_target REAL NOT NULL,
			retention_rate REAL,
			average_time REAL,
			explanation TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS question_tags (
			question_id INTEGER,
			tag_id INTEGER,
			PRIMARY KEY (question_id, tag_id),
			FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			rating INTEGER NOT NULL,
			FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS solve_times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			minutes REAL NOT NULL,
			FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
		);`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// AddQuestion inserts a new question with its tags and any carried history.
func (s *Store) AddQuestion(q models.Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM questions WHERE name = ?", q.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateQuestion, q.Name)
	}

	if err := insertQuestion(tx, q); err != nil {
		return err
	}
	return tx.Commit()
}

func insertQuestion(tx *sql.Tx, q models.Question) error {
	res, err := tx.Exec(`
		INSERT INTO questions
			(name, link, category, last_reviewed, next_review, interval,
			 stability, difficulty, retention_target, retention_rate,
			 average_time, explanation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Name, q.Link, string(q.Category), string(q.LastReviewed), string(q.NextReview),
		q.Interval, q.Stability, q.Difficulty, q.RetentionTarget,
		nullable(q.RetentionRate), nullable(q.AverageTime), q.Explanation,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, tag := range q.CompanyTags {
		if err := linkTag(tx, id, tag); err != nil {
			return err
		}
	}
	for _, r := range q.Ratings {
		if _, err := tx.Exec(
			"INSERT INTO ratings (question_id, date, rating) VALUES (?, ?, ?)",
			id, string(r.Date), r.Rating); err != nil {
			return err
		}
	}
	for _, st := range q.SolveTimes {
		if _, err := tx.Exec(
			"INSERT INTO solve_times (question_id, date, minutes) VALUES (?, ?, ?)",
			id, string(st.Date), st.Minutes); err != nil {
			return err
		}
	}
	return nil
}

func linkTag(tx *sql.Tx, questionID int64, tagName string) error {
	tagName = strings.TrimSpace(tagName)
	if tagName == "" {
		return nil
	}
	if _, err := tx.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tagName); err != nil {
		return err
	}
	var tagID int64
	if err := tx.QueryRow("SELECT id FROM tags WHERE name = ?", tagName).Scan(&tagID); err != nil {
		return err
	}
	_, err := tx.Exec("INSERT OR IGNORE INTO question_tags (question_id, tag_id) VALUES (?, ?)", questionID, tagID)
	return err
}

// GetQuestion loads one question by name, histories included.
func (s *Store) GetQuestion(name string) (*models.Question, error) {
	row := s.db.QueryRow(questionSelect+" WHERE name = ?", name)
	id, q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadDetails(id, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns every tracked question in insertion order,
// histories included.
func (s *Store) ListQuestions() ([]models.Question, error) {
	rows, err := s.db.Query(questionSelect + " ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	var ids []int64
	for rows.Next() {
		id, q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.loadDetails(ids[i], &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

const questionSelect = `
	SELECT id, name, link, category, last_reviewed, next_review, interval,
	       stability, difficulty, retention_target, retention_rate,
	       average_time, explanation
	FROM questions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (int64, models.Question, error) {
	var q models.Question
	var id int64
	var link sql.NullString
	var category, lastReviewed, nextReview string
	var retentionRate, averageTime sql.NullFloat64

	err := row.Scan(&id, &q.Name, &link, &category, &lastReviewed, &nextReview,
		&q.Interval, &q.Stability, &q.Difficulty, &q.RetentionTarget,
		&retentionRate, &averageTime, &q.Explanation)
	if err != nil {
		return 0, q, err
	}
	q.Link = link.String
	q.Category = models.Category(category)
	q.LastReviewed = dates.Day(lastReviewed)
	q.NextReview = dates.Day(nextReview)
	if retentionRate.Valid {
		v := retentionRate.Float64
		q.RetentionRate = &v
	}
	if averageTime.Valid {
		v := averageTime.Float64
		q.AverageTime = &v
	}
	return id, q, nil
}

func (s *Store) loadDetails(id int64, q *models.Question) error {
	tagRows, err := s.db.Query(`
		SELECT t.name FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		WHERE qt.question_id = ? ORDER BY t.id`, id)
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var name string
		if err := tagRows.Scan(&name); err != nil {
			return err
		}
		q.CompanyTags = append(q.CompanyTags, name)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	ratingRows, err := s.db.Query(
		"SELECT date, rating FROM ratings WHERE question_id = ? ORDER BY id", id)
	if err != nil {
		return err
	}
	defer ratingRows.Close()
	for ratingRows.Next() {
		var r models.RatingRecord
		var date string
		if err := ratingRows.Scan(&date, &r.Rating); err != nil {
			return err
		}
		r.Date = dates.Day(date)
		q.Ratings = append(q.Ratings, r)
	}
	if err := ratingRows.Err(); err != nil {
		return err
	}

	timeRows, err := s.db.Query(
		"SELECT date, minutes FROM solve_times WHERE question_id = ? ORDER BY id", id)
	if err != nil {
		return err
	}
	defer timeRows.Close()
	for timeRows.Next() {
		var st models.SolveTimeRecord
		var date string
		if err := timeRows.Scan(&date, &st.Minutes); err != nil {
			return err
		}
		st.Date = dates.Day(date)
		q.SolveTimes = append(q.SolveTimes, st)
	}
	return timeRows.Err()
}

// SaveReview commits one completed review in a single transaction: the
// rescheduled fields plus the newest rating and solve-time rows. Either the
// whole review lands or none of it does.
func (s *Store) SaveReview(q models.Question) error {
	if len(q.Ratings) == 0 || len(q.SolveTimes) == 0 {
		return fmt.Errorf("db: question %q has no review to save", q.Name)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRow("SELECT id FROM questions WHERE name = ?", q.Name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrNotFound, q.Name)
		}
		return err
	}

	_, err = tx.Exec(`
		UPDATE questions
		SET last_reviewed=?, next_review=?, interval=?, stability=?,
		    difficulty=?, retention_rate=?, average_time=?, explanation=?
		WHERE id=?`,
		string(q.LastReviewed), string(q.NextReview), q.Interval, q.Stability,
		q.Difficulty, nullable(q.RetentionRate), nullable(q.AverageTime),
		q.Explanation, id,
	)
	if err != nil {
		return err
	}

	latestRating := q.Ratings[len(q.Ratings)-1]
	if _, err := tx.Exec(
		"INSERT INTO ratings (question_id, date, rating) VALUES (?, ?, ?)",
		id, string(latestRating.Date), latestRating.Rating); err != nil {
		return err
	}
	latestTime := q.SolveTimes[len(q.SolveTimes)-1]
	if _, err := tx.Exec(
		"INSERT INTO solve_times (question_id, date, minutes) VALUES (?, ?, ?)",
		id, string(latestTime.Date), latestTime.Minutes); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateDetails rewrites the editable fields (link, category, retention
// target, tags) without touching scheduling state or histories.
func (s *Store) UpdateDetails(q models.Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRow("SELECT id FROM questions WHERE name = ?", q.Name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrNotFound, q.Name)
		}
		return err
	}

	_, err = tx.Exec(
		"UPDATE questions SET link=?, category=?, retention_target=? WHERE id=?",
		q.Link, string(q.Category), q.RetentionTarget, id)
	if err != nil {
		return err
	}

	// Full tag replace: the caller provides the desired final set.
	if _, err := tx.Exec("DELETE FROM question_tags WHERE question_id=?", id); err != nil {
		return err
	}
	for _, tag := range q.CompanyTags {
		if err := linkTag(tx, id, tag); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteQuestion removes a question and (via FK cascade) its histories.
func (s *Store) DeleteQuestion(name string) error {
	res, err := s.db.Exec("DELETE FROM questions WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// ReplaceAll swaps the whole collection for the given questions, in order.
// Used by restore.
func (s *Store) ReplaceAll(questions []models.Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"question_tags", "ratings", "solve_times", "questions", "tags"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	for _, q := range questions {
		if err := insertQuestion(tx, q); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Stats aggregates review statistics as of today.
func (s *Store) Stats(today dates.Day) (*models.Stats, error) {
	stats := &models.Stats{CountByCategory: make(map[models.Category]int)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&stats.TotalQuestions); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&stats.TotalReviews); err != nil {
		return nil, err
	}

	cutoff := today.Add(-7)
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ratings WHERE date > ?",
		string(cutoff)).Scan(&stats.ReviewsLast7Days); err != nil {
		return nil, err
	}

	var avgRating, avgRetention sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(rating) FROM ratings").Scan(&avgRating); err != nil {
		return nil, err
	}
	if avgRating.Valid {
		stats.AverageRating = avgRating.Float64
	}
	if err := s.db.QueryRow(
		"SELECT AVG(retention_rate) FROM questions WHERE retention_rate IS NOT NULL").Scan(&avgRetention); err != nil {
		return nil, err
	}
	if avgRetention.Valid {
		stats.AverageRetention = avgRetention.Float64
	}

	rows, err := s.db.Query("SELECT category, COUNT(*) FROM questions GROUP BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.CountByCategory[models.Category(category)] = count
	}
	return stats, rows.Err()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
