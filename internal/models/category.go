package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when a category string matches none of the
// known problem categories.
var ErrInvalidCategory = errors.New("invalid category")

// Category is a problem topic. The order of Categories defines review
// priority: earlier topics are reviewed first in a session.
type Category string

// Categories lists every valid category, from foundational to advanced.
var Categories = []Category{
	"Arrays",
	"Hashing",
	"Two Pointers",
	"Stack",
	"Sorting",
	"Binary Search",
	"Sliding Window",
	"Linked List",
	"Greedy",
	"Heap",
	"Intervals",
	"Trees",
	"Math",
	"Graphs",
	"Backtracking",
	"Tries",
	"DP",
}

var categoryByLower = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

var categoryPriority = func() map[Category]int {
	m := make(map[Category]int, len(Categories))
	for i, c := range Categories {
		m[c] = i
	}
	return m
}()

// ParseCategory resolves s to a known category, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryByLower[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q (choose from: %s)", ErrInvalidCategory, s, CategoryNames())
	}
	return c, nil
}

// Priority returns the review-priority ordinal (lower reviews first).
// Unknown categories sort last.
func (c Category) Priority() int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return len(Categories)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryPriority[c]
	return ok
}

func (c Category) String() string { return string(c) }

// CategoryNames returns the valid category names joined for display.
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
