// Package types contains common types used across the application
package types

// Entry represents a ranked row of a daily leaderboard
type Entry struct {
	Rank    int    `json:"rank"`
	Athlete string `json:"athlete"`
	Score   int    `json:"score"`
}

// Day is one day's ranked entries, numbered from 1 in first-seen order
type Day struct {
	Number  int     `json:"day"`
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}
