package domain

import "time"

// Question is one immutable record from the question pool. ID is a synthetic
// identifier assigned at load time; Text is display data only and is not used
// as a key anywhere.
type Question struct {
	ID           string   `json:"id,omitempty"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	Topic        string   `json:"topic"`
	Subject      string   `json:"subject,omitempty"`
}

// Instance is one concrete delivery of a question to the channel.
type Instance struct {
	ID           string
	QuestionID   string
	QuestionText string
	Topic        string
	Subject      string
	SentAt       time.Time
	CorrectCount int
	TotalCount   int
}

// Vote is one participant's answer to a distributed instance.
type Vote struct {
	ParticipantID string
	DisplayName   string
	InstanceID    string
	Correct       bool
}

// VoteReceipt summarizes an accepted vote for participant feedback.
type VoteReceipt struct {
	Correct     bool
	Awarded     int
	TotalPoints int
}

// RankingEntry is one participant's cumulative standing.
type RankingEntry struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	Points        int    `json:"points"`
}

// ParticipantStats is one participant's lifetime answer record.
type ParticipantStats struct {
	Points   int
	Attempts int
}

// TopicTally holds the summed outcome counts for one topic on one day.
type TopicTally struct {
	Topic   string
	Correct int
	Total   int
}

// ReportGroup is one labeled row of a daily report.
type ReportGroup struct {
	Topic    string
	Correct  int
	Total    int
	Accuracy float64
	Label    string
}

// Report is the aggregated accuracy summary for one day. A day with no votes
// produces no Report at all; a Report with Accuracy 0 means votes were cast
// and all were wrong.
type Report struct {
	Date     time.Time
	Correct  int
	Total    int
	Accuracy float64
	Groups   []ReportGroup
}

// QuizItem is the outbound shape handed to the transport for delivery.
type QuizItem struct {
	QuestionID   string
	Title        string
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
	Anonymous    bool
}
