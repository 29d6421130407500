package domain

import "errors"

var (
	// ErrDataUnavailable indicates the question source is missing or corrupt.
	// It aborts the affected cycle only, never the process.
	ErrDataUnavailable = errors.New("question data unavailable")
	// ErrDataEmpty indicates the pool loaded but contains zero usable questions.
	ErrDataEmpty = errors.New("question pool is empty")
	// ErrDuplicateVote is returned when a participant already answered an instance.
	ErrDuplicateVote = errors.New("participant already answered this question")
	// ErrUnknownInstance indicates an outcome update for an instance not in the log.
	ErrUnknownInstance = errors.New("distribution instance not found")
	// ErrRankingUnavailable is returned by trackers that cannot attribute votes
	// to participants (anonymous aggregate mode).
	ErrRankingUnavailable = errors.New("per-participant tracking unavailable in anonymous mode")
)
