package services

import "errors"

var (
	// ErrInvalidPoll rejects malformed creation requests before any side
	// effect happens.
	ErrInvalidPoll = errors.New("invalid poll request")

	// ErrGuildNotFound means the referenced guild was never initialized.
	ErrGuildNotFound = errors.New("guild not found")

	// ErrNoVoteChannel means the guild exists but has no vote channel to
	// post into. Operator configuration problem, not retryable.
	ErrNoVoteChannel = errors.New("guild has no vote channel")

	// ErrNotModerator rejects poll management by users who do not moderate
	// every game the guild tracks.
	ErrNotModerator = errors.New("user does not moderate all guild games")

	// ErrPollNotFound means no poll record exists for the id.
	ErrPollNotFound = errors.New("poll not found")

	// ErrPollNotPosted means the poll record exists but never finished
	// posting, so there is no message to tally.
	ErrPollNotPosted = errors.New("poll has no posted message")

	// ErrPollClosed rejects cancellation of an already tallied poll.
	ErrPollClosed = errors.New("poll already closed")
)
