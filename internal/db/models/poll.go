package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RunnerProof is a voter's speedrun.com standing for a guild's tracked games.
type RunnerProof string

const (
	RunnerProofObserver     RunnerProof = "observer"
	RunnerProofRunner       RunnerProof = "runner"
	RunnerProofProvenRunner RunnerProof = "proven_runner"
)

func (p RunnerProof) String() string {
	return string(p)
}

func (p RunnerProof) CapitalizedString() string {
	return cases.Title(language.English).String(p.String())
}

func (p RunnerProof) rank() int {
	switch p {
	case RunnerProofProvenRunner:
		return 2
	case RunnerProofRunner:
		return 1
	default:
		return 0
	}
}

func (p RunnerProof) Outranks(other RunnerProof) bool {
	return p.rank() > other.rank()
}

func MaxRunnerProof(a, b RunnerProof) RunnerProof {
	if b.Outranks(a) {
		return b
	}
	return a
}

// ResultUser is one tallied voter on a closed poll.
type ResultUser struct {
	DiscordID string      `json:"discord_id"`
	Role      RunnerProof `json:"role"`
}

type Poll struct {
	tableName struct{} `pg:"polls"` //nolint:unused

	ID              string         `json:"id" pg:"id,pk"`
	Question        string         `json:"question" pg:",notnull"`
	Choices         []string       `json:"choices" pg:",array"`
	MultipleAllowed bool           `json:"multiple_allowed" pg:",use_zero"`
	EndTime         time.Time      `json:"end_time" pg:",notnull"`
	GuildID         string         `json:"guild_id" pg:",notnull"`
	MessageID       string         `json:"message_id"`
	Results         [][]ResultUser `json:"results,omitempty" pg:"results,type:jsonb"`
	Canceled        bool           `json:"canceled" pg:",use_zero"`
	CreatedAt       time.Time      `json:"created_at" pg:"default:now()"`
}

// Closed reports whether the poll has been tallied. Results is set exactly
// once, when the close routine runs.
func (p *Poll) Closed() bool {
	return p.Results != nil
}
