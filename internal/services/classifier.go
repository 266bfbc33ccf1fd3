package services

import (
	"context"
	"sync"

	"speedrun_vote_system/internal/db/models"
	"speedrun_vote_system/internal/db/repositories"
	"speedrun_vote_system/internal/speedruncom"

	"go.uber.org/zap"
)

// Classifier resolves Discord voters to their speedrun.com standing.
type Classifier interface {
	// NewResolution starts one poll-close pass over the given games.
	NewResolution(games []string) Resolution
}

// Resolution memoizes lookups by discord id for the duration of one poll
// close. Not safe for concurrent use.
type Resolution interface {
	Classify(ctx context.Context, discordID string) models.ResultUser
}

type classifier struct {
	users  repositories.UserRepository
	src    speedruncom.Client
	logger *zap.SugaredLogger
}

func NewClassifier(users repositories.UserRepository, src speedruncom.Client, logger *zap.SugaredLogger) Classifier {
	return &classifier{
		users:  users,
		src:    src,
		logger: logger,
	}
}

func (c *classifier) NewResolution(games []string) Resolution {
	return &resolution{
		classifier: c,
		games:      games,
		memo:       map[string]models.RunnerProof{},
	}
}

type resolution struct {
	*classifier
	games []string
	memo  map[string]models.RunnerProof
}

// Classify never fails: a voter whose lookup errors counts as an observer,
// so one bad external call cannot block a whole tally.
func (r *resolution) Classify(ctx context.Context, discordID string) models.ResultUser {
	if proof, ok := r.memo[discordID]; ok {
		return models.ResultUser{DiscordID: discordID, Role: proof}
	}

	proof := r.resolve(ctx, discordID)
	r.memo[discordID] = proof

	return models.ResultUser{DiscordID: discordID, Role: proof}
}

func (r *resolution) resolve(ctx context.Context, discordID string) models.RunnerProof {
	user, err := r.users.GetOne(discordID)
	if err != nil {
		r.logger.Warnw("failed to look up voter, counting as observer",
			"discord_id", discordID, "error", err)
		classificationFailures.Inc()
		return models.RunnerProofObserver
	}

	// Unverified voters never outrank verified ones, and cost no API calls.
	if user == nil || !user.Linked() {
		return models.RunnerProofObserver
	}

	proofs := make(chan models.RunnerProof, len(r.games))
	var wg sync.WaitGroup

	for _, game := range r.games {
		wg.Add(1)
		go func(gameID string) {
			defer wg.Done()

			runs, err := r.src.PersonalBests(ctx, user.SrcID, gameID)
			if err != nil {
				r.logger.Warnw("failed to fetch personal bests, counting as observer for game",
					"discord_id", discordID, "src_id", user.SrcID, "game", gameID, "error", err)
				classificationFailures.Inc()
				proofs <- models.RunnerProofObserver
				return
			}
			proofs <- proofFromRuns(runs)
		}(game)
	}

	wg.Wait()
	close(proofs)

	// A voter's standing is the maximum across the guild's tracked games.
	proof := models.RunnerProofObserver
	for p := range proofs {
		proof = models.MaxRunnerProof(proof, p)
	}
	return proof
}

func proofFromRuns(runs []speedruncom.Run) models.RunnerProof {
	proof := models.RunnerProofObserver
	for _, run := range runs {
		if run.HasVideo {
			return models.RunnerProofProvenRunner
		}
		proof = models.RunnerProofRunner
	}
	return proof
}
