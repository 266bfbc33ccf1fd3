package services

import (
	"context"
	"fmt"
	"time"

	"speedrun_vote_system/internal/db/models"
	"speedrun_vote_system/internal/db/repositories"
	"speedrun_vote_system/internal/discord"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// closeTimeout bounds one whole close pass: reaction fetch plus every
// standing lookup. A hung external call must not stall a poll forever.
const closeTimeout = 2 * time.Minute

// CreatePollRequest is the payload the web collaborator hands over.
// EndTime arrives as an ISO-8601 string.
type CreatePollRequest struct {
	EndTime      time.Time `json:"endTime"`
	GuildID      string    `json:"guildId"`
	PollQuestion string    `json:"pollQuestion"`
	Options      []string  `json:"options"`
}

// PollService owns the poll lifecycle: create, scheduled close, cancel and
// startup rehydration.
type PollService interface {
	Create(ctx context.Context, requester *models.User, request CreatePollRequest) (*models.Poll, error)
	Close(ctx context.Context, pollID string) error
	Cancel(ctx context.Context, pollID string) error
	RestorePending(ctx context.Context) error
}

type pollService struct {
	polls      repositories.PollRepository
	guilds     repositories.GuildRepository
	gateway    discord.Gateway
	classifier Classifier
	scheduler  Scheduler
	logger     *zap.SugaredLogger
}

func NewPollService(
	polls repositories.PollRepository,
	guilds repositories.GuildRepository,
	gateway discord.Gateway,
	classifier Classifier,
	scheduler Scheduler,
	logger *zap.SugaredLogger,
) PollService {
	return &pollService{
		polls:      polls,
		guilds:     guilds,
		gateway:    gateway,
		classifier: classifier,
		scheduler:  scheduler,
		logger:     logger,
	}
}

func (s *pollService) Create(ctx context.Context, requester *models.User, request CreatePollRequest) (*models.Poll, error) {
	// Empty and duplicate option lines are never valid ballot lines.
	choices := make([]string, 0, len(request.Options))
	seen := make(map[string]struct{}, len(request.Options))
	for _, option := range request.Options {
		if option == "" {
			continue
		}
		if _, ok := seen[option]; ok {
			continue
		}
		seen[option] = struct{}{}
		choices = append(choices, option)
	}

	if request.PollQuestion == "" || len(choices) == 0 {
		return nil, fmt.Errorf("%w: question and at least one option required", ErrInvalidPoll)
	}
	if len(choices) > discord.MaxChoices {
		return nil, fmt.Errorf("%w: at most %d options", ErrInvalidPoll, discord.MaxChoices)
	}
	// A poll ending in the past could never collect votes, and its close
	// timer would not fire on time.
	if !request.EndTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: end time must be in the future", ErrInvalidPoll)
	}

	guild, err := s.guilds.GetOne(request.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	if guild == nil {
		return nil, fmt.Errorf("%w: %s", ErrGuildNotFound, request.GuildID)
	}
	// Launching a poll requires moderating every game the guild tracks.
	for _, game := range guild.Games {
		if !requester.Moderates(game) {
			return nil, fmt.Errorf("%w: %s", ErrNotModerator, game)
		}
	}
	if guild.VoteChannelID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoVoteChannel, guild.ID)
	}

	poll := &models.Poll{
		ID:       uuid.NewString(),
		Question: request.PollQuestion,
		Choices:  choices,
		EndTime:  request.EndTime,
		GuildID:  guild.ID,
	}

	// Post first: a record without a message id could never be closed, so
	// nothing is persisted when the post fails.
	messageID, err := s.gateway.PostPoll(ctx, guild.VoteChannelID, poll)
	if err != nil {
		return nil, fmt.Errorf("failed to post poll message: %w", err)
	}
	poll.MessageID = messageID

	if _, err = s.polls.Create(poll); err != nil {
		return nil, fmt.Errorf("failed to store poll: %w", err)
	}

	guild.PollIDs = append(guild.PollIDs, poll.ID)
	if _, err = s.guilds.Update(guild); err != nil {
		s.logger.Errorw("failed to attach poll to guild", "poll", poll.ID, "guild", guild.ID, "error", err)
	}

	s.schedule(poll)
	pollsCreated.Inc()
	s.logger.Infow("poll created", "poll", poll.ID, "guild", guild.ID, "end_time", poll.EndTime)

	return poll, nil
}

func (s *pollService) schedule(poll *models.Poll) {
	pollID := poll.ID
	s.scheduler.Schedule(pollID, poll.EndTime, func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()

		if err := s.Close(ctx, pollID); err != nil {
			s.logger.Errorw("failed to close poll", "poll", pollID, "error", err)
		}
	})
}

// Close tallies a poll. Closing an already-closed poll is a no-op so that
// duplicate timer firings cannot race on the stored results.
func (s *pollService) Close(ctx context.Context, pollID string) error {
	poll, err := s.polls.GetOne(pollID)
	if err != nil {
		return fmt.Errorf("failed to get poll: %w", err)
	}
	if poll == nil {
		return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}
	if poll.Closed() {
		s.logger.Infow("poll already closed", "poll", pollID)
		return nil
	}
	if poll.Canceled {
		s.logger.Infow("poll canceled, skipping tally", "poll", pollID)
		return nil
	}
	if poll.MessageID == "" {
		return fmt.Errorf("%w: %s", ErrPollNotPosted, pollID)
	}

	guild, err := s.guilds.GetOne(poll.GuildID)
	if err != nil {
		return fmt.Errorf("failed to get guild: %w", err)
	}
	if guild == nil {
		return fmt.Errorf("%w: %s", ErrGuildNotFound, poll.GuildID)
	}
	if guild.VoteChannelID == "" {
		return fmt.Errorf("%w: %s", ErrNoVoteChannel, guild.ID)
	}

	reactions, err := s.gateway.FetchReactions(ctx, guild.VoteChannelID, poll.MessageID)
	if err != nil {
		return fmt.Errorf("failed to fetch reactions: %w", err)
	}

	res := s.classifier.NewResolution(guild.Games)

	results := make([][]models.ResultUser, len(poll.Choices))
	for index := range results {
		results[index] = []models.ResultUser{}
	}

	for index, voters := range reactions {
		// Markers with no matching choice position carry no vote.
		if index >= len(poll.Choices) {
			continue
		}
		for _, voter := range voters {
			results[index] = append(results[index], res.Classify(ctx, voter))
		}
	}

	poll.Results = results
	if _, err = s.polls.Update(poll); err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}

	pollsClosed.Inc()
	s.logger.Infow("poll closed", "poll", pollID, "guild", guild.ID)

	return nil
}

// Cancel removes the poll's timer and marks the record canceled so that
// rehydration never picks it up again.
func (s *pollService) Cancel(ctx context.Context, pollID string) error {
	poll, err := s.polls.GetOne(pollID)
	if err != nil {
		return fmt.Errorf("failed to get poll: %w", err)
	}
	if poll == nil {
		return fmt.Errorf("%w: %s", ErrPollNotFound, pollID)
	}
	if poll.Closed() {
		return fmt.Errorf("%w: %s", ErrPollClosed, pollID)
	}

	s.scheduler.Cancel(pollID)

	if poll.Canceled {
		return nil
	}

	poll.Canceled = true
	if _, err = s.polls.Update(poll); err != nil {
		return fmt.Errorf("failed to store cancellation: %w", err)
	}

	s.logger.Infow("poll canceled", "poll", pollID)
	return nil
}

// RestorePending rebuilds timers from the store at startup. Polls whose end
// time passed while the process was down are closed right away instead of
// being dropped.
func (s *pollService) RestorePending(ctx context.Context) error {
	pending, err := s.polls.GetManyUnresolved()
	if err != nil {
		return fmt.Errorf("failed to load unresolved polls: %w", err)
	}

	now := time.Now()
	for _, poll := range pending {
		if poll.EndTime.After(now) {
			s.schedule(poll)
			s.logger.Infow("poll timer restored", "poll", poll.ID, "end_time", poll.EndTime)
			continue
		}

		s.logger.Infow("closing overdue poll", "poll", poll.ID, "end_time", poll.EndTime)
		if err := s.Close(ctx, poll.ID); err != nil {
			s.logger.Errorw("failed to close overdue poll", "poll", poll.ID, "error", err)
		}
	}

	return nil
}
