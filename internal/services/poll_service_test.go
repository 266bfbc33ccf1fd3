package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"speedrun_vote_system/internal/db/models"
	mock_repositories "speedrun_vote_system/internal/db/repositories/mocks"
	mock_discord "speedrun_vote_system/internal/discord/mocks"
	"speedrun_vote_system/internal/speedruncom"
	mock_speedruncom "speedrun_vote_system/internal/speedruncom/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeScheduler struct {
	scheduled map[string]time.Time
	tasks     map[string]func()
	canceled  []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		scheduled: map[string]time.Time{},
		tasks:     map[string]func(){},
	}
}

func (f *fakeScheduler) Schedule(pollID string, at time.Time, task func()) {
	f.scheduled[pollID] = at
	f.tasks[pollID] = task
}

func (f *fakeScheduler) Cancel(pollID string) {
	f.canceled = append(f.canceled, pollID)
	delete(f.scheduled, pollID)
	delete(f.tasks, pollID)
}

func (f *fakeScheduler) Stop() {}

type pollServiceMocks struct {
	polls     *mock_repositories.MockPollRepository
	guilds    *mock_repositories.MockGuildRepository
	users     *mock_repositories.MockUserRepository
	src       *mock_speedruncom.MockClient
	gateway   *mock_discord.MockGateway
	scheduler *fakeScheduler
}

func newPollServiceForTest(t *testing.T) (PollService, pollServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := pollServiceMocks{
		polls:     mock_repositories.NewMockPollRepository(ctrl),
		guilds:    mock_repositories.NewMockGuildRepository(ctrl),
		users:     mock_repositories.NewMockUserRepository(ctrl),
		src:       mock_speedruncom.NewMockClient(ctrl),
		gateway:   mock_discord.NewMockGateway(ctrl),
		scheduler: newFakeScheduler(),
	}

	logger := zap.NewNop().Sugar()
	service := NewPollService(m.polls, m.guilds, m.gateway, NewClassifier(m.users, m.src, logger), m.scheduler, logger)

	return service, m
}

func moderatorOf(games ...string) *models.User {
	user := &models.User{ID: "mod"}
	for _, game := range games {
		user.ModeratedGames = append(user.ModeratedGames, models.Game{ID: game})
	}
	return user
}

func TestCreatePoll_PostsStoresAndSchedules(t *testing.T) {
	service, m := newPollServiceForTest(t)

	endTime := time.Now().Add(time.Hour)
	guild := &models.Guild{ID: "G1", Games: []string{"mkw"}, VoteChannelID: "C1"}

	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().PostPoll(gomock.Any(), "C1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, poll *models.Poll) (string, error) {
			assert.Equal(t, []string{"Rainbow Road", "Bowser Castle"}, poll.Choices)
			return "M1", nil
		})
	m.polls.EXPECT().Create(gomock.Any()).DoAndReturn(func(poll *models.Poll) (*models.Poll, error) {
		assert.Equal(t, "M1", poll.MessageID)
		assert.Nil(t, poll.Results)
		return poll, nil
	})
	m.guilds.EXPECT().Update(guild).Return(guild, nil)

	poll, err := service.Create(context.Background(), moderatorOf("mkw"), CreatePollRequest{
		EndTime:      endTime,
		GuildID:      "G1",
		PollQuestion: "Best track?",
		// Blank and duplicate lines from the submission form are dropped.
		Options: []string{"Rainbow Road", "", "Bowser Castle", "Rainbow Road"},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, poll.ID)
	assert.Equal(t, []string{"Rainbow Road", "Bowser Castle"}, poll.Choices)
	assert.Contains(t, guild.PollIDs, poll.ID)
	assert.Equal(t, endTime, m.scheduler.scheduled[poll.ID])
}

func TestCreatePoll_RejectsInvalidInput(t *testing.T) {
	service, m := newPollServiceForTest(t)

	tooMany := make([]string, 10)
	for index := range tooMany {
		tooMany[index] = "option"
	}
	future := time.Now().Add(time.Hour)

	cases := []CreatePollRequest{
		{EndTime: future, GuildID: "G1", PollQuestion: "", Options: []string{"A"}},
		{EndTime: future, GuildID: "G1", PollQuestion: "Q", Options: nil},
		{EndTime: future, GuildID: "G1", PollQuestion: "Q", Options: []string{"", ""}},
		{EndTime: future, GuildID: "G1", PollQuestion: "Q", Options: tooMany},
		// A past end time would leave the close timer firing late or never.
		{EndTime: time.Now().Add(-time.Minute), GuildID: "G1", PollQuestion: "Q", Options: []string{"A"}},
		// Absent endTime binds to the zero time.
		{GuildID: "G1", PollQuestion: "Q", Options: []string{"A"}},
	}
	for _, request := range cases {
		_, err := service.Create(context.Background(), moderatorOf("mkw"), request)
		assert.ErrorIs(t, err, ErrInvalidPoll)
	}
	assert.Empty(t, m.scheduler.scheduled)
}

func TestCreatePoll_NonModeratorIsRejected(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.guilds.EXPECT().GetOne("G1").Return(&models.Guild{
		ID:            "G1",
		Games:         []string{"mkw", "mk8dx"},
		VoteChannelID: "C1",
	}, nil)

	_, err := service.Create(context.Background(), moderatorOf("mkw"), CreatePollRequest{
		EndTime:      time.Now().Add(time.Hour),
		GuildID:      "G1",
		PollQuestion: "Q",
		Options:      []string{"A"},
	})

	assert.ErrorIs(t, err, ErrNotModerator)
	assert.Empty(t, m.scheduler.scheduled)
}

func TestCreatePoll_UnknownGuild(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.guilds.EXPECT().GetOne("missing").Return(nil, nil)

	_, err := service.Create(context.Background(), moderatorOf("mkw"), CreatePollRequest{
		EndTime:      time.Now().Add(time.Hour),
		GuildID:      "missing",
		PollQuestion: "Q",
		Options:      []string{"A"},
	})

	assert.ErrorIs(t, err, ErrGuildNotFound)
}

func TestCreatePoll_GuildWithoutVoteChannel(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.guilds.EXPECT().GetOne("G1").Return(&models.Guild{ID: "G1"}, nil)

	_, err := service.Create(context.Background(), moderatorOf("mkw"), CreatePollRequest{
		EndTime:      time.Now().Add(time.Hour),
		GuildID:      "G1",
		PollQuestion: "Q",
		Options:      []string{"A"},
	})

	assert.ErrorIs(t, err, ErrNoVoteChannel)
}

func TestCreatePoll_NothingStoredWhenPostFails(t *testing.T) {
	service, m := newPollServiceForTest(t)

	guild := &models.Guild{ID: "G1", VoteChannelID: "C1"}
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().PostPoll(gomock.Any(), "C1", gomock.Any()).Return("", errors.New("discord down"))

	_, err := service.Create(context.Background(), moderatorOf("mkw"), CreatePollRequest{
		EndTime:      time.Now().Add(time.Hour),
		GuildID:      "G1",
		PollQuestion: "Q",
		Options:      []string{"A"},
	})

	assert.Error(t, err)
	assert.Empty(t, m.scheduler.scheduled)
}

func TestClosePoll_TalliesVotersByStanding(t *testing.T) {
	service, m := newPollServiceForTest(t)

	poll := &models.Poll{
		ID:        "P1",
		Question:  "Best track?",
		Choices:   []string{"Rainbow Road", "Bowser Castle"},
		GuildID:   "G1",
		MessageID: "M1",
		EndTime:   time.Now().Add(-time.Minute),
	}
	guild := &models.Guild{ID: "G1", Games: []string{"mkw"}, VoteChannelID: "C1"}

	m.polls.EXPECT().GetOne("P1").Return(poll, nil)
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().FetchReactions(gomock.Any(), "C1", "M1").Return([][]string{
		{"userA", "userB"},
		{"userC"},
	}, nil)

	m.users.EXPECT().GetOne("userA").Return(&models.User{ID: "userA", SrcID: "srcA"}, nil)
	m.users.EXPECT().GetOne("userB").Return(&models.User{ID: "userB"}, nil)
	m.users.EXPECT().GetOne("userC").Return(&models.User{ID: "userC", SrcID: "srcC"}, nil)
	m.src.EXPECT().PersonalBests(gomock.Any(), "srcA", "mkw").Return([]speedruncom.Run{
		{GameID: "mkw", HasVideo: true},
	}, nil)
	m.src.EXPECT().PersonalBests(gomock.Any(), "srcC", "mkw").Return([]speedruncom.Run{
		{GameID: "mkw"},
	}, nil)

	m.polls.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Poll) (*models.Poll, error) {
		assert.Equal(t, [][]models.ResultUser{
			{
				{DiscordID: "userA", Role: models.RunnerProofProvenRunner},
				{DiscordID: "userB", Role: models.RunnerProofObserver},
			},
			{
				{DiscordID: "userC", Role: models.RunnerProofRunner},
			},
		}, updated.Results)
		return updated, nil
	})

	assert.NoError(t, service.Close(context.Background(), "P1"))
	assert.True(t, poll.Closed())
}

func TestClosePoll_EmptyChoiceGetsEmptyList(t *testing.T) {
	service, m := newPollServiceForTest(t)

	poll := &models.Poll{ID: "P1", Choices: []string{"A", "B"}, GuildID: "G1", MessageID: "M1"}
	guild := &models.Guild{ID: "G1", Games: []string{"mkw"}, VoteChannelID: "C1"}

	m.polls.EXPECT().GetOne("P1").Return(poll, nil)
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().FetchReactions(gomock.Any(), "C1", "M1").Return([][]string{}, nil)
	m.polls.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Poll) (*models.Poll, error) {
		assert.Equal(t, [][]models.ResultUser{{}, {}}, updated.Results)
		return updated, nil
	})

	assert.NoError(t, service.Close(context.Background(), "P1"))
}

func TestClosePoll_DiscardsMarkersBeyondChoices(t *testing.T) {
	service, m := newPollServiceForTest(t)

	poll := &models.Poll{ID: "P1", Choices: []string{"A"}, GuildID: "G1", MessageID: "M1"}
	guild := &models.Guild{ID: "G1", Games: []string{"mkw"}, VoteChannelID: "C1"}

	m.polls.EXPECT().GetOne("P1").Return(poll, nil)
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	// A stray marker past the last choice must cost no lookups.
	m.gateway.EXPECT().FetchReactions(gomock.Any(), "C1", "M1").Return([][]string{
		{"userA"},
		{"userZ"},
	}, nil)
	m.users.EXPECT().GetOne("userA").Return(nil, nil)
	m.polls.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Poll) (*models.Poll, error) {
		assert.Len(t, updated.Results, 1)
		return updated, nil
	})

	assert.NoError(t, service.Close(context.Background(), "P1"))
}

func TestClosePoll_AlreadyClosedIsNoOp(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.polls.EXPECT().GetOne("P1").Return(&models.Poll{
		ID:      "P1",
		Results: [][]models.ResultUser{{}},
	}, nil)

	assert.NoError(t, service.Close(context.Background(), "P1"))
}

func TestClosePoll_CanceledIsNoOp(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.polls.EXPECT().GetOne("P1").Return(&models.Poll{ID: "P1", Canceled: true}, nil)

	assert.NoError(t, service.Close(context.Background(), "P1"))
}

func TestClosePoll_MissingPoll(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.polls.EXPECT().GetOne("missing").Return(nil, nil)

	assert.ErrorIs(t, service.Close(context.Background(), "missing"), ErrPollNotFound)
}

func TestClosePoll_NeverPosted(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.polls.EXPECT().GetOne("P1").Return(&models.Poll{ID: "P1", GuildID: "G1"}, nil)

	assert.ErrorIs(t, service.Close(context.Background(), "P1"), ErrPollNotPosted)
}

func TestClosePoll_ReactionFetchFailureKeepsPollOpen(t *testing.T) {
	service, m := newPollServiceForTest(t)

	poll := &models.Poll{ID: "P1", Choices: []string{"A"}, GuildID: "G1", MessageID: "M1"}
	guild := &models.Guild{ID: "G1", VoteChannelID: "C1"}

	m.polls.EXPECT().GetOne("P1").Return(poll, nil)
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().FetchReactions(gomock.Any(), "C1", "M1").Return(nil, errors.New("discord down"))

	assert.Error(t, service.Close(context.Background(), "P1"))
	assert.False(t, poll.Closed())
}

func TestCancelPoll_DropsTimerAndMarksRecord(t *testing.T) {
	service, m := newPollServiceForTest(t)

	poll := &models.Poll{ID: "P1", GuildID: "G1", MessageID: "M1"}

	m.polls.EXPECT().GetOne("P1").Return(poll, nil)
	m.polls.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Poll) (*models.Poll, error) {
		assert.True(t, updated.Canceled)
		return updated, nil
	})

	assert.NoError(t, service.Cancel(context.Background(), "P1"))
	assert.Contains(t, m.scheduler.canceled, "P1")
}

func TestCancelPoll_ClosedPoll(t *testing.T) {
	service, m := newPollServiceForTest(t)

	m.polls.EXPECT().GetOne("P1").Return(&models.Poll{
		ID:      "P1",
		Results: [][]models.ResultUser{{}},
	}, nil)

	assert.ErrorIs(t, service.Cancel(context.Background(), "P1"), ErrPollClosed)
}

func TestRestorePending_SchedulesFutureAndClosesOverdue(t *testing.T) {
	service, m := newPollServiceForTest(t)

	future := &models.Poll{ID: "future", GuildID: "G1", MessageID: "M1", Choices: []string{"A"}, EndTime: time.Now().Add(time.Hour)}
	overdue := &models.Poll{ID: "overdue", GuildID: "G1", MessageID: "M2", Choices: []string{"A"}, EndTime: time.Now().Add(-time.Hour)}
	guild := &models.Guild{ID: "G1", Games: []string{"mkw"}, VoteChannelID: "C1"}

	m.polls.EXPECT().GetManyUnresolved().Return([]*models.Poll{future, overdue}, nil)

	m.polls.EXPECT().GetOne("overdue").Return(overdue, nil)
	m.guilds.EXPECT().GetOne("G1").Return(guild, nil)
	m.gateway.EXPECT().FetchReactions(gomock.Any(), "C1", "M2").Return([][]string{}, nil)
	m.polls.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.Poll) (*models.Poll, error) {
		assert.Equal(t, "overdue", updated.ID)
		assert.NotNil(t, updated.Results)
		return updated, nil
	})

	assert.NoError(t, service.RestorePending(context.Background()))

	assert.Contains(t, m.scheduler.scheduled, "future")
	assert.NotContains(t, m.scheduler.scheduled, "overdue")
}
