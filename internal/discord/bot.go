package discord

import (
	"context"
	"fmt"

	"speedrun_vote_system/configs"
	"speedrun_vote_system/internal/db/models"
	"speedrun_vote_system/internal/db/repositories"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const botPermissions = discordgo.PermissionManageRoles |
	discordgo.PermissionManageChannels |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionAddReactions |
	discordgo.PermissionViewChannel

// Gateway is the chat-platform surface the poll engine depends on.
type Gateway interface {
	PostPoll(ctx context.Context, channelID string, poll *models.Poll) (string, error)
	FetchReactions(ctx context.Context, channelID, messageID string) ([][]string, error)
	GrantRunnerRole(ctx context.Context, guildID, roleID, userID string) error
	InviteLink() string
}

type Bot struct {
	session *discordgo.Session
	guilds  repositories.GuildRepository
	config  configs.Discord
	logger  *zap.SugaredLogger
}

func NewBot(config configs.Discord, guilds repositories.GuildRepository, logger *zap.SugaredLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	bot := &Bot{
		session: session,
		guilds:  guilds,
		config:  config,
		logger:  logger,
	}
	session.AddHandler(bot.onGuildCreate)

	return bot, nil
}

func (b *Bot) Open() error {
	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) InviteLink() string {
	return fmt.Sprintf(
		"https://discord.com/api/oauth2/authorize?client_id=%s&permissions=%d&scope=bot",
		b.config.ClientID,
		botPermissions,
	)
}

func (b *Bot) botUserID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}
