package discord

import (
	"context"
	"fmt"

	"speedrun_vote_system/internal/db/models"

	"github.com/bwmarrin/discordgo"
)

// onGuildCreate runs when the bot joins a guild (and once per guild on
// connect). First join creates the guild record, the Runner role and a
// locked-down vote channel.
func (b *Bot) onGuildCreate(_ *discordgo.Session, event *discordgo.GuildCreate) {
	guild, err := b.guilds.GetOne(event.Guild.ID)
	if err != nil {
		b.logger.Errorw("failed to get guild", "guild", event.Guild.ID, "error", err)
		return
	}

	if guild == nil {
		b.logger.Infow("initializing guild", "guild", event.Guild.ID, "name", event.Guild.Name)
		guild = &models.Guild{
			ID:    event.Guild.ID,
			Name:  event.Guild.Name,
			Games: b.config.DefaultGames,
		}
		if guild, err = b.guilds.Create(guild); err != nil {
			b.logger.Errorw("failed to create guild", "guild", event.Guild.ID, "error", err)
			return
		}
	}

	if err := b.ensureRunnerRole(guild); err != nil {
		b.logger.Errorw("failed to ensure runner role", "guild", guild.ID, "error", err)
		return
	}

	if err := b.ensureVoteChannel(guild); err != nil {
		b.logger.Errorw("failed to ensure vote channel", "guild", guild.ID, "error", err)
		return
	}

	if _, err := b.guilds.Update(guild); err != nil {
		b.logger.Errorw("failed to update guild", "guild", guild.ID, "error", err)
	}
}

func (b *Bot) ensureRunnerRole(guild *models.Guild) error {
	if guild.RunnerRoleID != "" {
		roles, err := b.session.GuildRoles(guild.ID)
		if err == nil {
			for _, role := range roles {
				if role.ID == guild.RunnerRoleID {
					return nil
				}
			}
		}
	}

	mentionable := false
	params := &discordgo.RoleParams{
		Name:        "Runner",
		Mentionable: &mentionable,
	}
	if b.config.EmbedColor != 0 {
		color := b.config.EmbedColor
		params.Color = &color
	}

	role, err := b.session.GuildRoleCreate(guild.ID, params)
	if err != nil {
		return fmt.Errorf("failed to create runner role: %w", err)
	}

	guild.RunnerRoleID = role.ID
	return nil
}

func (b *Bot) ensureVoteChannel(guild *models.Guild) error {
	if guild.VoteChannelID != "" {
		if channel, err := b.session.Channel(guild.VoteChannelID); err == nil && channel != nil {
			return nil
		}
	}

	// The @everyone role id equals the guild id.
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   guild.ID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionAddReactions | discordgo.PermissionSendMessages | discordgo.PermissionViewChannel,
		},
		{
			ID:    guild.RunnerRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel,
		},
		{
			ID:    b.botUserID(),
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionSendMessages | discordgo.PermissionViewChannel | discordgo.PermissionAddReactions,
		},
	}

	channel, err := b.session.GuildChannelCreateComplex(guild.ID, discordgo.GuildChannelCreateData{
		Name:                 b.config.VoteChannelName,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                "Vote on community polls",
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return fmt.Errorf("failed to create vote channel: %w", err)
	}

	guild.VoteChannelID = channel.ID
	return nil
}

// GrantRunnerRole gives a verified user the guild's Runner role.
func (b *Bot) GrantRunnerRole(ctx context.Context, guildID, roleID, userID string) error {
	if err := b.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to grant runner role: %w", err)
	}
	return nil
}
