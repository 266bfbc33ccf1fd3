package discord

import (
	"context"
	"fmt"

	"speedrun_vote_system/internal"
	"speedrun_vote_system/internal/db/models"

	"github.com/bwmarrin/discordgo"
)

const reactionPageSize = 100

// PostPoll sends the poll embed to the vote channel and seeds one marker
// reaction per choice. Returns the posted message id.
func (b *Bot) PostPoll(ctx context.Context, channelID string, poll *models.Poll) (string, error) {
	embed := &discordgo.MessageEmbed{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Topic", Value: poll.Question},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Voting ends " + internal.Format(poll.EndTime),
		},
	}
	if b.config.EmbedColor != 0 {
		embed.Color = b.config.EmbedColor
	}

	for index, choice := range poll.Choices {
		marker, err := MarkerForChoice(index + 1)
		if err != nil {
			return "", err
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  marker,
			Value: choice,
		})
	}

	message, err := b.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send poll message: %w", err)
	}

	// Markers go on one at a time so clients render them in choice order.
	// A failed marker degrades the ballot but does not fail the poll.
	for index := range poll.Choices {
		marker, _ := MarkerForChoice(index + 1)
		if err := b.session.MessageReactionAdd(channelID, message.ID, marker, discordgo.WithContext(ctx)); err != nil {
			b.logger.Warnw("failed to add marker reaction",
				"message", message.ID, "marker", marker, "error", err)
		}
	}

	return message.ID, nil
}

// FetchReactions returns the voter ids per marker, indexed by choice
// position (marker k at index k-1). Reactions that are not poll markers are
// skipped, as is the bot's own seed reaction.
func (b *Bot) FetchReactions(ctx context.Context, channelID, messageID string) ([][]string, error) {
	message, err := b.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poll message: %w", err)
	}

	botID := b.botUserID()
	reactions := make([][]string, MaxChoices)

	for _, reaction := range message.Reactions {
		position, ok := ChoiceForMarker(reaction.Emoji.Name)
		if !ok {
			continue
		}

		users, err := b.reactionUsers(ctx, channelID, messageID, reaction.Emoji.APIName())
		if err != nil {
			return nil, err
		}

		voters := make([]string, 0, len(users))
		for _, user := range users {
			if user.ID == botID {
				continue
			}
			voters = append(voters, user.ID)
		}
		reactions[position-1] = voters
	}

	return reactions, nil
}

func (b *Bot) reactionUsers(ctx context.Context, channelID, messageID, emoji string) ([]*discordgo.User, error) {
	var all []*discordgo.User
	after := ""

	for {
		page, err := b.session.MessageReactions(channelID, messageID, emoji, reactionPageSize, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reaction users: %w", err)
		}

		all = append(all, page...)
		if len(page) < reactionPageSize {
			return all, nil
		}
		after = page[len(page)-1].ID
	}
}
