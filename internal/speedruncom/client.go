package speedruncom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"speedrun_vote_system/configs"

	"go.uber.org/zap"
)

// ErrNotFound marks a missing speedrun.com resource (unknown username etc).
var ErrNotFound = errors.New("speedrun.com resource not found")

const (
	gamesPageSize  = 200
	initialBackoff = 500 * time.Millisecond
)

// discordTagPattern extracts the Discord handle from the connection icon on
// a speedrun.com profile page.
var discordTagPattern = regexp.MustCompile(`(?s)<img[^>]*discord[^>]*data-id="([^"]*)"`)

type Client interface {
	UserID(ctx context.Context, username string) (string, error)
	PersonalBests(ctx context.Context, userID, gameID string) ([]Run, error)
	ModeratedGames(ctx context.Context, userID string, minLevel ModeratorLevel) ([]Game, error)
	DiscordTag(ctx context.Context, srcUsername string) (string, error)
}

type client struct {
	http    *http.Client
	baseURL string
	siteURL string
	retries int
	logger  *zap.SugaredLogger
}

func NewClient(config configs.SpeedrunCom, logger *zap.SugaredLogger) Client {
	return &client{
		http:    &http.Client{Timeout: config.RequestTimeout},
		baseURL: config.APIURL,
		siteURL: config.SiteURL,
		retries: config.Retries,
		logger:  logger,
	}
}

func (c *client) UserID(ctx context.Context, username string) (string, error) {
	var response userResponse
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return "", err
	}
	return response.Data.ID, nil
}

func (c *client) PersonalBests(ctx context.Context, userID, gameID string) ([]Run, error) {
	var response personalBestsResponse
	endpoint := fmt.Sprintf("%s/users/%s/personal-bests?game=%s",
		c.baseURL, url.PathEscape(userID), url.QueryEscape(gameID))
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	runs := make([]Run, 0, len(response.Data))
	for _, best := range response.Data {
		run := Run{GameID: best.Run.Game}
		if best.Run.Videos != nil && len(best.Run.Videos.Links) > 0 {
			run.HasVideo = true
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ModeratedGames lists the games the user moderates at or above minLevel.
// The listing endpoint has no level filter, so levels come from each game's
// moderator map.
func (c *client) ModeratedGames(ctx context.Context, userID string, minLevel ModeratorLevel) ([]Game, error) {
	var games []Game
	offset := 0

	for {
		var response gamesResponse
		endpoint := fmt.Sprintf("%s/games?moderator=%s&max=%d&offset=%d",
			c.baseURL, url.QueryEscape(userID), gamesPageSize, offset)
		if err := c.getJSON(ctx, endpoint, &response); err != nil {
			return nil, err
		}

		for _, game := range response.Data {
			if !ModeratorLevel(game.Moderators[userID]).AtLeast(minLevel) {
				continue
			}
			games = append(games, Game{ID: game.ID, Name: game.Names.International})
		}

		if len(response.Data) < gamesPageSize {
			return games, nil
		}
		offset += gamesPageSize
	}
}

// DiscordTag scrapes the public profile page for the Discord connection.
// Returns an empty string when the profile does not list one.
func (c *client) DiscordTag(ctx context.Context, srcUsername string) (string, error) {
	endpoint := fmt.Sprintf("%s/user/%s", c.siteURL, url.PathEscape(srcUsername))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	match := discordTagPattern.FindSubmatch(body)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}

func (c *client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode speedrun.com response: %w", err)
	}
	return nil
}

// get performs an idempotent read with backoff on server errors and rate
// limits.
func (c *client) get(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debugw("retrying speedrun.com request", "url", endpoint, "attempt", attempt)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		response, err := c.http.Do(request)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case response.StatusCode == http.StatusOK:
			return body, nil
		case response.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", ErrNotFound, endpoint)
		case response.StatusCode >= http.StatusInternalServerError ||
			response.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("speedrun.com returned %s", response.Status)
			continue
		default:
			return nil, fmt.Errorf("speedrun.com returned %s", response.Status)
		}
	}

	return nil, lastErr
}
