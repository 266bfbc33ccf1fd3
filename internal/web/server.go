package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"speedrun_vote_system/configs"
	"speedrun_vote_system/internal/db/models"
	"speedrun_vote_system/internal/db/repositories"
	"speedrun_vote_system/internal/discord"
	"speedrun_vote_system/internal/services"
	"speedrun_vote_system/internal/speedruncom"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const contextDiscordID = "discord_id"

type Server struct {
	config  configs.Web
	auth    *authenticator
	service services.PollService
	polls   repositories.PollRepository
	users   repositories.UserRepository
	guilds  repositories.GuildRepository
	src     speedruncom.Client
	gateway discord.Gateway
	logger  *zap.SugaredLogger
}

func NewServer(
	config configs.Web,
	discordConfig configs.Discord,
	service services.PollService,
	polls repositories.PollRepository,
	users repositories.UserRepository,
	guilds repositories.GuildRepository,
	src speedruncom.Client,
	gateway discord.Gateway,
	logger *zap.SugaredLogger,
) *Server {
	return &Server{
		config:  config,
		auth:    newAuthenticator(config, discordConfig),
		service: service,
		polls:   polls,
		users:   users,
		guilds:  guilds,
		src:     src,
		gateway: gateway,
		logger:  logger,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthcheck", s.handleHealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/login", s.handleLogin)
	router.GET("/callback", s.handleCallback)
	router.GET("/invite", s.handleInvite)

	api := router.Group("/api", s.requireSession)
	api.POST("/poll", s.handleCreatePoll)
	api.DELETE("/poll/:id", s.handleCancelPoll)
	api.POST("/verify", s.handleVerify)
	api.GET("/me", s.handleMe)

	return router
}

func (s *Server) Run() error {
	return s.Router().Run(fmt.Sprintf(":%d", s.config.Port))
}

func (s *Server) requireSession(c *gin.Context) {
	tokenString, _ := c.Cookie(sessionCookie)
	if tokenString == "" {
		header := c.GetHeader("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	discordID, err := s.auth.validateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}

	c.Set(contextDiscordID, discordID)
	c.Next()
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "I'm alive")
}

func (s *Server) handleInvite(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"link": s.gateway.InviteLink()})
}

func (s *Server) handleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, s.auth.authCodeURL(state))
}

func (s *Server) handleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "oauth state mismatch"})
		return
	}

	profile, err := s.auth.fetchProfile(c.Request.Context(), c.Query("code"))
	if err != nil {
		s.logger.Errorw("discord login failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "discord login failed"})
		return
	}

	user, err := s.users.GetOne(profile.ID)
	if err != nil {
		s.logger.Errorw("failed to get user", "discord_id", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	if user == nil {
		user = &models.User{
			ID:            profile.ID,
			Username:      profile.Username,
			Discriminator: profile.Discriminator,
		}
		if _, err = s.users.Create(user); err != nil {
			s.logger.Errorw("failed to create user", "discord_id", profile.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	} else if user.Username != profile.Username || user.Discriminator != profile.Discriminator {
		user.Username = profile.Username
		user.Discriminator = profile.Discriminator
		if _, err = s.users.Update(user); err != nil {
			s.logger.Errorw("failed to refresh user identity", "discord_id", profile.ID, "error", err)
		}
	}

	token, err := s.auth.issueToken(profile.ID)
	if err != nil {
		s.logger.Errorw("failed to issue session token", "discord_id", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.SetCookie(sessionCookie, token, int(s.config.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleMe(c *gin.Context) {
	user, ok := s.sessionUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleCreatePoll(c *gin.Context) {
	var request services.CreatePollRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, ok := s.sessionUser(c)
	if !ok {
		return
	}

	if _, err := s.service.Create(c.Request.Context(), user, request); err != nil {
		s.logger.Errorw("failed to create poll", "guild", request.GuildID, "error", err)
		switch {
		case errors.Is(err, services.ErrInvalidPoll):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotModerator):
			c.JSON(http.StatusForbidden, gin.H{"error": "must moderate all guild games"})
		case errors.Is(err, services.ErrGuildNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoVoteChannel):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create poll"})
		}
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) handleCancelPoll(c *gin.Context) {
	user, ok := s.sessionUser(c)
	if !ok {
		return
	}

	pollID := c.Param("id")
	poll, err := s.polls.GetOne(pollID)
	if err != nil {
		s.logger.Errorw("failed to get poll", "poll", pollID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load poll"})
		return
	}
	if poll == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown poll"})
		return
	}

	guild, err := s.guilds.GetOne(poll.GuildID)
	if err != nil || guild == nil {
		s.logger.Errorw("failed to get guild for poll", "poll", pollID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load guild"})
		return
	}

	for _, game := range guild.Games {
		if !user.Moderates(game) {
			c.JSON(http.StatusForbidden, gin.H{"error": "must moderate all guild games"})
			return
		}
	}

	if err := s.service.Cancel(c.Request.Context(), pollID); err != nil {
		switch {
		case errors.Is(err, services.ErrPollClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPollNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			s.logger.Errorw("failed to cancel poll", "poll", pollID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel poll"})
		}
		return
	}

	c.Status(http.StatusOK)
}

type verifyRequest struct {
	SrcUsername string `json:"srcUsername"`
}

// handleVerify links the session's Discord identity to a speedrun.com
// account: the profile must list the same Discord tag. On success the user
// gets the Runner role and a refreshed moderated-games set.
func (s *Server) handleVerify(c *gin.Context) {
	user, ok := s.sessionUser(c)
	if !ok {
		return
	}

	var request verifyRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.SrcUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "srcUsername is required"})
		return
	}

	ctx := c.Request.Context()

	tag, err := s.src.DiscordTag(ctx, request.SrcUsername)
	if err != nil {
		if errors.Is(err, speedruncom.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown speedrun.com user"})
			return
		}
		s.logger.Errorw("failed to fetch speedrun.com profile", "src_username", request.SrcUsername, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "speedrun.com unavailable"})
		return
	}

	if tag == "" || !strings.EqualFold(tag, user.Tag()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "profile does not list this discord account"})
		return
	}

	srcID, err := s.src.UserID(ctx, request.SrcUsername)
	if err != nil {
		s.logger.Errorw("failed to resolve speedrun.com user id", "src_username", request.SrcUsername, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "speedrun.com unavailable"})
		return
	}

	user.SrcID = srcID
	user.SrcUsername = request.SrcUsername

	games, err := s.src.ModeratedGames(ctx, srcID, speedruncom.ModeratorLevelModerator)
	if err != nil {
		s.logger.Warnw("failed to refresh moderated games", "src_id", srcID, "error", err)
	} else {
		user.ModeratedGames = make([]models.Game, 0, len(games))
		for _, game := range games {
			user.ModeratedGames = append(user.ModeratedGames, models.Game{ID: game.ID, Name: game.Name})
		}
	}

	if _, err = s.users.Update(user); err != nil {
		s.logger.Errorw("failed to store verified link", "discord_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store verification"})
		return
	}

	s.grantRunnerRoles(c, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"srcId":          user.SrcID,
		"srcUsername":    user.SrcUsername,
		"moderatedGames": user.ModeratedGames,
	})
}

func (s *Server) grantRunnerRoles(c *gin.Context, discordID string) {
	guilds, err := s.guilds.GetMany()
	if err != nil {
		s.logger.Errorw("failed to list guilds for role grant", "error", err)
		return
	}

	for _, guild := range guilds {
		if guild.RunnerRoleID == "" {
			continue
		}
		if err := s.gateway.GrantRunnerRole(c.Request.Context(), guild.ID, guild.RunnerRoleID, discordID); err != nil {
			s.logger.Warnw("failed to grant runner role",
				"guild", guild.ID, "discord_id", discordID, "error", err)
		}
	}
}

func (s *Server) sessionUser(c *gin.Context) (*models.User, bool) {
	discordID := c.GetString(contextDiscordID)

	user, err := s.users.GetOne(discordID)
	if err != nil {
		s.logger.Errorw("failed to get user", "discord_id", discordID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown user, log in first"})
		return nil, false
	}

	return user, true
}
