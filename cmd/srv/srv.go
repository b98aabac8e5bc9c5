package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/internal/client"
	"github.com/harmonix-bot/backend/internal/common"
	"github.com/harmonix-bot/backend/internal/domain"
	"github.com/harmonix-bot/backend/internal/middleware"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/api/discord"
	"github.com/harmonix-bot/backend/pkg/logger"
	"github.com/harmonix-bot/backend/pkg/router"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	configs *config.Configs
	logger  logger.Logger

	db *gorm.DB

	discordEndpoint discord.IEndpoint
	botClient       client.IBotClient

	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository

	tokenRefresher *common.TokenRefresher

	healthDomain  domain.HealthDomain
	authDomain    domain.AuthDomain
	guildDomain   domain.GuildDomain
	queueDomain   domain.QueueDomain
	welcomeDomain domain.WelcomeDomain
	commandDomain domain.CommandDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "0.0.0.0"),
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: []string{getEnv("ALLOW_ORIGIN", "http://localhost:3000")},
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "harmonix"),
			User:     getEnv("MYSQL_USER", "harmonix"),
			Password: getEnv("MYSQL_PASSWORD", "harmonix"),
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "secret"),
			Name:   getEnv("SESSION_NAME", "harmonix_session"),
		},
		Auth: config.AuthConfigs{
			VerifyAttempts: getEnvInt("AUTH_VERIFY_ATTEMPTS", 3),
			VerifyDelay:    getEnvDuration("AUTH_VERIFY_DELAY", 300*time.Millisecond),
		},
		Discord: config.DiscordConfigs{
			APIEndpoint:  getEnv("DISCORD_API_ENDPOINT", "https://discord.com/api/v10"),
			ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
			BotToken:     getEnv("DISCORD_BOT_TOKEN", ""),
		},
		Bot: config.BotConfigs{
			BaseURL:       getEnv("BOT_API_BASE_URL", ""),
			ReadTimeout:   getEnvDuration("BOT_API_READ_TIMEOUT", 30*time.Second),
			SubmitTimeout: getEnvDuration("BOT_API_SUBMIT_TIMEOUT", 10*time.Minute),
		},
	}
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(s.configs.Discord)
}

func (s *srv) loadClients() {
	s.botClient = client.NewBot(s.configs.Bot)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.accountRepo = repository.NewAccountRepository()
	s.sessionRepo = repository.NewSessionRepository()
}

func (s *srv) loadDomains() {
	s.tokenRefresher = common.NewTokenRefresher(s.accountRepo, s.discordEndpoint)

	s.healthDomain = domain.NewHealthDomain()
	s.authDomain = domain.NewAuthDomain(s.accountRepo, s.sessionRepo, s.userRepo)
	s.guildDomain = domain.NewGuildDomain(s.accountRepo, s.tokenRefresher, s.discordEndpoint, s.botClient)
	s.queueDomain = domain.NewQueueDomain(s.tokenRefresher, s.discordEndpoint, s.botClient)
	s.welcomeDomain = domain.NewWelcomeDomain(s.botClient)
	s.commandDomain = domain.NewCommandDomain(s.botClient)
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/api/healthz", s.healthDomain.Healthz)
	}

	// Session-aware but anonymous-tolerant API
	optionalRouter := s.router.Branch()
	optionalRouter.Before(middleware.OptionalAuthenticate(s.sessionRepo))
	{
		router.GET(optionalRouter, "/api/auth/has-discord", s.authDomain.HasDiscord)
	}

	// Authenticated API
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate(s.sessionRepo))
	{
		router.POST(authRouter, "/api/auth/verify-link", s.authDomain.VerifyLink)
		router.GET(authRouter, "/api/identity", s.authDomain.GetIdentity)

		router.GET(authRouter, "/api/guilds", s.guildDomain.GetMine)
		router.GET(authRouter, "/api/guilds/:guildId/channels", s.guildDomain.GetChannels)
		router.GET(authRouter, "/api/guilds/current/voice", s.guildDomain.CurrentVoice)

		router.GET(authRouter, "/api/queue", s.queueDomain.Get)
		router.POST(authRouter, "/api/queue", s.queueDomain.Add)
		router.POST(authRouter, "/api/queue/play", s.queueDomain.Play)
		router.POST(authRouter, "/api/queue/pause", s.queueDomain.Pause)
		router.POST(authRouter, "/api/queue/skip", s.queueDomain.Skip)
		router.POST(authRouter, "/api/queue/clear", s.queueDomain.Clear)
		router.POST(authRouter, "/api/queue/remove", s.queueDomain.Remove)
		router.GET(authRouter, "/api/recent", s.queueDomain.Recent)

		router.GET(authRouter, "/api/welcome-config", s.welcomeDomain.Get)
		router.PUT(authRouter, "/api/welcome-config", s.welcomeDomain.Update)

		router.GET(authRouter, "/api/commands", s.commandDomain.List)
		router.POST(authRouter, "/api/commands", s.commandDomain.Create)
		router.PATCH(authRouter, "/api/commands/:commandId", s.commandDomain.Update)
		router.DELETE(authRouter, "/api/commands/:commandId", s.commandDomain.Delete)
	}
}
