package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Session   SessionConfigs
	Auth      AuthConfigs
	Discord   DiscordConfigs
	Bot       BotConfigs
}

type ServerConfigs struct {
	Host         string
	Port         string
	AllowOrigins []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type AuthConfigs struct {
	// Bounded retry budget for the link-verification legitimacy check. The
	// OAuth callback's account write may not be visible yet when verification
	// runs, so the check polls before concluding the account is illegitimate.
	VerifyAttempts int
	VerifyDelay    time.Duration
}

type DiscordConfigs struct {
	APIEndpoint  string
	ClientID     string
	ClientSecret string
	BotToken     string
}

type BotConfigs struct {
	BaseURL string

	// ReadTimeout bounds simple passthrough calls. SubmitTimeout bounds queue
	// submission, which can block on the bot joining a channel and resolving
	// the track.
	ReadTimeout   time.Duration
	SubmitTimeout time.Duration
}
