package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/pkg/api"
)

const defaultAPIEndpoint = "https://discord.com/api/v10"
const userAgent = "DiscordBot (https://harmonix.app, 1.0)"

type Endpoint struct {
	clientID     string
	clientSecret string
	botToken     string
	apiEndpoint  string

	apiGenerator api.Generator
}

func New(cfg config.DiscordConfigs) *Endpoint {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}

	return &Endpoint{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		botToken:     cfg.BotToken,
		apiEndpoint:  endpoint,
		apiGenerator: api.NewGenerator(),
	}
}

// StatusError carries a non-2xx Discord response so callers can surface the
// body as diagnostic detail.
type StatusError struct {
	Code int
	Body string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("discord api returned status %d", e.Code)
}

func (e *Endpoint) RefreshToken(ctx context.Context, refreshToken string) (TokenGrant, error) {
	resp, err := e.apiGenerator.New(e.apiEndpoint, "/oauth2/token").
		Header("User-Agent", userAgent).
		Body(api.Parameter{
			"client_id":     e.clientID,
			"client_secret": e.clientSecret,
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		POST(ctx)
	if err != nil {
		return TokenGrant{}, err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return TokenGrant{}, StatusError{Code: resp.Code, Body: string(resp.RawBody)}
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return TokenGrant{}, errors.New("invalid response")
	}

	accessToken, err := body.GetString("access_token")
	if err != nil {
		return TokenGrant{}, err
	}

	expiresIn, err := body.GetInt("expires_in")
	if err != nil {
		return TokenGrant{}, err
	}

	// A rotated refresh token is optional in the grant response.
	newRefreshToken, _ := body.GetString("refresh_token")

	return TokenGrant{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func (e *Endpoint) GetMe(ctx context.Context, token string) (User, error) {
	resp, err := e.apiGenerator.New(e.apiEndpoint, "/users/@me").
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bearer", token))
	if err != nil {
		return User{}, err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return User{}, StatusError{Code: resp.Code, Body: string(resp.RawBody)}
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return User{}, err
	}

	username, err := body.GetString("username")
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Username: username}, nil
}

func (e *Endpoint) GetMyGuilds(ctx context.Context, token string) ([]Guild, error) {
	resp, err := e.apiGenerator.New(e.apiEndpoint, "/users/@me/guilds").
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bearer", token))
	if err != nil {
		return nil, err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return nil, StatusError{Code: resp.Code, Body: string(resp.RawBody)}
	}

	array, ok := resp.Body.(api.Array)
	if !ok {
		return nil, errors.New("invalid response")
	}

	var guilds []Guild
	for _, obj := range array {
		id, err := obj.GetString("id")
		if err != nil {
			return nil, err
		}

		name, err := obj.GetString("name")
		if err != nil {
			return nil, err
		}

		// Icon is null for guilds without one.
		icon, _ := obj.GetString("icon")

		guilds = append(guilds, Guild{ID: id, Name: name, Icon: icon})
	}

	return guilds, nil
}

func (e *Endpoint) GetGuildChannels(ctx context.Context, guildID string) ([]Channel, error) {
	resp, err := e.apiGenerator.New(e.apiEndpoint, "/guilds/%s/channels", guildID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.botToken))
	if err != nil {
		return nil, err
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return nil, StatusError{Code: resp.Code, Body: string(resp.RawBody)}
	}

	array, ok := resp.Body.(api.Array)
	if !ok {
		return nil, errors.New("invalid response")
	}

	var channels []Channel
	for _, obj := range array {
		id, err := obj.GetString("id")
		if err != nil {
			return nil, err
		}

		name, err := obj.GetString("name")
		if err != nil {
			return nil, err
		}

		channelType, err := obj.GetInt("type")
		if err != nil {
			return nil, err
		}

		channels = append(channels, Channel{ID: id, Name: name, Type: channelType})
	}

	return channels, nil
}
