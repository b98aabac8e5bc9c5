package model

import "encoding/json"

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type GetGuildsRequest struct{}

type GetGuildsResponse struct {
	OK     bool    `json:"ok"`
	Guilds []Guild `json:"guilds"`
}

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetGuildChannelsRequest struct {
	GuildID string `uri:"guildId"`
}

type GetGuildChannelsResponse struct {
	OK       bool      `json:"ok"`
	Channels []Channel `json:"channels"`
}

type GetCurrentVoiceRequest struct{}

type GetCurrentVoiceResponse struct {
	OK      bool            `json:"ok"`
	Channel json.RawMessage `json:"channel"`
}
