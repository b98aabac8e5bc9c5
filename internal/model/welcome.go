package model

import "encoding/json"

type GetWelcomeConfigRequest struct{}

type GetWelcomeConfigResponse = json.RawMessage

type UpdateWelcomeConfigRequest struct {
	ChannelID  string `json:"channel_id"`
	Message    string `json:"message"`
	EmbedTitle string `json:"embed_title"`
}

type UpdateWelcomeConfigResponse = json.RawMessage
