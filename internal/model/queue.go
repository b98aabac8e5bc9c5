package model

import "encoding/json"

type GetQueueRequest struct {
	VoiceChannelID string `form:"voice_channel_id"`
}

// GetQueueResponse is the upstream queue state forwarded verbatim.
type GetQueueResponse = json.RawMessage

type AddToQueueRequest struct {
	VoiceChannelID string `json:"voice_channel_id"`
	URL            string `json:"url"`
}

type AddToQueueResponse struct {
	OK      bool            `json:"ok"`
	Success json.RawMessage `json:"success"`
}

type QueueActionRequest struct{}

type QueueActionResponse = json.RawMessage

type RemoveFromQueueRequest struct {
	VoiceChannelID string `json:"voice_channel_id"`
	Position       *int   `json:"position"`
}

type GetRecentRequest struct {
	VoiceChannelID string `form:"voice_channel_id"`
}

type GetRecentResponse = json.RawMessage
