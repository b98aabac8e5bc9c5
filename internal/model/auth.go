package model

type HasDiscordRequest struct{}

type HasDiscordResponse struct {
	HasDiscord bool `json:"hasDiscord"`
}

type VerifyLinkRequest struct{}

type VerifyLinkResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

type GetIdentityRequest struct{}

type GetIdentityResponse struct {
	DiscordTag *string `json:"discordTag"`
}

type HealthzRequest struct{}

type HealthzResponse struct {
	Status string `json:"status"`
}
