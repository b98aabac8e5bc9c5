package discord

// TokenGrant is the successful result of a refresh-token grant. RefreshToken
// is empty when Discord does not rotate the refresh token.
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

type User struct {
	ID       string
	Username string
}

type Guild struct {
	ID   string
	Name string
	Icon string
}

type Channel struct {
	ID   string
	Name string
	Type int
}

// Discord channel types. Only voice channels matter to the panel.
const ChannelTypeVoice = 2
