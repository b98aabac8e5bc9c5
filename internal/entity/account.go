package entity

import "database/sql"

// Provider ids as written by the auth layer. Credential accounts are the only
// rows carrying a password hash; OAuth-created rows never do.
const (
	ProviderDiscord    = "discord"
	ProviderCredential = "credential"
)

// Account links a local user to one external provider identity, including the
// provider token material. Token columns are mutated only by the token
// refresher.
type Account struct {
	Base

	UserID string `gorm:"index:idx_accounts_user_provider,unique"`
	User   User   `gorm:"foreignKey:UserID"`

	ProviderID string `gorm:"index:idx_accounts_user_provider,unique"`

	// AccountID is the provider-side user id (for discord, the snowflake).
	AccountID string

	AccessToken          string
	RefreshToken         sql.NullString
	AccessTokenExpiresAt sql.NullTime

	Password sql.NullString
}

func (Account) TableName() string {
	return "accounts"
}
