package db

// Token holds the session's credential pair for the LexiBel API.
// A single row exists at a time; login and refresh overwrite it.
// All access goes through TokenRepository.
type Token struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
