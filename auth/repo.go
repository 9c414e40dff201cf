package auth

import (
	"context"

	"github.com/lexibel/lexctl/db"
)

// tokenRepoStorer adapts db.TokenRepository to TokenStorer.
type tokenRepoStorer struct{ repo db.TokenRepository }

// NewRepoStorer wraps a TokenRepository as a TokenStorer.
func NewRepoStorer(repo db.TokenRepository) TokenStorer {
	return &tokenRepoStorer{repo: repo}
}

func (s *tokenRepoStorer) GetTokenRecord() (*db.Token, error) {
	return s.repo.Get(context.Background())
}

func (s *tokenRepoStorer) UpsertTokenRecord(token *db.Token) error {
	return s.repo.Upsert(context.Background(), token)
}

func (s *tokenRepoStorer) ClearTokenRecord() error {
	return s.repo.Clear(context.Background())
}
