package auth

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lexibel/lexctl/db"
	"github.com/zalando/go-keyring"
)

const keyringService = "lexctl"

// KeyringStorer keeps the token pair in the OS keyring instead of the SQLite
// database. Selected with the `auth.storage: keyring` config option.
type KeyringStorer struct {
	account string
}

var _ TokenStorer = (*KeyringStorer)(nil)

// NewKeyringStorer creates a KeyringStorer for the given account identifier
// (typically the login email).
func NewKeyringStorer(account string) (*KeyringStorer, error) {
	if account == "" {
		return nil, fmt.Errorf("keyring account cannot be empty")
	}
	return &KeyringStorer{account: account}, nil
}

func (k *KeyringStorer) GetTokenRecord() (*db.Token, error) {
	secret, err := keyring.Get(keyringService, k.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token from keyring: %w", err)
	}
	var token db.Token
	if err := json.Unmarshal([]byte(secret), &token); err != nil {
		return nil, fmt.Errorf("failed to decode keyring token record: %w", err)
	}
	return &token, nil
}

func (k *KeyringStorer) UpsertTokenRecord(token *db.Token) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}
	if err := keyring.Set(keyringService, k.account, string(payload)); err != nil {
		return fmt.Errorf("failed to write token to keyring: %w", err)
	}
	return nil
}

func (k *KeyringStorer) ClearTokenRecord() error {
	if err := keyring.Delete(keyringService, k.account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear keyring token: %w", err)
	}
	return nil
}
