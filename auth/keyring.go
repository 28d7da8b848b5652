// Package auth provides a high-level API for persisting and retrieving user credentials from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	service = "storyline-cli"
	user    = "session-token"
)

// SetToken persists the stories service session token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(service, user, token)
}

// Token retrieves the stories service session token from the system keyring.
func Token() (string, error) {
	return keyring.Get(service, user)
}

// DeleteToken removes the stories service session token from the system keyring.
func DeleteToken() error {
	return keyring.Delete(service, user)
}
