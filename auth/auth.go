// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSecret = errors.New("invalid secret")
	ErrInvalidToken  = errors.New("invalid token format")
)

// sessionTokenBytes is the entropy of a browser session token (192 bits)
const sessionTokenBytes = 24

// GenerateSessionToken creates a random cookie value for a browser session
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSessionToken checks that a cookie value has the shape
// GenerateSessionToken produces
func ValidateSessionToken(token string) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) != sessionTokenBytes {
		return ErrInvalidToken
	}
	return nil
}

// HashToken returns the hex SHA-256 of a session token. Only the hash is
// stored, so a copy of the database cannot be replayed as cookies.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CheckSecret compares a submitted password against the configured one in
// constant time. Both sides are hashed first so their lengths don't leak.
func CheckSecret(provided, expected string) error {
	p := sha256.Sum256([]byte(provided))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(p[:], e[:]) {
		return ErrInvalidSecret
	}
	return nil
}
