// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides secret comparison and token generation utilities.

# Shared Secrets

Users log in with one shared password and the admin console has its own.
Both are checked with CheckSecret, which hashes each side and compares the
digests with hmac.Equal:

	if err := auth.CheckSecret(form.Password, cfg.Passwords.GlobalPassword); err != nil {
		// ErrInvalidSecret
	}

# Session Tokens

Browser session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded and travel in the session cookie.
ValidateSessionToken rejects malformed cookie values before any database
lookup. The database keys sessions by HashToken(token), never the token.
*/
package auth
