// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements server-side browser sessions.

The cookie (tm_session) holds only a random token. The browser_sessions
row keyed by the token's SHA-256 carries the logged-in user, the admin
flag and the id of the rating session in progress. The term list and
cursor of a rating session live in the store, not here.

# Lifecycle

	d := session.FromContext(r.Context())  // loaded by Manager.Middleware
	d.UserID, d.Username = user.ID, user.Username
	err := manager.Rotate(ctx, w, d)       // new token on login
	err = manager.Save(ctx, w, d)          // persist and extend expiry
	err = manager.Destroy(ctx, w, d)       // logout

Each Save pushes the expiry out by server.session_ttl. A Janitor deletes
expired rows on an hourly gocron schedule.
*/
package session
