// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mailer sends contact form notifications as multipart text and
// HTML mail via go-mail.
package mailer
