// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Term Mapper server.

Term Mapper is a small web application where a group of raters maps
free-text medical terms to classification codes. Users log in with a
shared password, work through batches of terms that have the fewest
ratings so far, and an administrator exports the collected mappings
as CSV.

# Starting the Server

The server reads a YAML config file:

	go run . -c config.yaml

Flags and environment:

  - -c / CONFIG_PATH: path to config.yaml (default: config.yaml)
  - -p / PORT: listen port, overrides server.port
  - -env: dotenv file loaded before the environment is read (default: .env)

See config.example.yaml for every section.

# Startup

  1. Load config and set up slog (optionally rotating to a file)
  2. Open SQLite or PostgreSQL and apply the embedded migrations
  3. Import terms from the configured CSV or XLSX file when the table is empty
  4. Start the expired browser session janitor
  5. Serve HTTP until SIGINT or SIGTERM, then shut down gracefully

# Architecture

  - handlers: HTTP request handlers (auth, dashboard, sessions, admin, contact, pages)
  - router: Route table and site-wide middleware
  - middleware: Request logging, access gates, headers, form helpers
  - store: All domain SQL
  - session: Database backed browser sessions and their janitor
  - importer: Term import with encoding detection
  - mailer: Contact form notifications over SMTP
  - views: Embedded HTML templates and stylesheet
  - config, cliparse, logging, db: Ambient setup
  - models: Domain and aggregate types
  - auth: Token generation and secret comparison

See package documentation for each component.
*/
package main
