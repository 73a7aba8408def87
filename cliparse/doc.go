// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing.

Everything except the config file location and the listen port lives in
config.yaml (see package config). ParseFlags only decides where to find it.

# CLI Flags

	-c    Path to config.yaml
	-p    Server port (overrides server.port in the config file)
	-env  Dotenv file loaded before env lookups (default: .env)

# Environment Variables

	CONFIG_PATH → -c
	PORT        → -p

CLI flags take precedence over environment variables, and real environment
variables take precedence over values from the dotenv file.

# Example

	opts, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load(opts.ConfigPath)
*/
package cliparse
