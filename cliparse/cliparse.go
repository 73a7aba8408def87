package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Options struct {
	ConfigPath string
	Port       int
	EnvFile    string
}

// ParseFlags reads CLI flags and falls back to environment variables.
// A dotenv file is loaded first so its values act as env defaults.
func ParseFlags(args []string) (Options, error) {
	var opts Options

	fs := flag.NewFlagSet("term-mapper", flag.ContinueOnError)

	fs.StringVar(&opts.ConfigPath, "c", "", "Path to config.yaml")
	fs.IntVar(&opts.Port, "p", 0, "Server port (overrides config)")
	fs.StringVar(&opts.EnvFile, "env", ".env", "Dotenv file to load before reading env")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	// Missing dotenv file is fine; real env always wins over it
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Options{}, err
		}
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = os.Getenv("CONFIG_PATH")
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.yaml"
	}

	if opts.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Options{}, errors.New("invalid PORT env variable")
			}
			opts.Port = port
		}
	}
	if opts.Port < 0 || opts.Port > 65535 {
		return Options{}, errors.New("port out of range")
	}

	return opts, nil
}
