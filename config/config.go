// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrMissingSection = errors.New("missing required config section")

// DefaultSessionTTL is the browser session lifetime when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Passwords   PasswordsConfig
	DataImport  DataImportConfig
	Imprint     ImprintConfig
	Datenschutz DatenschutzConfig
	Contact     ContactConfig
	Email       EmailConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`   // file path for sqlite, DSN for postgres
}

type PasswordsConfig struct {
	GlobalPassword string `yaml:"global_password"`
	AdminPassword  string `yaml:"admin_password"`
}

type DataImportConfig struct {
	CSVPath        string `yaml:"csv_path"`
	Encoding       string `yaml:"encoding"`
	Delimiter      string `yaml:"delimiter"`
	CategoryColumn string `yaml:"category_column"`
	TermColumn     string `yaml:"term_column"`
	Sheet          string `yaml:"sheet"`
}

type ImprintConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Name           string   `yaml:"name"`
	Address        []string `yaml:"address"`
	Email          string   `yaml:"email"`
	Phone          string   `yaml:"phone"`
	Representative string   `yaml:"representative"`
	Content        string   `yaml:"content"`
}

type DatenschutzConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Website     string `yaml:"website"`
	Responsible string `yaml:"responsible"`
	Email       string `yaml:"email"`
	Hosting     string `yaml:"hosting"`
	LastUpdated string `yaml:"last_updated"`
	Content     string `yaml:"content"`
}

type ContactConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StoreInDB bool   `yaml:"store_in_db"`
	SendEmail bool   `yaml:"send_email"`
	Email     string `yaml:"email"`
	Intro     string `yaml:"intro"`
}

type EmailConfig struct {
	SMTPServer   string `yaml:"smtp_server"`
	SMTPPort     int    `yaml:"smtp_port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	EnvelopeFrom string `yaml:"envelope_from"`
	UseTLS       bool   `yaml:"use_tls"`
	UseSSL       bool   `yaml:"use_ssl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // optional rotating log file
}

// fileConfig mirrors the YAML layout. Sections are pointers so a missing
// section can be told apart from an empty one.
type fileConfig struct {
	Server      *ServerConfig      `yaml:"server"`
	Database    *DatabaseConfig    `yaml:"database"`
	Passwords   *PasswordsConfig   `yaml:"passwords"`
	DataImport  *DataImportConfig  `yaml:"data_import"`
	Imprint     *ImprintConfig     `yaml:"imprint"`
	Datenschutz *DatenschutzConfig `yaml:"datenschutz"`
	Contact     *ContactConfig     `yaml:"contact"`
	Email       *EmailConfig       `yaml:"email"`
	Logging     *LoggingConfig     `yaml:"logging"`
}

// Load reads and validates the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes, applies defaults and validates required values.
func Parse(data []byte) (*Config, error) {
	fc := defaultFileConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("invalid YAML in config file: %w", err)
	}

	if fc.Database == nil {
		return nil, fmt.Errorf("%w: database", ErrMissingSection)
	}
	if fc.Passwords == nil {
		return nil, fmt.Errorf("%w: passwords", ErrMissingSection)
	}
	if fc.DataImport == nil {
		return nil, fmt.Errorf("%w: data_import", ErrMissingSection)
	}
	fc.fillNilSections()

	cfg := &Config{
		Server:      *fc.Server,
		Database:    *fc.Database,
		Passwords:   *fc.Passwords,
		DataImport:  *fc.DataImport,
		Imprint:     *fc.Imprint,
		Datenschutz: *fc.Datenschutz,
		Contact:     *fc.Contact,
		Email:       *fc.Email,
		Logging:     *fc.Logging,
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultFileConfig pre-populates optional sections. yaml.v3 decodes into
// existing pointers, so keys absent from the file keep these values.
func defaultFileConfig() fileConfig {
	return fileConfig{
		Server: &ServerConfig{
			Port:       5000,
			SessionTTL: DefaultSessionTTL,
		},
		Imprint:     &ImprintConfig{Enabled: true},
		Datenschutz: &DatenschutzConfig{Enabled: true, Website: "terminology-mapper.de"},
		Contact:     &ContactConfig{Enabled: true, StoreInDB: true},
		Email:       &EmailConfig{SMTPPort: 587, UseTLS: true},
		Logging:     &LoggingConfig{Level: "info", Format: "text"},
	}
}

// fillNilSections restores defaults for optional sections written as an
// empty key (which YAML decodes to null).
func (fc *fileConfig) fillNilSections() {
	def := defaultFileConfig()
	if fc.Server == nil {
		fc.Server = def.Server
	}
	if fc.Imprint == nil {
		fc.Imprint = def.Imprint
	}
	if fc.Datenschutz == nil {
		fc.Datenschutz = def.Datenschutz
	}
	if fc.Contact == nil {
		fc.Contact = def.Contact
	}
	if fc.Email == nil {
		fc.Email = def.Email
	}
	if fc.Logging == nil {
		fc.Logging = def.Logging
	}
}

func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.DataImport.Encoding == "" {
		c.DataImport.Encoding = "utf-8"
	}
	if c.DataImport.Delimiter == "" {
		c.DataImport.Delimiter = ","
	}
	if c.DataImport.CategoryColumn == "" {
		c.DataImport.CategoryColumn = "Kategorie"
	}
	if c.DataImport.TermColumn == "" {
		c.DataImport.TermColumn = "Item"
	}
	if c.Email.EnvelopeFrom == "" {
		c.Email.EnvelopeFrom = c.Email.FromEmail
	}
	if c.Server.SessionTTL <= 0 {
		c.Server.SessionTTL = DefaultSessionTTL
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path is required")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Passwords.GlobalPassword == "" {
		return errors.New("passwords.global_password is required")
	}
	if c.Passwords.AdminPassword == "" {
		return errors.New("passwords.admin_password is required")
	}
	if strings.TrimSpace(c.DataImport.CSVPath) == "" {
		return errors.New("data_import.csv_path is required")
	}
	if len([]rune(c.DataImport.Delimiter)) != 1 {
		return fmt.Errorf("data_import.delimiter must be a single character, got %q", c.DataImport.Delimiter)
	}
	if c.Contact.Enabled && c.Contact.SendEmail {
		if c.Email.SMTPServer == "" || c.Email.FromEmail == "" || c.Contact.Email == "" {
			return errors.New("contact.send_email requires email.smtp_server, email.from_email and contact.email")
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// DelimiterRune returns the import delimiter as a rune.
// Falls back to ',' when the delimiter is empty.
func (c DataImportConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}
