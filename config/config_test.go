// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalYAML = `
database:
  path: data/mapper.db
passwords:
  global_password: shared
  admin_password: admin
data_import:
  csv_path: data/data.CSV
`

func TestParse_MinimalAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Server.SessionTTL != 7*24*time.Hour {
		t.Errorf("expected default session TTL, got %v", cfg.Server.SessionTTL)
	}
	if cfg.DataImport.Encoding != "utf-8" || cfg.DataImport.Delimiter != "," {
		t.Errorf("unexpected import defaults: %+v", cfg.DataImport)
	}
	if cfg.DataImport.CategoryColumn != "Kategorie" || cfg.DataImport.TermColumn != "Item" {
		t.Errorf("unexpected column defaults: %+v", cfg.DataImport)
	}
	if !cfg.Imprint.Enabled || !cfg.Datenschutz.Enabled || !cfg.Contact.Enabled {
		t.Error("public pages should default to enabled")
	}
	if !cfg.Contact.StoreInDB || cfg.Contact.SendEmail {
		t.Error("contact should default to store_in_db=true, send_email=false")
	}
	if cfg.Email.SMTPPort != 587 || !cfg.Email.UseTLS {
		t.Errorf("unexpected email defaults: %+v", cfg.Email)
	}
	if cfg.Datenschutz.Website != "terminology-mapper.de" {
		t.Errorf("unexpected website default %q", cfg.Datenschutz.Website)
	}
}

func TestParse_FullConfig(t *testing.T) {
	data := minimalYAML + `
server:
  port: 8080
  session_ttl: 12h
  secure_cookies: true
imprint:
  enabled: false
contact:
  enabled: true
  store_in_db: false
  send_email: true
  email: team@example.org
email:
  smtp_server: smtp.example.org
  smtp_port: 465
  username: mailer
  password: secret
  from_email: noreply@example.org
  from_name: Term Mapper
logging:
  level: debug
  format: json
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.SessionTTL != 12*time.Hour || !cfg.Server.SecureCookies {
		t.Errorf("server section not applied: %+v", cfg.Server)
	}
	if cfg.Imprint.Enabled {
		t.Error("imprint should be disabled")
	}
	if cfg.Contact.StoreInDB || !cfg.Contact.SendEmail {
		t.Errorf("contact section not applied: %+v", cfg.Contact)
	}
	if cfg.Email.SMTPPort != 465 {
		t.Errorf("expected port 465, got %d", cfg.Email.SMTPPort)
	}
	// UseTLS keeps its default because the key is absent
	if !cfg.Email.UseTLS {
		t.Error("expected use_tls default to survive partial section")
	}
	if cfg.Email.EnvelopeFrom != "noreply@example.org" {
		t.Errorf("envelope_from should default to from_email, got %q", cfg.Email.EnvelopeFrom)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging section not applied: %+v", cfg.Logging)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantMissing bool
		wantSubstr  string
	}{
		{
			name:       "invalid yaml",
			yaml:       "database: [unclosed",
			wantSubstr: "invalid YAML",
		},
		{
			name:        "missing passwords section",
			yaml:        "database:\n  path: x.db\ndata_import:\n  csv_path: d.csv\n",
			wantMissing: true,
		},
		{
			name:        "missing database section",
			yaml:        "passwords:\n  global_password: a\n  admin_password: b\ndata_import:\n  csv_path: d.csv\n",
			wantMissing: true,
		},
		{
			name:        "missing data_import section",
			yaml:        "database:\n  path: x.db\npasswords:\n  global_password: a\n  admin_password: b\n",
			wantMissing: true,
		},
		{
			name:       "empty admin password",
			yaml:       "database:\n  path: x.db\npasswords:\n  global_password: a\ndata_import:\n  csv_path: d.csv\n",
			wantSubstr: "admin_password",
		},
		{
			name:       "unknown key",
			yaml:       minimalYAML + "surprise: true\n",
			wantSubstr: "invalid YAML",
		},
		{
			name:       "bad driver",
			yaml:       strings.Replace(minimalYAML, "path: data/mapper.db", "path: data/mapper.db\n  driver: mysql", 1),
			wantSubstr: "database.driver",
		},
		{
			name:       "multi-char delimiter",
			yaml:       strings.Replace(minimalYAML, "csv_path: data/data.CSV", "csv_path: data/data.CSV\n  delimiter: ';;'", 1),
			wantSubstr: "delimiter",
		},
		{
			name:       "send_email without smtp",
			yaml:       minimalYAML + "contact:\n  send_email: true\n",
			wantSubstr: "send_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantMissing && !errors.Is(err, ErrMissingSection) {
				t.Errorf("expected ErrMissingSection, got %v", err)
			}
			if tt.wantSubstr != "" && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("expected error containing %q, got %v", tt.wantSubstr, err)
			}
		})
	}
}

func TestParse_NullOptionalSectionKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "imprint:\nlogging:\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !cfg.Imprint.Enabled {
		t.Error("null imprint section should fall back to defaults")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("null logging section should fall back to defaults, got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataImport.DelimiterRune() != ',' {
		t.Errorf("expected ',' delimiter, got %q", cfg.DataImport.DelimiterRune())
	}
}
