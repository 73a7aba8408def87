// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/models"
)

// Page data

type LoginPage struct {
	Error    string
	Username string
}

type DashboardPage struct {
	Username     string
	Stats        *models.UserStats
	Progress     *models.OverallProgress
	Leaderboard  []models.LeaderboardEntry
	CanResume    bool
	DefaultCount int
	MaxCount     int
}

type SessionPage struct {
	Term     *models.Term
	Current  int
	Total    int
	Progress int
}

type CompletePage struct {
	MappingsCount int
}

type AdminLoginPage struct {
	Error string
}

type AdminConsolePage struct {
	Overview *models.AdminOverview
	Message  string
}

type AdminMessagesPage struct {
	Messages []models.ContactMessage
}

type ContactPage struct {
	Contact config.ContactConfig
	Success bool
	Error   string
	Form    models.ContactMessage
}

type ImprintPage struct {
	Imprint config.ImprintConfig
}

type DatenschutzPage struct {
	Datenschutz config.DatenschutzConfig
}

type ErrorPage struct {
	Status  int
	Message string
}
