package cli

import (
	"github.com/adspro/autopilot/internal/automation/application"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Automation Service
	AutomationService *application.Service

	// Current organization (configured per environment)
	OrganizationID uuid.UUID
}

// NewApp creates a new CLI application.
func NewApp(automationService *application.Service, orgID uuid.UUID) *App {
	return &App{
		AutomationService: automationService,
		OrganizationID:    orgID,
	}
}

// app is the global application instance used by commands.
var app *App

// SetApp sets the global application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global application instance.
func GetApp() *App {
	return app
}
