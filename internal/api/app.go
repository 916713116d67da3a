package api

import (
	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/backend"
	"github.com/JoelCyril/Pulso.ai/internal/chat"
	"github.com/JoelCyril/Pulso.ai/internal/service"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

type App interface {
	Logger() internal.Logger
	Store() *store.ProfileStore
	Onboarding() *service.OnboardingManager
	Assistant() *chat.Assistant
	Backend() *backend.Client
}

// Application is the concrete App wired up in main and in tests.
type Application struct {
	Log       internal.Logger
	Profiles  *store.ProfileStore
	Flows     *service.OnboardingManager
	Bot       *chat.Assistant
	HealthAPI *backend.Client
}

func (a *Application) Logger() internal.Logger                { return a.Log }
func (a *Application) Store() *store.ProfileStore             { return a.Profiles }
func (a *Application) Onboarding() *service.OnboardingManager { return a.Flows }
func (a *Application) Assistant() *chat.Assistant             { return a.Bot }
func (a *Application) Backend() *backend.Client               { return a.HealthAPI }

var _ App = (*Application)(nil)
