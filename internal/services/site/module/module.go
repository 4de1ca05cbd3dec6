// Package module defines the contract between the site composer and its
// feature modules.
package module

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/requestmeta"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// Wizard is the inquiry wizard as driven by the contact surface.
type Wizard interface {
	State(ctx context.Context, id string) (inquiry.State, error)
	Next(ctx context.Context, id string, input inquiry.Input) (inquiry.State, error)
	Previous(ctx context.Context, id string, input inquiry.Input) (inquiry.State, error)
	Submit(ctx context.Context, id string, input inquiry.Input, notify inquiry.Notifier) (inquiry.State, error)
	Reset(ctx context.Context, id string) error
}

// Dependencies carries shared collaborators into modules.
type Dependencies struct {
	Wizard       Wizard
	Downloads    []templates.DownloadLink
	SchemePolicy requestmeta.SchemePolicy
	// SessionTTL bounds the wizard cookie lifetime; zero keeps it for the
	// browser session.
	SessionTTL time.Duration
	Logger     *zap.Logger
}

// Mount is one module's routing contribution.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is a mountable feature area.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
