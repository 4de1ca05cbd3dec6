// Package contact serves the inquiry wizard as a sequence of HTML forms.
package contact

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/services/site/module"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/flash"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/sessioncookie"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

// Module provides the contact wizard routes.
type Module struct{}

// New returns a contact module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "contact" }

// Mount wires wizard handlers under the contact prefix.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Wizard == nil {
		return module.Mount{}, errors.New("contact: wizard is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := handlers{
		wizard: deps.Wizard,
		jar:    sessioncookie.Jar{Policy: deps.SchemePolicy, MaxAge: deps.SessionTTL},
		flash:  flash.Writer{Policy: deps.SchemePolicy},
		logger: logger.Named("contact"),
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.ContactPrefix, Handler: mux}, nil
}
