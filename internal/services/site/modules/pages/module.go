// Package pages serves the site's static localized pages.
package pages

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/services/site/module"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// Module provides the public marketing pages.
type Module struct{}

// New returns a pages module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires page handlers under the root prefix.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := handlers{
		downloads: downloadLinks(deps.Downloads),
		logger:    logger.Named("pages"),
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

// Platforms lists the download platforms in display order.
var Platforms = []string{"windows", "macos", "ios", "android"}

// downloadLinks returns one link per known platform, keeping configured URLs.
func downloadLinks(configured []templates.DownloadLink) []templates.DownloadLink {
	urls := make(map[string]string, len(configured))
	for _, link := range configured {
		urls[link.Platform] = link.URL
	}
	links := make([]templates.DownloadLink, 0, len(Platforms))
	for _, platform := range Platforms {
		links = append(links, templates.DownloadLink{Platform: platform, URL: urls[platform]})
	}
	return links
}
