package pages

import (
	"net/http"

	"github.com/louisbranch/voicebridge/internal/services/site/platform/httpx"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleLanding)
	mux.HandleFunc(http.MethodGet+" "+routepath.Pricing, h.handlePricing)
	mux.HandleFunc(http.MethodGet+" "+routepath.Download, h.handleDownload)
	mux.HandleFunc(http.MethodGet+" "+routepath.Team, h.handleTeam)
	mux.HandleFunc(http.MethodGet+" "+routepath.PolicyPrefix+"{kind}", h.handlePolicy)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.Handle(routepath.Root, httpx.AllowMethods(http.MethodGet, http.MethodHead)(http.HandlerFunc(h.handleNotFound)))
}
