package pages

import (
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/services/site/platform/httpx"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/pagerender"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/weberror"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

var policyTitles = map[string]string{
	"privacy": "policy.privacy.title",
	"terms":   "policy.terms.title",
}

type handlers struct {
	downloads []templates.DownloadLink
	logger    *zap.Logger
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "site.landing.title", templates.Landing)
}

func (h handlers) handlePricing(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "site.pricing.title", templates.Pricing)
}

func (h handlers) handleDownload(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "site.download.title", func(loc templates.Localizer) templ.Component {
		return templates.Download(loc, h.downloads)
	})
}

func (h handlers) handleTeam(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "site.team.title", templates.Team)
}

func (h handlers) handlePolicy(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	title, ok := policyTitles[kind]
	if !ok {
		weberror.WriteErrorPage(w, r, http.StatusNotFound)
		return
	}
	h.write(w, r, title, func(loc templates.Localizer) templ.Component {
		return templates.Policy(loc, kind)
	})
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteText(w, http.StatusOK, "ok")
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteErrorPage(w, r, http.StatusNotFound)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, titleKey string, body func(templates.Localizer) templ.Component) {
	err := pagerender.WritePage(w, r, pagerender.Page{TitleKey: titleKey, Body: body})
	if err != nil {
		h.logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
