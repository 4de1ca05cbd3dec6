package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

// ErrorPageTitle returns the browser title for an error page.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, errorKey(statusCode)+".title")
}

// ErrorState renders the body of a 404 or 500 page.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		key := errorKey(statusCode)
		h.raw("<section class=\"error-state\">")
		h.element("h1", "", T(loc, key+".title"))
		h.element("p", "", T(loc, key+".message"))
		link(h, routepath.Root, "button", T(loc, "core.error.back_home"))
		h.raw("</section>")
	})
}

func errorKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "core.error.not_found"
	}
	return "core.error.server"
}
