// Package weberror renders localized error responses for site modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/voicebridge/internal/services/site/platform/errors"
	sitei18n "github.com/louisbranch/voicebridge/internal/services/site/platform/i18n"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/pagerender"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// ShouldRenderErrorPage reports whether status uses the full error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc sitei18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteErrorPage writes a localized 404 or 500 page.
func WriteErrorPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WritePage(w, r, pagerender.Page{
		StatusCode: statusCode,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.ErrorState(statusCode, loc)
		},
		TitleKey: errorTitleKey(statusCode),
	})
	if err != nil {
		// Headers are already written; append a plain fallback.
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}
}

// WriteError maps err to a status and writes the matching response.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderErrorPage(statusCode) {
		WriteErrorPage(w, r, statusCode)
		return
	}
	loc, _ := sitei18n.ResolveLocalizer(w, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}

func errorTitleKey(statusCode int) string {
	if statusCode == http.StatusNotFound {
		return "core.error.not_found.title"
	}
	return "core.error.server.title"
}
