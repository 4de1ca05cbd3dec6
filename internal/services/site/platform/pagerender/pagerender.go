// Package pagerender centralizes full-page rendering for site modules.
package pagerender

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/voicebridge/internal/services/site/platform/flash"
	sitei18n "github.com/louisbranch/voicebridge/internal/services/site/platform/i18n"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// Page describes one module page response.
type Page struct {
	// TitleKey is the catalog key of the page title.
	TitleKey   string
	StatusCode int
	Fragment   templ.Component
	// Body builds the fragment with the resolved localizer when Fragment is nil.
	Body   func(loc templates.Localizer) templ.Component
	Notice *flash.Notice
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout in the request's language.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	loc, lang := sitei18n.ResolveLocalizer(w, r)
	fragment := page.Fragment
	if fragment == nil && page.Body != nil {
		fragment = page.Body(loc)
	}
	if fragment == nil {
		fragment = emptyComponent{}
	}

	layout := templates.Layout(templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		Title:        titleFor(loc, page.TitleKey),
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
		Toast:        ToastFor(loc, page.Notice),
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	return layout.Render(templ.WithChildren(requestContext(r), fragment), w)
}

// ToastFor localizes a notice; a server-provided message wins over its key.
func ToastFor(loc templates.Localizer, notice *flash.Notice) *templates.Toast {
	if notice == nil {
		return nil
	}
	text := notice.Message
	if text == "" && notice.Key != "" {
		text = templates.T(loc, notice.Key)
	}
	if text == "" {
		return nil
	}
	kind := string(notice.Kind)
	if kind == "" {
		kind = string(flash.KindInfo)
	}
	return &templates.Toast{Kind: kind, Text: text}
}

func titleFor(loc templates.Localizer, key string) string {
	if key == "" {
		return ""
	}
	return templates.T(loc, key)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
