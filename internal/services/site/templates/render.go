// Package templates holds the site's templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	sitei18n "github.com/louisbranch/voicebridge/internal/services/site/platform/i18n"
)

// Localizer provides translated strings for components.
type Localizer = sitei18n.Localizer

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}

// htmlWriter accumulates the first write error so components read linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (h *htmlWriter) href(value string) {
	h.attr("href", string(templ.URL(value)))
}

func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// element writes <tag attrs>text</tag> for a text-only element.
func (h *htmlWriter) element(tag, class, text string) {
	h.raw("<" + tag)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(">")
	h.text(text)
	h.raw("</" + tag + ">")
}

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}
