package templates

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	sitei18n "github.com/louisbranch/voicebridge/internal/services/site/platform/i18n"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

// Toast is a rendered notification.
type Toast struct {
	Kind string
	Text string
}

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	Title        string
	CurrentPath  string
	CurrentQuery string
	Toast        *Toast
}

type navLink struct {
	path string
	key  string
}

var navLinks = []navLink{
	{path: routepath.Root, key: "core.nav.home"},
	{path: routepath.Pricing, key: "core.nav.pricing"},
	{path: routepath.Download, key: "core.nav.download"},
	{path: routepath.Team, key: "core.nav.team"},
	{path: routepath.Contact, key: "core.nav.contact"},
}

// PageTitle joins a page title with the brand name.
func PageTitle(loc Localizer, title string) string {
	brand := T(loc, "core.brand")
	title = strings.TrimSpace(title)
	if title == "" {
		return brand
	}
	return title + " | " + brand
}

// Layout renders the document shell around its children.
func Layout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", page.Lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<meta name=\"description\"")
		h.attr("content", T(page.Loc, "core.meta.description"))
		h.raw("><title>")
		h.text(PageTitle(page.Loc, page.Title))
		h.raw("</title><link rel=\"stylesheet\"")
		h.href(routepath.StaticPrefix + "site.css")
		h.raw("></head><body>")

		header(page, h)
		if page.Toast != nil {
			toast(page.Loc, *page.Toast, h)
		}
		h.raw("<main class=\"main\">")
		h.component(ctx, templ.GetChildren(ctx))
		h.raw("</main>")
		footer(page, h)
		h.raw("</body></html>")
	})
}

func header(page PageContext, h *htmlWriter) {
	h.raw("<header class=\"site-header\"><a class=\"brand\"")
	h.href(routepath.Root)
	h.raw(">")
	h.text(T(page.Loc, "core.brand"))
	h.raw("</a><nav class=\"site-nav\"><ul>")
	for _, link := range navLinks {
		h.raw("<li><a")
		h.href(link.path)
		if isActive(page.CurrentPath, link.path) {
			h.attr("aria-current", "page")
		}
		h.raw(">")
		h.text(T(page.Loc, link.key))
		h.raw("</a></li>")
	}
	h.raw("</ul></nav><nav class=\"lang-switcher\"")
	h.attr("aria-label", T(page.Loc, "core.nav.language"))
	h.raw("><ul>")
	for _, option := range sitei18n.LanguageOptions(page.Loc, page.Lang, page.CurrentPath, page.CurrentQuery) {
		h.raw("<li><a")
		h.href(option.URL)
		h.attr("hreflang", option.Tag)
		if option.Active {
			h.attr("aria-current", "true")
		}
		h.raw(">")
		h.text(option.Label)
		h.raw("</a></li>")
	}
	h.raw("</ul></nav></header>")
}

func toast(loc Localizer, t Toast, h *htmlWriter) {
	role := "status"
	if t.Kind == "error" || t.Kind == "warning" {
		role = "alert"
	}
	h.raw("<div")
	h.attr("class", "toast toast-"+t.Kind)
	h.attr("role", role)
	h.raw("><p>")
	h.text(t.Text)
	h.raw("</p><a class=\"toast-dismiss\" href=\"#\">")
	h.text(T(loc, "core.toast.dismiss"))
	h.raw("</a></div>")
}

func footer(page PageContext, h *htmlWriter) {
	h.raw("<footer class=\"site-footer\"><p>&copy; ")
	h.text(strconv.Itoa(time.Now().Year()))
	h.raw(" ")
	h.text(T(page.Loc, "core.footer.rights"))
	h.raw("</p><ul><li><a")
	h.href(routepath.PolicyPrivacy)
	h.raw(">")
	h.text(T(page.Loc, "core.footer.privacy"))
	h.raw("</a></li><li><a")
	h.href(routepath.PolicyTerms)
	h.raw(">")
	h.text(T(page.Loc, "core.footer.terms"))
	h.raw("</a></li></ul></footer>")
}

func isActive(current, link string) bool {
	if link == routepath.Root {
		return current == routepath.Root
	}
	return current == link || strings.HasPrefix(current, link+"/")
}
