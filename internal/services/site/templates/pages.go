package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

// Landing renders the home page.
func Landing(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section class=\"hero\">")
		h.element("h1", "", T(loc, "site.landing.hero.heading"))
		h.element("p", "lead", T(loc, "site.landing.hero.tagline"))
		h.raw("<div class=\"actions\">")
		link(h, routepath.Contact, "button button-primary", T(loc, "site.landing.hero.cta"))
		link(h, routepath.Pricing, "button", T(loc, "site.landing.hero.secondary"))
		h.raw("</div></section>")

		h.raw("<section class=\"features\">")
		h.element("h2", "", T(loc, "site.landing.features.heading"))
		cards(h, loc, "site.landing.feature", 4)
		h.raw("</section><section class=\"usecases\">")
		h.element("h2", "", T(loc, "site.landing.usecases.heading"))
		cards(h, loc, "site.landing.usecase", 3)
		h.raw("</section>")

		h.raw("<section class=\"closing\">")
		h.element("h2", "", T(loc, "site.landing.closing.heading"))
		h.element("p", "", T(loc, "site.landing.closing.body"))
		link(h, routepath.Contact, "button button-primary", T(loc, "site.landing.closing.cta"))
		h.raw("</section>")
	})
}

var pricingPlans = []string{"onetime", "subscription", "enterprise"}

// Pricing renders the plan comparison.
func Pricing(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		pageHeading(h, loc, "site.pricing.heading", "site.pricing.subheading")
		h.raw("<div class=\"plans\">")
		for _, plan := range pricingPlans {
			prefix := "site.pricing.plan." + plan
			h.raw("<article class=\"plan\">")
			h.element("h2", "", T(loc, prefix+".name"))
			h.element("p", "price", T(loc, prefix+".price"))
			h.raw("<ul>")
			for i := 1; i <= 3; i++ {
				h.element("li", "", T(loc, prefix+".feature."+strconv.Itoa(i)))
			}
			h.raw("</ul>")
			link(h, routepath.Contact, "button", T(loc, "site.pricing.cta"))
			h.raw("</article>")
		}
		h.raw("</div>")
		h.element("p", "note", T(loc, "site.pricing.note"))
	})
}

// DownloadLink is one platform's installer link. An empty URL renders as
// unavailable.
type DownloadLink struct {
	Platform string
	URL      string
}

// Download renders the installer links.
func Download(loc Localizer, links []DownloadLink) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		pageHeading(h, loc, "site.download.heading", "site.download.subheading")
		h.raw("<ul class=\"downloads\">")
		for _, dl := range links {
			h.raw("<li class=\"download\">")
			h.element("h2", "", T(loc, "site.download.platform."+dl.Platform))
			if dl.URL == "" {
				h.element("span", "button button-disabled", T(loc, "site.download.unavailable"))
			} else {
				h.raw("<a class=\"button button-primary\" rel=\"noopener\"")
				h.href(dl.URL)
				h.raw(">")
				h.text(T(loc, "site.download.action"))
				h.raw("</a>")
			}
			h.raw("</li>")
		}
		h.raw("</ul>")
	})
}

// Team renders the team roster.
func Team(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		pageHeading(h, loc, "site.team.heading", "site.team.subheading")
		h.raw("<div class=\"team\">")
		for i := 1; i <= 4; i++ {
			prefix := "site.team.member." + strconv.Itoa(i)
			h.raw("<article class=\"member\">")
			h.element("h2", "", T(loc, prefix+".name"))
			h.element("p", "role", T(loc, prefix+".role"))
			h.element("p", "", T(loc, prefix+".bio"))
			h.raw("</article>")
		}
		h.raw("</div>")
	})
}

// PolicySectionCount is the number of sections in each policy document.
const PolicySectionCount = 5

// Policy renders a legal document; kind is "privacy" or "terms".
func Policy(loc Localizer, kind string) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		prefix := "policy." + kind
		h.raw("<article class=\"policy\">")
		h.element("h1", "", T(loc, prefix+".title"))
		h.element("p", "updated", T(loc, "policy.updated"))
		h.element("p", "lead", T(loc, prefix+".intro"))
		for i := 1; i <= PolicySectionCount; i++ {
			section := prefix + ".section." + strconv.Itoa(i)
			h.raw("<section>")
			h.element("h2", "", T(loc, section+".heading"))
			h.element("p", "", T(loc, section+".body"))
			h.raw("</section>")
		}
		h.raw("</article>")
	})
}

func pageHeading(h *htmlWriter, loc Localizer, headingKey, subheadingKey string) {
	h.raw("<header class=\"page-heading\">")
	h.element("h1", "", T(loc, headingKey))
	h.element("p", "lead", T(loc, subheadingKey))
	h.raw("</header>")
}

func cards(h *htmlWriter, loc Localizer, prefix string, count int) {
	h.raw("<div class=\"cards\">")
	for i := 1; i <= count; i++ {
		key := prefix + "." + strconv.Itoa(i)
		h.raw("<article class=\"card\">")
		h.element("h3", "", T(loc, key+".title"))
		h.element("p", "", T(loc, key+".body"))
		h.raw("</article>")
	}
	h.raw("</div>")
}

func link(h *htmlWriter, path, class, text string) {
	h.raw("<a")
	h.attr("class", class)
	h.href(path)
	h.raw(">")
	h.text(text)
	h.raw("</a>")
}
