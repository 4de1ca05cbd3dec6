package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
)

// StepField is the hidden form field echoing the rendered wizard step.
const StepField = "step"

// ContactView is the form state of one wizard render.
type ContactView struct {
	Step         inquiry.Step
	Draft        inquiry.Draft
	InvalidField string
	Submitting   bool
}

// Contact renders the inquiry wizard at its current step.
func Contact(loc Localizer, view ContactView) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section class=\"contact\">")
		pageHeading(h, loc, "inquiry.heading", "inquiry.subheading")
		progress(h, loc, view.Step)

		h.raw("<form class=\"wizard\" method=\"post\" novalidate")
		h.attr("action", routepath.ContactNext)
		h.raw("><input type=\"hidden\"")
		h.attr("name", StepField)
		h.attr("value", strconv.Itoa(int(view.Step)))
		h.raw(">")
		h.raw("<fieldset")
		h.flag("disabled", view.Submitting)
		h.raw(">")
		h.element("legend", "", T(loc, "inquiry.step."+strconv.Itoa(int(view.Step))))
		switch view.Step {
		case inquiry.StepDetails:
			detailsStep(h, loc, view)
		case inquiry.StepConsent:
			consentStep(h, loc, view)
		default:
			basicInfoStep(h, loc, view)
		}
		h.raw("</fieldset>")
		wizardActions(h, loc, view)
		h.raw("</form>")

		h.raw("<form class=\"wizard-reset\" method=\"post\"")
		h.attr("action", routepath.ContactReset)
		h.raw("><button type=\"submit\" class=\"button button-link\"")
		h.flag("disabled", view.Submitting)
		h.raw(">")
		h.text(T(loc, "inquiry.action.reset"))
		h.raw("</button></form></section>")
	})
}

func progress(h *htmlWriter, loc Localizer, current inquiry.Step) {
	h.raw("<ol class=\"wizard-progress\"")
	h.attr("aria-label", T(loc, "inquiry.step.progress", int(current), inquiry.StepCount))
	h.raw(">")
	for step := inquiry.StepBasicInfo; step <= inquiry.StepConsent; step++ {
		class := "wizard-step"
		switch {
		case step == current:
			class += " is-current"
		case step < current:
			class += " is-done"
		}
		h.raw("<li")
		h.attr("class", class)
		if step == current {
			h.attr("aria-current", "step")
		}
		h.raw(">")
		h.text(T(loc, "inquiry.step."+strconv.Itoa(int(step))))
		h.raw("</li>")
	}
	h.raw("</ol>")
}

func basicInfoStep(h *htmlWriter, loc Localizer, view ContactView) {
	c := view.Draft.Contact
	input(h, loc, view, "email", inquiry.FieldEmail, c.Email, true)
	input(h, loc, view, "text", inquiry.FieldName, c.Name, true)
	input(h, loc, view, "tel", inquiry.FieldPhone, c.Phone, true)
	input(h, loc, view, "text", inquiry.FieldCompany, c.Company, false)
}

func detailsStep(h *htmlWriter, loc Localizer, view ContactView) {
	selected := view.Draft.SupportType()
	h.raw("<div class=\"support-types\" role=\"radiogroup\"")
	h.attr("aria-label", T(loc, "inquiry.field.support_type"))
	if view.InvalidField == inquiry.FieldSupportType {
		h.attr("aria-invalid", "true")
	}
	h.raw(">")
	supportOption(h, loc, inquiry.SupportOneTime, "inquiry.support.one_time", selected)
	supportOption(h, loc, inquiry.SupportSubscription, "inquiry.support.subscription", selected)
	h.raw("</div>")

	oneTime, _ := view.Draft.OneTime()
	h.raw("<div class=\"branch branch-one-time\"")
	h.attr("data-support-type", string(inquiry.SupportOneTime))
	h.flag("hidden", selected == inquiry.SupportSubscription)
	h.raw(">")
	input(h, loc, view, "date", inquiry.FieldStartDate, oneTime.StartDate, true)
	input(h, loc, view, "date", inquiry.FieldEndDate, oneTime.EndDate, true)
	input(h, loc, view, "time", inquiry.FieldStartTime, oneTime.StartTime, false)
	input(h, loc, view, "time", inquiry.FieldEndTime, oneTime.EndTime, false)
	input(h, loc, view, "text", inquiry.FieldVenue, oneTime.Venue, true)
	textarea(h, loc, view, inquiry.FieldEventDetails, oneTime.EventDetails, false)
	h.raw("</div>")

	subscription, _ := view.Draft.Subscription()
	h.raw("<div class=\"branch branch-subscription\"")
	h.attr("data-support-type", string(inquiry.SupportSubscription))
	h.flag("hidden", selected == inquiry.SupportOneTime)
	h.raw("><fieldset class=\"purposes\"><legend>")
	h.text(T(loc, "inquiry.field.purposes"))
	h.raw(" <small>")
	h.text(T(loc, "inquiry.field.optional"))
	h.raw("</small></legend>")
	checked := make(map[inquiry.Purpose]bool, len(subscription.Purposes))
	for _, purpose := range subscription.Purposes {
		checked[purpose] = true
	}
	for _, purpose := range inquiry.Purposes() {
		h.raw("<label class=\"check\"><input type=\"checkbox\"")
		h.attr("name", inquiry.FieldPurposes)
		h.attr("value", string(purpose))
		h.flag("checked", checked[purpose])
		h.raw("> ")
		h.text(T(loc, "inquiry.purpose."+string(purpose)))
		h.raw("</label>")
	}
	h.raw("</fieldset>")
	textarea(h, loc, view, inquiry.FieldInstitutionInfo, subscription.InstitutionInfo, true)
	h.raw("</div>")
}

func supportOption(h *htmlWriter, loc Localizer, value inquiry.SupportType, key string, selected inquiry.SupportType) {
	h.raw("<label class=\"support-type\"><input type=\"radio\"")
	h.attr("name", inquiry.FieldSupportType)
	h.attr("value", string(value))
	h.flag("checked", value == selected)
	h.raw("> <strong>")
	h.text(T(loc, key))
	h.raw("</strong> <span>")
	h.text(T(loc, key+".hint"))
	h.raw("</span></label>")
}

func consentStep(h *htmlWriter, loc Localizer, view ContactView) {
	textarea(h, loc, view, inquiry.FieldAdditionalInfo, view.Draft.AdditionalInfo, false)
	h.raw("<label class=\"check consent\"><input type=\"checkbox\" value=\"true\"")
	h.attr("name", inquiry.FieldPrivacyAgreed)
	h.flag("checked", view.Draft.PrivacyAgreed)
	if view.InvalidField == inquiry.FieldPrivacyAgreed {
		h.attr("aria-invalid", "true")
	}
	h.raw("> ")
	h.text(T(loc, "inquiry.field.privacy_agreed"))
	h.raw("</label> <a target=\"_blank\" rel=\"noopener\"")
	h.href(routepath.PolicyPrivacy)
	h.raw(">")
	h.text(T(loc, "inquiry.privacy.link"))
	h.raw("</a>")
}

// wizardActions emits the forward action first so Enter in a text field
// moves forward; CSS places the back button before it.
func wizardActions(h *htmlWriter, loc Localizer, view ContactView) {
	h.raw("<div class=\"actions\">")
	if view.Step == inquiry.StepConsent {
		h.raw("<button type=\"submit\" class=\"button button-primary\"")
		h.attr("formaction", routepath.ContactSubmit)
		h.flag("disabled", view.Submitting)
		h.raw(">")
		if view.Submitting {
			h.text(T(loc, "inquiry.action.submitting"))
		} else {
			h.text(T(loc, "inquiry.action.submit"))
		}
		h.raw("</button>")
	} else {
		h.raw("<button type=\"submit\" class=\"button button-primary\">")
		h.text(T(loc, "inquiry.action.next"))
		h.raw("</button>")
	}
	if view.Step > inquiry.StepBasicInfo {
		h.raw("<button type=\"submit\" class=\"button button-back\" formnovalidate")
		h.attr("formaction", routepath.ContactPrevious)
		h.flag("disabled", view.Submitting)
		h.raw(">")
		h.text(T(loc, "inquiry.action.previous"))
		h.raw("</button>")
	}
	h.raw("</div>")
}

func fieldLabel(h *htmlWriter, loc Localizer, field string, required bool) {
	h.raw("<label")
	h.attr("for", "field-"+field)
	h.raw(">")
	h.text(T(loc, "inquiry.field."+field))
	if !required {
		h.raw(" <small>")
		h.text(T(loc, "inquiry.field.optional"))
		h.raw("</small>")
	}
	h.raw("</label>")
}

func fieldAttrs(h *htmlWriter, view ContactView, field string, required bool) {
	h.attr("id", "field-"+field)
	h.attr("name", field)
	h.flag("required", required)
	if view.InvalidField == field {
		h.attr("aria-invalid", "true")
		h.flag("autofocus", true)
	}
}

func input(h *htmlWriter, loc Localizer, view ContactView, kind, field, value string, required bool) {
	h.raw("<div class=\"field\">")
	fieldLabel(h, loc, field, required)
	h.raw("<input")
	h.attr("type", kind)
	fieldAttrs(h, view, field, required)
	h.attr("value", value)
	h.raw("></div>")
}

func textarea(h *htmlWriter, loc Localizer, view ContactView, field, value string, required bool) {
	h.raw("<div class=\"field\">")
	fieldLabel(h, loc, field, required)
	h.raw("<textarea rows=\"4\"")
	fieldAttrs(h, view, field, required)
	h.raw(">")
	h.text(value)
	h.raw("</textarea></div>")
}
