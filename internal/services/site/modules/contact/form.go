package contact

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// postedStep reads the step the form was rendered for.
func postedStep(form url.Values) (inquiry.Step, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(form.Get(templates.StepField)))
	if err != nil {
		return 0, false
	}
	step := inquiry.Step(n)
	return step, step.Valid()
}

// formInput records the posted fields belonging to the wizard's current step.
func formInput(form url.Values) inquiry.Input {
	return func(step inquiry.Step, draft *inquiry.Draft) {
		switch step {
		case inquiry.StepBasicInfo:
			draft.Contact = inquiry.Contact{
				Email:   form.Get(inquiry.FieldEmail),
				Name:    form.Get(inquiry.FieldName),
				Phone:   form.Get(inquiry.FieldPhone),
				Company: form.Get(inquiry.FieldCompany),
			}
		case inquiry.StepDetails:
			recordDetail(form, draft)
		case inquiry.StepConsent:
			draft.AdditionalInfo = form.Get(inquiry.FieldAdditionalInfo)
			draft.PrivacyAgreed = checked(form.Get(inquiry.FieldPrivacyAgreed))
		}
	}
}

func recordDetail(form url.Values, draft *inquiry.Draft) {
	draft.SelectSupportType(inquiry.ParseSupportType(form.Get(inquiry.FieldSupportType)))
	switch draft.SupportType() {
	case inquiry.SupportOneTime:
		draft.Detail = inquiry.OneTimeDetail{
			StartDate:    form.Get(inquiry.FieldStartDate),
			EndDate:      form.Get(inquiry.FieldEndDate),
			StartTime:    form.Get(inquiry.FieldStartTime),
			EndTime:      form.Get(inquiry.FieldEndTime),
			Venue:        form.Get(inquiry.FieldVenue),
			EventDetails: form.Get(inquiry.FieldEventDetails),
		}
	case inquiry.SupportSubscription:
		draft.Detail = inquiry.SubscriptionDetail{
			Purposes:        inquiry.NormalizePurposes(form[inquiry.FieldPurposes]),
			InstitutionInfo: form.Get(inquiry.FieldInstitutionInfo),
		}
	}
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
