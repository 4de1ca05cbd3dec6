package inquiry

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// Field names used by validation errors and form inputs.
const (
	FieldEmail           = "email"
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldCompany         = "company"
	FieldSupportType     = "support_type"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldVenue           = "venue"
	FieldEventDetails    = "event_details"
	FieldPurposes        = "purposes"
	FieldInstitutionInfo = "institution_info"
	FieldAdditionalInfo  = "additional_info"
	FieldPrivacyAgreed   = "privacy_agreed"
)

// DateLayout is the wire and form layout of event dates.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.(?:[a-z]{2,}|xn--[a-z0-9\-]+)$`)

// ValidationError is a recoverable input failure. Key is a catalog message
// key; Message is the English fallback.
type ValidationError struct {
	Field   string
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, key, message string) error {
	return &ValidationError{Field: field, Key: key, Message: message}
}

// AsValidationError unwraps err into a ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// ValidEmail reports whether value looks like local@domain.tld. Internationalized
// domains are compared in their ASCII form.
func ValidEmail(value string) bool {
	value = strings.TrimSpace(value)
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	local, domain := value[:at], value[at+1:]
	if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
		domain = ascii
	}
	return emailPattern.MatchString(local + "@" + domain)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidateBasicInfo checks step 1, stopping at the first failure.
func ValidateBasicInfo(c Contact) error {
	switch {
	case blank(c.Email):
		return invalid(FieldEmail, "inquiry.error.email_required", "email is required.")
	case blank(c.Name):
		return invalid(FieldName, "inquiry.error.name_required", "name is required.")
	case blank(c.Phone):
		return invalid(FieldPhone, "inquiry.error.phone_required", "phone is required.")
	case !ValidEmail(c.Email):
		return invalid(FieldEmail, "inquiry.error.email_invalid", "invalid email format.")
	}
	return nil
}

// ValidateDetail checks step 2 for the branch selected by the detail.
func ValidateDetail(detail Detail) error {
	switch d := detail.(type) {
	case OneTimeDetail:
		return validateOneTime(d)
	case SubscriptionDetail:
		if blank(d.InstitutionInfo) {
			return invalid(FieldInstitutionInfo, "inquiry.error.institution_required", "describe institution and subscription purpose.")
		}
		return nil
	default:
		return invalid(FieldSupportType, "inquiry.error.support_type_required", "select a support type.")
	}
}

func validateOneTime(d OneTimeDetail) error {
	switch {
	case blank(d.StartDate):
		return invalid(FieldStartDate, "inquiry.error.start_date_required", "start date is required.")
	case blank(d.EndDate):
		return invalid(FieldEndDate, "inquiry.error.end_date_required", "end date is required.")
	case blank(d.Venue):
		return invalid(FieldVenue, "inquiry.error.venue_required", "venue is required.")
	}
	start, err := time.Parse(DateLayout, strings.TrimSpace(d.StartDate))
	if err != nil {
		return invalid(FieldStartDate, "inquiry.error.date_invalid", "invalid date.")
	}
	end, err := time.Parse(DateLayout, strings.TrimSpace(d.EndDate))
	if err != nil {
		return invalid(FieldEndDate, "inquiry.error.date_invalid", "invalid date.")
	}
	if end.Before(start) {
		return invalid(FieldEndDate, "inquiry.error.date_order", "end date must not precede start date.")
	}
	return nil
}

// ValidateConsent checks step 3.
func ValidateConsent(d Draft) error {
	if !d.PrivacyAgreed {
		return invalid(FieldPrivacyAgreed, "inquiry.error.privacy_required", "privacy policy consent required.")
	}
	return nil
}

// ValidateStep runs the validation gating advancement past step.
func ValidateStep(step Step, d Draft) error {
	switch step {
	case StepBasicInfo:
		return ValidateBasicInfo(d.Contact)
	case StepDetails:
		return ValidateDetail(d.Detail)
	case StepConsent:
		return ValidateConsent(d)
	default:
		return ErrUnknownStep
	}
}

// ValidateAll runs every step's validation in order.
func ValidateAll(d Draft) error {
	for _, step := range []Step{StepBasicInfo, StepDetails, StepConsent} {
		if err := ValidateStep(step, d); err != nil {
			return err
		}
	}
	return nil
}
