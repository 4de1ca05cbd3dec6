// Package inquiry implements the three-step inquiry wizard: the draft being
// filled in, per-step validation, step transitions and submission to the
// external inquiry-intake service.
package inquiry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SupportType selects which detail block of the draft applies.
type SupportType string

const (
	SupportUnset        SupportType = ""
	SupportOneTime      SupportType = "one-time"
	SupportSubscription SupportType = "subscription"
)

// ParseSupportType maps a submitted value onto a known support type.
// Anything unrecognized is SupportUnset.
func ParseSupportType(value string) SupportType {
	switch SupportType(strings.TrimSpace(value)) {
	case SupportOneTime:
		return SupportOneTime
	case SupportSubscription:
		return SupportSubscription
	default:
		return SupportUnset
	}
}

// Purpose is one entry of the fixed subscription purpose list.
type Purpose string

const (
	PurposeConference Purpose = "conference"
	PurposeLecture    Purpose = "lecture"
	PurposeMeeting    Purpose = "meeting"
	PurposeBusiness   Purpose = "business"
	PurposeBroadcast  Purpose = "broadcast"
	PurposeEducation  Purpose = "education"
	PurposeOther      Purpose = "other"
)

var purposeOrder = []Purpose{
	PurposeConference,
	PurposeLecture,
	PurposeMeeting,
	PurposeBusiness,
	PurposeBroadcast,
	PurposeEducation,
	PurposeOther,
}

// Purposes returns the selectable purposes in display order.
func Purposes() []Purpose {
	out := make([]Purpose, len(purposeOrder))
	copy(out, purposeOrder)
	return out
}

// NormalizePurposes keeps known purposes only, deduplicated, in display order.
func NormalizePurposes(values []string) []Purpose {
	selected := make(map[Purpose]bool, len(values))
	for _, value := range values {
		selected[Purpose(strings.TrimSpace(value))] = true
	}
	var out []Purpose
	for _, purpose := range purposeOrder {
		if selected[purpose] {
			out = append(out, purpose)
		}
	}
	return out
}

// Contact holds the identity fields collected in step 1.
type Contact struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// Detail is the support-type specific block collected in step 2. It is
// implemented only by OneTimeDetail and SubscriptionDetail.
type Detail interface {
	SupportType() SupportType
	isDetail()
}

// OneTimeDetail describes a single event. Dates are YYYY-MM-DD, times HH:MM.
type OneTimeDetail struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	Venue        string `json:"venue"`
	EventDetails string `json:"event_details,omitempty"`
}

// SupportType implements Detail.
func (OneTimeDetail) SupportType() SupportType { return SupportOneTime }
func (OneTimeDetail) isDetail() {}

// SubscriptionDetail describes a recurring engagement.
type SubscriptionDetail struct {
	Purposes        []Purpose `json:"purposes,omitempty"`
	InstitutionInfo string    `json:"institution_info"`
}

// SupportType implements Detail.
func (SubscriptionDetail) SupportType() SupportType { return SupportSubscription }
func (SubscriptionDetail) isDetail() {}

// Draft is the in-progress inquiry of one wizard session.
type Draft struct {
	Contact        Contact
	Detail         Detail
	AdditionalInfo string
	PrivacyAgreed  bool
}

// SupportType returns the support type selected by the draft's detail.
func (d Draft) SupportType() SupportType {
	if d.Detail == nil {
		return SupportUnset
	}
	return d.Detail.SupportType()
}

// OneTime returns the one-time detail when that branch is selected.
func (d Draft) OneTime() (OneTimeDetail, bool) {
	detail, ok := d.Detail.(OneTimeDetail)
	return detail, ok
}

// Subscription returns the subscription detail when that branch is selected.
func (d Draft) Subscription() (SubscriptionDetail, bool) {
	detail, ok := d.Detail.(SubscriptionDetail)
	return detail, ok
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	if sub, ok := d.Detail.(SubscriptionDetail); ok && sub.Purposes != nil {
		sub.Purposes = append([]Purpose(nil), sub.Purposes...)
		d.Detail = sub
	}
	return d
}

type draftJSON struct {
	Contact        Contact             `json:"contact"`
	SupportType    SupportType         `json:"support_type,omitempty"`
	OneTime        *OneTimeDetail      `json:"one_time,omitempty"`
	Subscription   *SubscriptionDetail `json:"subscription,omitempty"`
	AdditionalInfo string              `json:"additional_info,omitempty"`
	PrivacyAgreed  bool                `json:"privacy_agreed,omitempty"`
}

// MarshalJSON encodes the draft for session storage.
func (d Draft) MarshalJSON() ([]byte, error) {
	out := draftJSON{
		Contact:        d.Contact,
		SupportType:    d.SupportType(),
		AdditionalInfo: d.AdditionalInfo,
		PrivacyAgreed:  d.PrivacyAgreed,
	}
	switch detail := d.Detail.(type) {
	case OneTimeDetail:
		out.OneTime = &detail
	case SubscriptionDetail:
		out.Subscription = &detail
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a stored draft, rejecting a support type whose
// detail block is missing.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var in draftJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	draft := Draft{
		Contact:        in.Contact,
		AdditionalInfo: in.AdditionalInfo,
		PrivacyAgreed:  in.PrivacyAgreed,
	}
	switch in.SupportType {
	case SupportUnset:
	case SupportOneTime:
		if in.OneTime == nil {
			return fmt.Errorf("draft: one-time detail is missing")
		}
		draft.Detail = *in.OneTime
	case SupportSubscription:
		if in.Subscription == nil {
			return fmt.Errorf("draft: subscription detail is missing")
		}
		draft.Detail = *in.Subscription
	default:
		return fmt.Errorf("draft: unknown support type %q", in.SupportType)
	}
	*d = draft
	return nil
}

// SelectSupportType switches the draft's detail branch. Choosing the
// current type keeps its fields; choosing another type starts an empty
// branch and drops the previous one.
func (d *Draft) SelectSupportType(t SupportType) {
	if d.SupportType() == t {
		return
	}
	switch t {
	case SupportOneTime:
		d.Detail = OneTimeDetail{}
	case SupportSubscription:
		d.Detail = SubscriptionDetail{}
	default:
		d.Detail = nil
	}
}
