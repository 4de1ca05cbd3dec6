package inquiry

import "strings"

// Payload is the JSON document posted to the inquiry-intake endpoint.
// Fields that do not apply to the selected support type are null.
type Payload struct {
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Company         *string     `json:"company"`
	SupportType     SupportType `json:"support_type"`
	StartDate       *string     `json:"start_date"`
	EndDate         *string     `json:"end_date"`
	StartTime       *string     `json:"start_time"`
	EndTime         *string     `json:"end_time"`
	Venue           *string     `json:"venue"`
	EventDetails    *string     `json:"event_details"`
	Purposes        []string    `json:"purposes"`
	InstitutionInfo *string     `json:"institution_info"`
	AdditionalInfo  *string     `json:"additional_info"`
}

// NewPayload maps a draft onto the intake schema. An empty purpose set
// encodes as null rather than [].
func NewPayload(d Draft) Payload {
	p := Payload{
		Email:          strings.TrimSpace(d.Contact.Email),
		Name:           strings.TrimSpace(d.Contact.Name),
		Phone:          strings.TrimSpace(d.Contact.Phone),
		Company:        optional(d.Contact.Company),
		SupportType:    d.SupportType(),
		AdditionalInfo: optional(d.AdditionalInfo),
	}
	switch detail := d.Detail.(type) {
	case OneTimeDetail:
		p.StartDate = optional(detail.StartDate)
		p.EndDate = optional(detail.EndDate)
		p.StartTime = optional(detail.StartTime)
		p.EndTime = optional(detail.EndTime)
		p.Venue = optional(detail.Venue)
		p.EventDetails = optional(detail.EventDetails)
	case SubscriptionDetail:
		if len(detail.Purposes) > 0 {
			p.Purposes = make([]string, 0, len(detail.Purposes))
			for _, purpose := range detail.Purposes {
				p.Purposes = append(p.Purposes, string(purpose))
			}
		}
		p.InstitutionInfo = optional(detail.InstitutionInfo)
	}
	return p
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
