// Package routepath defines the site's public URL paths.
package routepath

const (
	Root          = "/"
	Pricing       = "/pricing"
	Download      = "/download"
	Team          = "/team"
	PolicyPrefix  = "/policies/"
	PolicyPrivacy = "/policies/privacy"
	PolicyTerms   = "/policies/terms"
	Health        = "/healthz"
	StaticPrefix  = "/static/"

	ContactPrefix   = "/contact/"
	Contact         = "/contact"
	ContactNext     = "/contact/next"
	ContactPrevious = "/contact/previous"
	ContactSubmit   = "/contact/submit"
	ContactReset    = "/contact/reset"
)
