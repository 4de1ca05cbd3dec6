// Package sessioncookie manages the cookie that keys a browser's wizard
// session.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/voicebridge/internal/services/site/platform/requestmeta"
)

// Name is the wizard session cookie name.
const Name = "vb_wizard"

// Jar reads and writes the session cookie under one scheme policy.
type Jar struct {
	Policy requestmeta.SchemePolicy
	// MaxAge bounds the cookie lifetime; zero makes it a browser-session cookie.
	MaxAge time.Duration
}

// Read returns the session id when the request carries a well-formed one.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the request's session id, issuing a new one when absent.
func (j Jar) Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := Read(r); ok {
		return id
	}
	id := uuid.NewString()
	j.Write(w, r, id)
	return id
}

// Write sets the session cookie.
func (j Jar) Write(w http.ResponseWriter, r *http.Request, id string) {
	if w == nil {
		return
	}
	cookie := j.cookie(r, strings.TrimSpace(id))
	if j.MaxAge > 0 {
		cookie.MaxAge = int(j.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func (j Jar) Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	cookie := j.cookie(r, "")
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func (j Jar) cookie(r *http.Request, value string) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   j.Policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	}
}
