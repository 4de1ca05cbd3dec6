// Package flash carries one-time notices across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/louisbranch/voicebridge/internal/services/site/platform/requestmeta"
)

// CookieName is the cookie holding the pending notice.
const CookieName = "vb_flash"

// maxMessageLen bounds server-provided text carried in the cookie.
const maxMessageLen = 512

// Kind classifies notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice references a catalog key, or carries a server-provided Message
// that is displayed verbatim instead of the key's text.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key"`
	Message string `json:"message,omitempty"`
}

// Writer stores and consumes notices under one scheme policy.
type Writer struct {
	Policy requestmeta.SchemePolicy
}

// Write stores notice for the next page render.
func (fw Writer) Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	if w == nil {
		return
	}
	normalized, ok := normalizeNotice(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, fw.cookie(r, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func (fw Writer) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		http.SetCookie(w, fw.cookie(r, "", -1))
	}
	return decodeNotice(cookie.Value)
}

func (fw Writer) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   fw.Policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func decodeNotice(raw string) (Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalizeNotice(notice)
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	notice.Message = truncate(strings.TrimSpace(notice.Message), maxMessageLen)
	if notice.Key == "" && notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	value = value[:limit]
	for !utf8.ValidString(value) {
		value = value[:len(value)-1]
	}
	return value
}
