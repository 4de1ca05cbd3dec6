package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func roundTrip(t *testing.T, notice Notice) (Notice, bool) {
	t.Helper()
	rec := httptest.NewRecorder()
	Writer{}.Write(rec, httptest.NewRequest(http.MethodPost, "/contact/submit", nil), notice)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	next := httptest.NewRecorder()
	got, ok := Writer{}.ReadAndClear(next, req)
	if ok {
		cookies := next.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
			t.Fatalf("expected flash cookie to be expired, got %+v", cookies)
		}
	}
	return got, ok
}

func TestWriteAndReadNotice(t *testing.T) {
	t.Parallel()

	got, ok := roundTrip(t, Notice{Kind: KindSuccess, Key: "inquiry.notice.submitted"})
	if !ok {
		t.Fatal("expected notice")
	}
	if got.Kind != KindSuccess || got.Key != "inquiry.notice.submitted" {
		t.Fatalf("notice = %+v", got)
	}
}

func TestServerMessageSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	got, ok := roundTrip(t, Notice{Kind: KindError, Key: "inquiry.notice.failed", Message: "이미 접수된 문의입니다."})
	if !ok {
		t.Fatal("expected notice")
	}
	if got.Message != "이미 접수된 문의입니다." {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestInvalidNoticesAreDropped(t *testing.T) {
	t.Parallel()

	if _, ok := roundTrip(t, Notice{Kind: KindSuccess}); ok {
		t.Fatal("expected empty notice to be dropped")
	}
	if _, ok := roundTrip(t, Notice{Kind: "loud", Key: "x"}); ok {
		t.Fatal("expected unknown kind to be dropped")
	}
}

func TestReadAndClearIgnoresGarbage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	if _, ok := (Writer{}).ReadAndClear(httptest.NewRecorder(), req); ok {
		t.Fatal("expected garbage cookie to be ignored")
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	value := truncate(strings.Repeat("가", 300), maxMessageLen)
	if len(value) > maxMessageLen {
		t.Fatalf("len = %d, want <= %d", len(value), maxMessageLen)
	}
	if !strings.HasPrefix(strings.Repeat("가", 300), value) {
		t.Fatal("expected rune-aligned prefix")
	}
}
