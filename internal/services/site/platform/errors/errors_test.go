package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: WrapK(KindInvalidInput, "", stderrors.New("bad")), want: http.StatusUnprocessableEntity},
		{err: WrapK(KindForbidden, "", stderrors.New("no")), want: http.StatusForbidden},
		{err: WrapK(KindNotFound, "", stderrors.New("missing")), want: http.StatusNotFound},
		{err: WrapK(KindConflict, "", stderrors.New("busy")), want: http.StatusConflict},
		{err: WrapK(KindUnavailable, "", stderrors.New("down")), want: http.StatusServiceUnavailable},
		{err: WrapK(KindUnknown, "", stderrors.New("?")), want: http.StatusInternalServerError},
		{err: stderrors.New("plain"), want: http.StatusInternalServerError},
		{err: fmt.Errorf("wrapped: %w", WrapK(KindNotFound, "", stderrors.New("missing"))), want: http.StatusNotFound},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(WrapK(KindConflict, " inquiry.notice.in_progress ", stderrors.New("busy"))); got != "inquiry.notice.in_progress" {
		t.Fatalf("LocalizationKey = %q, want %q", got, "inquiry.notice.in_progress")
	}
	if got := LocalizationKey(stderrors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey = %q, want empty", got)
	}
}

func TestWrapKKeepsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := WrapK(KindUnavailable, "", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "disk full" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "disk full")
	}
	if WrapK(KindUnavailable, "core.error.unavailable", nil) != nil {
		t.Fatal("WrapK(nil) should be nil")
	}
}
