package intake

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/louisbranch/voicebridge/internal/inquiry"
)

func samplePayload() inquiry.Payload {
	draft := inquiry.Draft{
		Contact: inquiry.Contact{Email: "a@b.com", Name: "Kim", Phone: "010-1111-2222"},
		Detail: inquiry.OneTimeDetail{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-02",
			Venue:     "Seoul Hall",
		},
		PrivacyAgreed: true,
	}
	return inquiry.NewPayload(draft)
}

func newStub(t *testing.T, status int, body string, inspect func(*http.Request, []byte)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		if inspect != nil {
			inspect(r, raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api/inquiry", client.Endpoint())

	client, err = NewClient(Config{BaseURL: "https://intake.example.com/"})
	require.NoError(t, err)
	require.Equal(t, "https://intake.example.com/api/inquiry", client.Endpoint())
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []Config{
		{BaseURL: "ftp://intake.example.com"},
		{BaseURL: "http://"},
		{BaseURL: "http://ok.example.com", Timeout: -time.Second},
	} {
		_, err := NewClient(cfg)
		require.Error(t, err, "config %+v", cfg)
	}
}

func TestSubmitPostsJSONPayload(t *testing.T) {
	t.Parallel()

	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotRaw         []byte
	)
	server := newStub(t, http.StatusOK, `{"status":"success"}`, func(r *http.Request, raw []byte) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRaw = raw
	})

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	require.NoError(t, client.Submit(context.Background(), samplePayload()))

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/inquiry", gotPath)
	require.Equal(t, "application/json", gotContentType)
	var gotBody map[string]any
	require.NoError(t, json.Unmarshal(gotRaw, &gotBody))

	require.Equal(t, "a@b.com", gotBody["email"])
	require.Equal(t, "one-time", gotBody["support_type"])
	require.Equal(t, "Seoul Hall", gotBody["venue"])
	require.Contains(t, gotBody, "purposes")
	require.Nil(t, gotBody["purposes"])
	require.Nil(t, gotBody["institution_info"])
	require.Nil(t, gotBody["company"])
}

func TestSubmitInjectsTraceContext(t *testing.T) {
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceparent string
	server := newStub(t, http.StatusOK, `{"status":"success"}`, func(r *http.Request, _ []byte) {
		traceparent = r.Header.Get("traceparent")
	})
	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	require.NoError(t, client.Submit(context.Background(), samplePayload()))
	require.NotEmpty(t, traceparent)
}

func TestSubmitMapsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `internal error`, wantStatus: 500},
		{name: "server error with message", status: http.StatusBadRequest, body: `{"status":"error","message":"duplicate inquiry"}`, wantStatus: 400, wantMessage: "duplicate inquiry"},
		{name: "failure discriminator", status: http.StatusOK, body: `{"status":"error","message":"quota exceeded"}`, wantStatus: 200, wantMessage: "quota exceeded"},
		{name: "empty body", status: http.StatusOK, body: ``, wantStatus: 200},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantStatus: 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := newStub(t, tc.status, tc.body, nil)
			client, err := NewClient(Config{BaseURL: server.URL})
			require.NoError(t, err)

			err = client.Submit(context.Background(), samplePayload())
			var rejected *inquiry.RejectedError
			require.ErrorAs(t, err, &rejected)
			require.Equal(t, tc.wantStatus, rejected.StatusCode)
			require.Equal(t, tc.wantMessage, rejected.Message)
		})
	}
}

func TestSubmitReportsTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: baseURL})
	require.NoError(t, err)
	err = client.Submit(context.Background(), samplePayload())
	var transport *inquiry.TransportError
	require.ErrorAs(t, err, &transport)
	require.Equal(t, "inquiry.notice.network_error", inquiry.FailureNotice(err).Key)
}

func TestSubmitHonorsTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	err = client.Submit(context.Background(), samplePayload())
	var transport *inquiry.TransportError
	require.ErrorAs(t, err, &transport)
}
