package inquiry_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/inquiry/intake"
	"github.com/louisbranch/voicebridge/internal/inquiry/storage/memory"
	"github.com/louisbranch/voicebridge/internal/platform/requestctx"
)

type noticeRecorder struct {
	mu      sync.Mutex
	notices []inquiry.Notice
}

func (r *noticeRecorder) Notify(n inquiry.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) all() []inquiry.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]inquiry.Notice(nil), r.notices...)
}

type submitterFunc func(context.Context, inquiry.Payload) error

func (f submitterFunc) Submit(ctx context.Context, p inquiry.Payload) error {
	return f(ctx, p)
}

func stubIntake(t *testing.T, status int, body string) (*intake.Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	client, err := intake.NewClient(intake.Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client, &calls
}

func newService(t *testing.T, submitter inquiry.Submitter) (*inquiry.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore(nil)
	svc, err := inquiry.NewService(store, submitter)
	require.NoError(t, err)
	return svc, store
}

func fillScenario(step inquiry.Step, d *inquiry.Draft) {
	switch step {
	case inquiry.StepBasicInfo:
		d.Contact = inquiry.Contact{Email: "a@b.com", Name: "Kim", Phone: "010-1111-2222"}
	case inquiry.StepDetails:
		d.SelectSupportType(inquiry.SupportOneTime)
		d.Detail = inquiry.OneTimeDetail{StartDate: "2025-06-01", EndDate: "2025-06-02", Venue: "Seoul Hall"}
	case inquiry.StepConsent:
		d.PrivacyAgreed = true
	}
}

// walkToConsent drives a session to step 3 with the scenario draft.
func walkToConsent(t *testing.T, svc *inquiry.Service, id string) inquiry.State {
	t.Helper()
	ctx := context.Background()
	state, err := svc.Next(ctx, id, fillScenario)
	require.NoError(t, err)
	require.Equal(t, inquiry.StepDetails, state.Step)
	state, err = svc.Next(ctx, id, fillScenario)
	require.NoError(t, err)
	require.Equal(t, inquiry.StepConsent, state.Step)
	return state
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := inquiry.NewService(nil, submitterFunc(nil))
	require.Error(t, err)
	_, err = inquiry.NewService(memory.NewStore(nil), nil)
	require.Error(t, err)
}

func TestStateOfNewSessionIsInitial(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	state, err := svc.State(context.Background(), "fresh")
	require.NoError(t, err)
	require.Equal(t, inquiry.NewState(), state)

	_, err = svc.State(context.Background(), " ")
	require.ErrorIs(t, err, inquiry.ErrSessionRequired)
}

func TestNextMissingContactFieldKeepsStep(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	ctx := context.Background()
	for _, missing := range []string{inquiry.FieldEmail, inquiry.FieldName, inquiry.FieldPhone} {
		id := "s-" + missing
		state, err := svc.Next(ctx, id, func(_ inquiry.Step, d *inquiry.Draft) {
			fillScenario(inquiry.StepBasicInfo, d)
			switch missing {
			case inquiry.FieldEmail:
				d.Contact.Email = ""
			case inquiry.FieldName:
				d.Contact.Name = ""
			case inquiry.FieldPhone:
				d.Contact.Phone = ""
			}
		})
		verr, ok := inquiry.AsValidationError(err)
		require.True(t, ok)
		require.Equal(t, missing, verr.Field)
		require.Equal(t, inquiry.StepBasicInfo, state.Step)

		stored, err := svc.State(ctx, id)
		require.NoError(t, err)
		require.Equal(t, state, stored)
	}
}

func TestPreviousRecordsInputWithoutValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	ctx := context.Background()
	walkToConsent(t, svc, "s1")

	state, err := svc.Previous(ctx, "s1", func(_ inquiry.Step, d *inquiry.Draft) {
		d.AdditionalInfo = "Need two interpreters"
	})
	require.NoError(t, err)
	require.Equal(t, inquiry.StepDetails, state.Step)
	require.Equal(t, "Need two interpreters", state.Draft.AdditionalInfo)

	state, err = svc.Next(ctx, "s1", nil)
	require.NoError(t, err)
	require.Equal(t, inquiry.StepConsent, state.Step)
	require.Equal(t, "Need two interpreters", state.Draft.AdditionalInfo)
}

func TestSubmitRejectsWithoutPrivacyConsent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error {
		calls.Add(1)
		return nil
	}))
	walkToConsent(t, svc, "s1")

	notices := &noticeRecorder{}
	state, err := svc.Submit(context.Background(), "s1", nil, notices)
	verr, ok := inquiry.AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, inquiry.FieldPrivacyAgreed, verr.Field)
	require.Equal(t, inquiry.StepConsent, state.Step)
	require.Zero(t, calls.Load())
	require.Empty(t, notices.all())
}

func TestSubmitBeforeConsentStepIsRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	_, err := svc.Submit(context.Background(), "s1", fillScenario, nil)
	require.ErrorIs(t, err, inquiry.ErrWrongStep)
}

func TestSubmitRevalidatesEarlierSteps(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error {
		t.Error("submitter must not be called")
		return nil
	}))
	ctx := context.Background()
	tampered := inquiry.State{Step: inquiry.StepConsent, Draft: inquiry.Draft{PrivacyAgreed: true}}
	require.NoError(t, store.Put(ctx, "s1", tampered))

	_, err := svc.Submit(ctx, "s1", nil, nil)
	verr, ok := inquiry.AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, inquiry.FieldEmail, verr.Field)
}

func TestSubmitSuccessResetsWizardAndNotifiesOnce(t *testing.T) {
	t.Parallel()

	client, calls := stubIntake(t, http.StatusOK, `{"status":"success"}`)
	svc, _ := newService(t, client)
	ctx := context.Background()
	walkToConsent(t, svc, "s1")

	notices := &noticeRecorder{}
	state, err := svc.Submit(ctx, "s1", fillScenario, notices)
	require.NoError(t, err)
	require.Equal(t, inquiry.NewState(), state)
	require.Equal(t, []inquiry.Notice{inquiry.SubmittedNotice()}, notices.all())
	require.EqualValues(t, 1, calls.Load())

	stored, err := svc.State(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, inquiry.NewState(), stored)
}

// unsettledStore loses the reset that follows a delivered submission.
type unsettledStore struct {
	*memory.Store
}

func (s unsettledStore) EndSubmit(ctx context.Context, id string, reset bool) error {
	if reset {
		return errStoreDown
	}
	return s.Store.EndSubmit(ctx, id, reset)
}

func TestSubmitReportsFailedResetAfterDelivery(t *testing.T) {
	t.Parallel()

	client, calls := stubIntake(t, http.StatusOK, `{"status":"success"}`)
	svc, err := inquiry.NewService(unsettledStore{Store: memory.NewStore(nil)}, client)
	require.NoError(t, err)
	walkToConsent(t, svc, "s1")

	notices := &noticeRecorder{}
	state, err := svc.Submit(context.Background(), "s1", fillScenario, notices)
	require.ErrorIs(t, err, errStoreDown)
	var submissionErr *inquiry.SubmissionError
	require.False(t, errors.As(err, &submissionErr))
	require.NotEqual(t, inquiry.NewState(), state)
	require.Equal(t, "a@b.com", state.Draft.Contact.Email)
	require.Equal(t, []inquiry.Notice{inquiry.SubmittedNotice()}, notices.all())
	require.EqualValues(t, 1, calls.Load())
}

func TestSubmitServerErrorPreservesDraftForRetry(t *testing.T) {
	t.Parallel()

	client, calls := stubIntake(t, http.StatusInternalServerError, `{"status":"error"}`)
	svc, _ := newService(t, client)
	ctx := context.Background()
	walkToConsent(t, svc, "s1")

	notices := &noticeRecorder{}
	state, err := svc.Submit(ctx, "s1", fillScenario, notices)
	var rejected *inquiry.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusInternalServerError, rejected.StatusCode)
	require.Equal(t, inquiry.StepConsent, state.Step)
	require.False(t, state.Submitting)

	got := notices.all()
	require.Len(t, got, 1)
	require.Equal(t, inquiry.NoticeError, got[0].Kind)
	require.Equal(t, "inquiry.notice.failed", got[0].Key)

	stored, err := svc.State(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, state, stored)
	detail, ok := stored.Draft.OneTime()
	require.True(t, ok)
	require.Equal(t, "Seoul Hall", detail.Venue)

	_, err = svc.Submit(ctx, "s1", nil, notices)
	require.Error(t, err)
	require.Len(t, notices.all(), 2)
	require.EqualValues(t, 2, calls.Load())
}

func TestSubmitConcurrentAttemptIsRejected(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	svc, _ := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error {
		close(entered)
		<-release
		return nil
	}))
	ctx := context.Background()
	walkToConsent(t, svc, "s1")

	firstNotices := &noticeRecorder{}
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, "s1", fillScenario, firstNotices)
		done <- err
	}()
	<-entered

	secondNotices := &noticeRecorder{}
	_, err := svc.Submit(ctx, "s1", fillScenario, secondNotices)
	require.ErrorIs(t, err, inquiry.ErrSubmissionInProgress)
	require.Empty(t, secondNotices.all())
	require.ErrorIs(t, svc.Reset(ctx, "s1"), inquiry.ErrSubmissionInProgress)

	close(release)
	require.NoError(t, <-done)
	require.Len(t, firstNotices.all(), 1)
}

func TestSubmitOutlivesCanceledRequest(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, submitterFunc(func(ctx context.Context, _ inquiry.Payload) error {
		return ctx.Err()
	}))
	walkToConsent(t, svc, "s1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Submit(ctx, "s1", fillScenario, nil)
	require.NoError(t, err)
}

func TestResetDiscardsDraft(t *testing.T) {
	t.Parallel()

	svc, store := newService(t, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	ctx := context.Background()
	walkToConsent(t, svc, "s1")

	require.NoError(t, svc.Reset(ctx, "s1"))
	require.Zero(t, store.Len())
	state, err := svc.State(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, inquiry.NewState(), state)
}

func TestPurgeIdleUsesSessionTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := memory.NewStore(clock)
	svc, err := inquiry.NewService(store, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }),
		inquiry.WithClock(clock),
		inquiry.WithSessionTTL(time.Hour),
	)
	require.NoError(t, err)

	_, err = svc.Next(context.Background(), "idle", nil)
	require.Error(t, err)
	require.Equal(t, 0, store.Len())

	walkToConsent(t, svc, "idle")
	now = now.Add(2 * time.Hour)
	removed, err := svc.PurgeIdle(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, removed)
}

func TestStateWrapsStoreFailure(t *testing.T) {
	t.Parallel()

	svc, err := inquiry.NewService(failingStore{}, submitterFunc(func(context.Context, inquiry.Payload) error { return nil }))
	require.NoError(t, err)
	_, err = svc.State(context.Background(), "s1")
	require.ErrorIs(t, err, errStoreDown)
}

var errStoreDown = errors.New("store down")

type failingStore struct{}

func (failingStore) Get(context.Context, string) (inquiry.State, error) {
	return inquiry.State{}, errStoreDown
}

func (failingStore) Put(context.Context, string, inquiry.State) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, string) error {
	return errStoreDown
}

func (failingStore) BeginSubmit(context.Context, string) (inquiry.State, error) {
	return inquiry.State{}, errStoreDown
}

func (failingStore) EndSubmit(context.Context, string, bool) error {
	return errStoreDown
}

func (failingStore) Purge(context.Context, time.Time) (int, error) {
	return 0, errStoreDown
}

func TestSubmitLogsOutcomeWithRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	svc, err := inquiry.NewService(memory.NewStore(nil), submitterFunc(func(context.Context, inquiry.Payload) error {
		return &inquiry.RejectedError{StatusCode: http.StatusBadGateway}
	}), inquiry.WithLogger(zap.New(core)))
	require.NoError(t, err)
	walkToConsent(t, svc, "s1")

	ctx := requestctx.WithRequestID(context.Background(), "req-1")
	_, err = svc.Submit(ctx, "s1", fillScenario, nil)
	require.Error(t, err)

	entries := logs.FilterMessage("inquiry submission failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "s1", fields["session_id"])
	require.Equal(t, "one-time", fields["support_type"])
	_, leaked := fields["email"]
	require.False(t, leaked)
}
