package contact

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/services/site/module"
	apperrors "github.com/louisbranch/voicebridge/internal/services/site/platform/errors"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/flash"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/httpx"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/pagerender"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/sessioncookie"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/weberror"
	"github.com/louisbranch/voicebridge/internal/services/site/routepath"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

var (
	noticeInProgress     = flash.Notice{Kind: flash.KindWarning, Key: "inquiry.notice.in_progress"}
	noticeSessionExpired = flash.Notice{Kind: flash.KindWarning, Key: "inquiry.notice.session_expired"}
	noticeWrongStep      = flash.Notice{Kind: flash.KindWarning, Key: "inquiry.error.wrong_step"}
	noticeReset          = flash.Notice{Kind: flash.KindInfo, Key: "inquiry.notice.reset"}
)

type handlers struct {
	wizard module.Wizard
	jar    sessioncookie.Jar
	flash  flash.Writer
	logger *zap.Logger
}

type transition func(ctx context.Context, id string, input inquiry.Input) (inquiry.State, error)

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	id := h.jar.Ensure(w, r)
	state, err := h.wizard.State(r.Context(), id)
	if err != nil {
		h.fail(w, r, "load wizard", err)
		return
	}
	var notice *flash.Notice
	if pending, ok := h.flash.ReadAndClear(w, r); ok {
		notice = &pending
	}
	h.render(w, r, state, http.StatusOK, notice, "")
}

func (h handlers) handleNext(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.wizard.Next)
}

func (h handlers) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.wizard.Previous)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	notify := inquiry.NotifierFunc(func(n inquiry.Notice) {
		h.flash.Write(w, r, flashNotice(n))
	})
	h.advance(w, r, func(ctx context.Context, id string, input inquiry.Input) (inquiry.State, error) {
		return h.wizard.Submit(ctx, id, input, notify)
	})
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	id, ok := sessioncookie.Read(r)
	if !ok {
		httpx.SeeOther(w, r, routepath.Contact)
		return
	}
	if err := h.wizard.Reset(r.Context(), id); err != nil {
		h.rejectCurrent(w, r, id, "reset wizard", err)
		return
	}
	h.jar.Clear(w, r)
	h.flash.Write(w, r, noticeReset)
	httpx.SeeOther(w, r, routepath.Contact)
}

// advance applies one posted step transition and answers with a redirect,
// or a re-render when the posted data cannot be accepted.
func (h handlers) advance(w http.ResponseWriter, r *http.Request, move transition) {
	id, ok := sessioncookie.Read(r)
	if !ok {
		h.jar.Ensure(w, r)
		h.flash.Write(w, r, noticeSessionExpired)
		httpx.SeeOther(w, r, routepath.Contact)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		return
	}
	current, err := h.wizard.State(r.Context(), id)
	if err != nil {
		h.fail(w, r, "load wizard", err)
		return
	}
	if current.Submitting {
		h.reject(w, r, current, "wizard transition", inquiry.ErrSubmissionInProgress)
		return
	}
	if step, ok := postedStep(r.PostForm); !ok || step != current.Step {
		notice := noticeWrongStep
		if ok && isFresh(current) {
			notice = noticeSessionExpired
		}
		h.flash.Write(w, r, notice)
		httpx.SeeOther(w, r, routepath.Contact)
		return
	}

	state, err := move(r.Context(), id, formInput(r.PostForm))
	var submissionErr *inquiry.SubmissionError
	if err == nil || errors.As(err, &submissionErr) {
		httpx.SeeOther(w, r, routepath.Contact)
		return
	}
	h.reject(w, r, state, "wizard transition", err)
}

// reject re-renders the step for input and conflict failures and hands any
// other failure to the error page.
func (h handlers) reject(w http.ResponseWriter, r *http.Request, state inquiry.State, op string, err error) {
	classified := wizardError(err)
	switch status := apperrors.HTTPStatus(classified); status {
	case http.StatusUnprocessableEntity, http.StatusConflict:
		h.render(w, r, state, status, errorNotice(classified), invalidField(err))
	default:
		h.fail(w, r, op, classified)
	}
}

func (h handlers) rejectCurrent(w http.ResponseWriter, r *http.Request, id string, op string, err error) {
	state, loadErr := h.wizard.State(r.Context(), id)
	if loadErr != nil {
		h.fail(w, r, "load wizard", loadErr)
		return
	}
	h.reject(w, r, state, op, err)
}

func (h handlers) render(w http.ResponseWriter, r *http.Request, state inquiry.State, status int, notice *flash.Notice, invalidField string) {
	view := templates.ContactView{
		Step:         state.Step,
		Draft:        state.Draft,
		InvalidField: invalidField,
		Submitting:   state.Submitting,
	}
	err := pagerender.WritePage(w, r, pagerender.Page{
		TitleKey:   "inquiry.title",
		StatusCode: status,
		Notice:     notice,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Contact(loc, view)
		},
	})
	if err != nil {
		h.logger.Error("render contact", zap.Error(err))
	}
}

func (h handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op, zap.String("request_id", r.Header.Get(httpx.RequestIDHeader)), zap.Error(err))
	weberror.WriteError(w, r, err)
}

// isFresh reports whether state looks like a session that was never filled
// in, as after expiry or a server restart.
func isFresh(state inquiry.State) bool {
	return state.Step == inquiry.StepBasicInfo && state.Draft.Contact == (inquiry.Contact{}) && state.Draft.Detail == nil
}

func flashNotice(n inquiry.Notice) flash.Notice {
	return flash.Notice{Kind: flash.Kind(n.Kind), Key: n.Key, Message: n.Message}
}
