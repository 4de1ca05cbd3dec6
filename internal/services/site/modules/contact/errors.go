package contact

import (
	"errors"
	"net/http"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	apperrors "github.com/louisbranch/voicebridge/internal/services/site/platform/errors"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/flash"
)

// wizardError classifies a wizard failure into a typed site error. Errors
// the wizard does not name are returned unchanged and map to 500.
func wizardError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, inquiry.ErrSubmissionInProgress) {
		return apperrors.WrapK(apperrors.KindConflict, noticeInProgress.Key, err)
	}
	if verr, ok := inquiry.AsValidationError(err); ok {
		return apperrors.WrapK(apperrors.KindInvalidInput, verr.Key, verr)
	}
	return err
}

// errorNotice builds the toast shown when a step is re-rendered for err.
func errorNotice(err error) *flash.Notice {
	kind := flash.KindError
	if apperrors.HTTPStatus(err) == http.StatusConflict {
		kind = flash.KindWarning
	}
	notice := flash.Notice{Kind: kind, Key: apperrors.LocalizationKey(err)}
	if notice.Key == "" {
		notice.Message = err.Error()
	}
	return &notice
}

// invalidField names the form field a validation failure points at.
func invalidField(err error) string {
	if verr, ok := inquiry.AsValidationError(err); ok {
		return verr.Field
	}
	return ""
}
