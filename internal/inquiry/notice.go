package inquiry

import "errors"

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is one user-facing notification. Key is a catalog message key;
// Message, when set, is server-provided text shown verbatim.
type Notice struct {
	Kind    NoticeKind
	Key     string
	Message string
}

// Notifier receives the terminal notification of a submission.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) {
	if f != nil {
		f(n)
	}
}

// SubmittedNotice is emitted once after a successful submission.
func SubmittedNotice() Notice {
	return Notice{Kind: NoticeSuccess, Key: "inquiry.notice.submitted"}
}

// FailureNotice maps a submission error onto the notice shown to the user:
// network failures, server-reported messages, or a generic fallback.
func FailureNotice(err error) Notice {
	var transport *TransportError
	if errors.As(err, &transport) {
		return Notice{Kind: NoticeError, Key: "inquiry.notice.network_error"}
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return Notice{Kind: NoticeError, Key: "inquiry.notice.failed", Message: rejected.Message}
	}
	return Notice{Kind: NoticeError, Key: "inquiry.notice.failed"}
}
