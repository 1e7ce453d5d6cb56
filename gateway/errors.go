package gateway

import (
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-dashboard/models"
)

var (
	// ErrTransport - сеть недоступна, таймаут или ответ не является JSON.
	ErrTransport = errors.New("gateway transport failure")
	// ErrRemoteRejection - таблица ответила ok=false.
	ErrRemoteRejection = errors.New("gateway rejected request")
	ErrUnknownAction   = errors.New("unknown admin action")
	ErrUnknownStage    = errors.New("unknown stage")
)

const (
	defaultFetchReason  = "Failed to fetch matches"
	defaultUpdateReason = "Failed to update match"
	defaultInvokeReason = "Something failed."
	defaultInvokeOK     = "Success!"
)

type FetchError struct {
	Stage  models.Stage
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("list matches: %s", e.Reason)
	}
	return fmt.Sprintf("list matches (stage %s): %s", e.Stage, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

type UpdateError struct {
	MatchID string
	Reason  string
	Err     error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update match %s: %s", e.MatchID, e.Reason)
}

func (e *UpdateError) Unwrap() error { return e.Err }

type InvokeError struct {
	Action models.AdminAction
	Reason string
	Err    error
}

func (e *InvokeError) Error() string {
	return fmt.Sprintf("invoke %s: %s", e.Action, e.Reason)
}

func (e *InvokeError) Unwrap() error { return e.Err }

// Reason достаёт текст причины из ошибки шлюза, если он есть.
func Reason(err error) (string, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason, true
	}
	var ue *UpdateError
	if errors.As(err, &ue) {
		return ue.Reason, true
	}
	var ie *InvokeError
	if errors.As(err, &ie) {
		return ie.Reason, true
	}
	return "", false
}
