package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration means a required credential or table is missing.
	// Degrade gracefully and keep running with reduced functionality.
	KindConfiguration
	// KindAuth is surfaced inline on the login form.
	KindAuth
	// KindFetch is panel-fatal: the affected panel renders the error and
	// nothing else.
	KindFetch
	// KindWrite is operation-fatal but panel-surviving: toast and log, the
	// panel keeps its previous state.
	KindWrite
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// KindOf classifies err, returning KindUnknown for errors that did not
// originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// undefinedTable is the postgres error code reported when a consumed table
// does not exist, which we treat as a deployment configuration problem
// rather than a fetch failure.
const undefinedTable = "42P01"

type apiErrorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Code             string `json:"code"`
}

func errorFromResponse(kind Kind, status int, body []byte) *Error {
	parsed := apiErrorBody{}
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.Msg
	}
	if message == "" {
		message = parsed.ErrorDescription
	}
	if message == "" {
		message = http.StatusText(status)
	}

	if parsed.Code == undefinedTable || status == http.StatusNotFound && kind == KindFetch {
		return &Error{Kind: KindConfiguration, Status: status, Message: message}
	}

	return &Error{Kind: kind, Status: status, Message: message}
}
