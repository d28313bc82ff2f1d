package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies why a call to the TrackPass backend (or its client-side
// preconditions) failed.
type Kind string

const (
	KindNetwork      Kind = "NETWORK"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindValidation   Kind = "VALIDATION"
	KindServer       Kind = "SERVER"
	KindPrecondition Kind = "PRECONDITION"
)

var (
	// ErrPrecondition is matched by every error raised before a request is issued.
	ErrPrecondition = errors.New("precondition failed")
)

// RemoteError is what the backend client returns for any failed call.
type RemoteError struct {
	Kind    Kind
	Status  int
	Message string
	Op      string
	Err     error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(strings.ToLower(string(e.Kind)))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil && e.Kind != KindPrecondition {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func NewNetworkError(op string, err error) *RemoteError {
	return &RemoteError{Kind: KindNetwork, Op: op, Err: err}
}

func NewPreconditionError(msg string, args ...any) *RemoteError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &RemoteError{Kind: KindPrecondition, Message: msg, Err: ErrPrecondition}
}

// FromStatus classifies a non-2xx backend response.
func FromStatus(op string, status int, body []byte) *RemoteError {
	e := &RemoteError{Op: op, Status: status, Message: ExtractMessage(body)}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindUnauthorized
	case status >= 400 && status < 500:
		e.Kind = KindValidation
	default:
		e.Kind = KindServer
	}
	return e
}

// KindOf returns the taxonomy of err, or "" when err did not come from the backend layer.
func KindOf(err error) Kind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// ExtractMessage pulls a human readable message out of an error body, trying
// in order: a plain string body, "message", "detail", then every value of the
// "errors" map flattened in document order.
func ExtractMessage(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}

	if !gjson.Valid(raw) {
		return raw
	}

	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		return strings.TrimSpace(parsed.Str)
	}

	if !parsed.IsObject() {
		return ""
	}

	for _, key := range []string{"message", "detail"} {
		if v := parsed.Get(key); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str)
		}
	}
	return strings.Join(flattenErrors(parsed.Get("errors")), "; ")
}

func flattenErrors(errs gjson.Result) []string {
	var out []string
	errs.ForEach(func(_, value gjson.Result) bool {
		out = append(out, flattenValue(value)...)
		return true
	})
	return out
}

func flattenValue(v gjson.Result) []string {
	switch {
	case v.Type == gjson.String:
		if s := strings.TrimSpace(v.Str); s != "" {
			return []string{s}
		}
	case v.IsArray():
		var out []string
		for _, item := range v.Array() {
			out = append(out, flattenValue(item)...)
		}
		return out
	case v.IsObject():
		for _, key := range []string{"message", "defaultMessage"} {
			if m := v.Get(key); m.Type == gjson.String && m.Str != "" {
				return []string{m.Str}
			}
		}
	}
	return nil
}

// FromRemote converts a backend failure into the dashboard's own response.
func FromRemote(err error) ErrorResponse {
	var re *RemoteError
	if !errors.As(err, &re) {
		return InternalServerError
	}

	switch re.Kind {
	case KindNetwork:
		return NewSimple(http.StatusBadGateway, "TrackPass backend is unreachable")
	case KindUnauthorized:
		if re.Status == http.StatusUnauthorized {
			return NewSimple(http.StatusUnauthorized, "Session expired or invalid, login again")
		}
		return NewSimple(http.StatusForbidden, "Insufficient permission for this action")
	case KindValidation:
		msg := re.Message
		if msg == "" {
			msg = http.StatusText(re.Status)
		}
		return NewSimple(re.Status, msg)
	case KindPrecondition:
		return NewSimple(http.StatusPreconditionFailed, re.Message)
	default:
		return NewSimple(http.StatusBadGateway, "TrackPass backend failed to process the request")
	}
}
