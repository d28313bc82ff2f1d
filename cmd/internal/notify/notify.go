package notify

import (
	"errors"
	"sync"
	"time"
	"trackpass/cmd/internal/utils/apierror"
	"trackpass/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

type Level string

const (
	LevelSuccess Level = "SUCCESS"
	LevelError   Level = "ERROR"
	LevelWarning Level = "WARNING"
	LevelInfo    Level = "INFO"
)

const (
	MsgNetwork      = "Falha de conexão com o servidor"
	MsgUnauthorized = "Permissão insuficiente para esta ação"
	MsgGeneric      = "Não foi possível concluir a operação"
)

const DefaultFeedSize = 100

// Notification is a transient message shown to the manager (a toast).
type Notification struct {
	ID        int64         `json:"id,string"`
	Level     Level         `json:"level"`
	Kind      apierror.Kind `json:"kind,omitempty"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

func Success(msg string) Notification {
	return newNotification(LevelSuccess, "", msg)
}

func Warning(msg string) Notification {
	return newNotification(LevelWarning, "", msg)
}

// Failure builds the error toast for err, using fallback when the error
// carries nothing more specific to say.
func Failure(err error, fallback string) Notification {
	return newNotification(LevelError, apierror.KindOf(err), MessageFor(err, fallback))
}

// MessageFor maps the backend error taxonomy to the text the manager reads.
func MessageFor(err error, fallback string) string {
	if fallback == "" {
		fallback = MsgGeneric
	}

	var re *apierror.RemoteError
	if !errors.As(err, &re) {
		return fallback
	}

	switch re.Kind {
	case apierror.KindNetwork:
		return MsgNetwork
	case apierror.KindUnauthorized:
		return MsgUnauthorized
	case apierror.KindValidation, apierror.KindPrecondition:
		if re.Message != "" {
			return re.Message
		}
	}
	return fallback
}

func newNotification(level Level, kind apierror.Kind, msg string) Notification {
	return Notification{
		ID:        uid.Generate(),
		Level:     level,
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	}
}

// Feed keeps the latest notifications until the browser drains them.
type Feed struct {
	mu    sync.Mutex
	items []Notification
	size  int
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(n Notification) {
	switch n.Level {
	case LevelError:
		log.Warnf("notification [%s] %s", n.Kind, n.Message)
	default:
		log.Debugf("notification [%s] %s", n.Level, n.Message)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		// Oldest toasts are the least useful ones
		f.items = append([]Notification(nil), f.items[over:]...)
	}
}

// Drain returns every pending notification, oldest first, and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	if out == nil {
		return []Notification{}
	}
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
