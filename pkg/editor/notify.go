package editor

import "github.com/charmbracelet/log"

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notification is a transient, user-visible message.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Notifier shows notifications to the user. Notify may be called from a
// goroutine started by [Editor.SaveAsync].
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a logger. It is the default.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(msg Notification) {
	l := n.Logger
	if l == nil {
		l = log.Default()
	}
	switch msg.Level {
	case LevelError:
		l.Error(msg.Title, "detail", msg.Message)
	case LevelWarning:
		l.Warn(msg.Title, "detail", msg.Message)
	default:
		l.Info(msg.Title, "detail", msg.Message)
	}
}
