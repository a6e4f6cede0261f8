package cardsync

// Workflow identifies one of the sync workflows
type Workflow string

const (
	WorkflowConnection Workflow = "connection"
	WorkflowExport     Workflow = "export"
	WorkflowProgress   Workflow = "progress"
)

// Workflows lists every workflow
var Workflows = []Workflow{WorkflowConnection, WorkflowExport, WorkflowProgress}

// Status is the state of a single workflow
type Status int

const (
	StatusIdle Status = iota
	// StatusTesting is the in-progress state of the connection test
	StatusTesting
	// StatusProcessing is the in-progress state of export and progress sync
	StatusProcessing
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusTesting:
		return "testing"
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InProgress reports whether a workflow in this state is still running
func (s Status) InProgress() bool {
	return s == StatusTesting || s == StatusProcessing
}

// inProgressStatus returns the running label used by w
func inProgressStatus(w Workflow) Status {
	if w == WorkflowConnection {
		return StatusTesting
	}
	return StatusProcessing
}

// Level classifies user notifications
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
	default:
		return "info"
	}
}

// Notifier shows transient messages to the user
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(level Level, message string)

// Notify calls f
func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
