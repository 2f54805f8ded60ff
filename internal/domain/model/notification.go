package model

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single toast of a screen. The zero value is closed
// with info severity.
type Notification struct {
	IsOpen   bool
	Message  string
	Severity Severity
}

func NewNotification() Notification {
	return Notification{Severity: SeverityInfo}
}

// Show replaces the content wholesale and opens the toast.
func (n *Notification) Show(outcome Outcome) {
	n.IsOpen = true
	n.Message = outcome.Message
	n.Severity = outcome.Severity
}

// Dismiss closes the toast and keeps its content.
func (n *Notification) Dismiss() {
	n.IsOpen = false
}
