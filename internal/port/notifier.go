package port

// Notifier receives user-visible outcomes of store mutations, typically
// rendered as toasts by the consuming UI.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
