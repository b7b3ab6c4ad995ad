package ports

// Notifier is the user-facing alert channel of the UI layer. CRUD failures
// and confirmations are reported through it; search failures never are.
type Notifier interface {
	Alert(title, message string)
}
