package ports

// NoticeKind classifies blocking user-visible notices raised by the
// transport layer.
type NoticeKind string

const (
	// NoticeSessionExpired is raised on a 401 outside the login flow.
	NoticeSessionExpired NoticeKind = "session_expired"
	// NoticeAccountSuspended is raised on a 403.
	NoticeAccountSuspended NoticeKind = "account_suspended"
)

// Notice is a blocking, user-visible message. The transport raises it as a
// side effect and still propagates the underlying error; it never decides
// session state on its own.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier surfaces blocking notices to the user. Implementations decide the
// presentation (dialog, console, test recorder).
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }
