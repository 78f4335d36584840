package tui

// FetchStatus is the lifecycle of the history request.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchLoaded
	FetchFailed
)

// loadErrorFallback is shown when a failed fetch carries no message.
const loadErrorFallback = "Erro ao carregar"

// FetchState is the tagged fetch state. Message is only set when Failed.
type FetchState struct {
	Status  FetchStatus
	Message string
}

// Loading returns the in-flight state. Any previous error is dropped.
func Loading() FetchState {
	return FetchState{Status: FetchLoading}
}

// Loaded returns the success state.
func Loaded() FetchState {
	return FetchState{Status: FetchLoaded}
}

// Failed returns the failure state for err.
func Failed(err error) FetchState {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = loadErrorFallback
	}
	return FetchState{Status: FetchFailed, Message: msg}
}

// IsLoading reports whether a fetch is in flight.
func (s FetchState) IsLoading() bool {
	return s.Status == FetchLoading
}

// Err returns the failure message, or "" when the state is not Failed.
func (s FetchState) Err() string {
	if s.Status != FetchFailed {
		return ""
	}
	return s.Message
}
