package models

import (
	"time"

	"github.com/google/uuid"
)

type ViewKind string

const (
	ViewIdle       ViewKind = "idle"
	ViewRequesting ViewKind = "requesting"
	ViewSucceeded  ViewKind = "succeeded"
	ViewFailed     ViewKind = "failed"
)

// ViewState is the result of the latest generation attempt. Only one of
// Result or Error is set, matching Kind.
type ViewState struct {
	Kind      ViewKind          `json:"kind"`
	RequestID uint64            `json:"requestId"`
	Result    *GenerationResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	ErrorKind string            `json:"errorKind,omitempty"`
}

func IdleState() ViewState {
	return ViewState{Kind: ViewIdle}
}

func RequestingState(requestID uint64) ViewState {
	return ViewState{Kind: ViewRequesting, RequestID: requestID}
}

func SucceededState(requestID uint64, result *GenerationResult) ViewState {
	return ViewState{Kind: ViewSucceeded, RequestID: requestID, Result: result}
}

func FailedState(requestID uint64, message, kind string) ViewState {
	return ViewState{Kind: ViewFailed, RequestID: requestID, Error: message, ErrorKind: kind}
}

// Session holds one user's form values and display state.
type Session struct {
	ID            uuid.UUID            `json:"id"`
	Params        GenerationParameters `json:"params"`
	State         ViewState            `json:"state"`
	LastRequestID uint64               `json:"lastRequestId"`
	CopiedUntil   time.Time            `json:"-"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func NewSession(params GenerationParameters, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		Params:    params,
		State:     IdleState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy safe to hand out while the original keeps mutating.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

// ClientCapabilities is what the browser reports it can do.
type ClientCapabilities struct {
	Clipboard   bool `json:"clipboard"`
	NativeShare bool `json:"nativeShare"`
}

const (
	EmptyStateTitle = "Your article will appear here"
	EmptyStateHint  = "Fill out the form and click \"Generate Article\" to begin."
	ErrorPrefix     = "An error occurred: "
)

type EmptyState struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// DisplayView is the precedence-resolved projection of a session's state:
// loading, then error, then article, then the empty prompt.
type DisplayView struct {
	SessionID string       `json:"sessionId"`
	Kind      ViewKind     `json:"kind"`
	RequestID uint64       `json:"requestId"`
	Loading   bool         `json:"loading"`
	Error     string       `json:"error,omitempty"`
	Article   string       `json:"article,omitempty"`
	Nodes     []RenderNode `json:"nodes,omitempty"`
	Copied    bool         `json:"copied"`
	Empty     *EmptyState  `json:"empty,omitempty"`
}
