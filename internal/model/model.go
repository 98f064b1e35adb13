package model

import "strconv"

// URI is the target of a request. There is no scheme, port or query,
// the port is always 80.
type URI struct {
	Host string
	Path string
}

func (u URI) String() string {
	return u.Host + u.Path
}

type StatusCode int

const (
	StatusOK      StatusCode = 200
	StatusUnknown StatusCode = 0
)

func (s StatusCode) String() string {
	if s == StatusOK {
		return "200 OK"
	}
	return "unknown status"
}

// RequestError classifies every failure a request can report.
type RequestError uint8

const (
	ErrDNSResolution RequestError = iota
	ErrConnect
	ErrMisc
)

func (e RequestError) String() string {
	switch e {
	case ErrDNSResolution:
		return "dns resolution"
	case ErrConnect:
		return "connect"
	case ErrMisc:
		return "misc"
	}
	return "RequestError(" + strconv.Itoa(int(e)) + ")"
}

func (e RequestError) Error() string {
	return "rawget: " + e.String() + " error"
}

type EventKind uint8

const (
	EventStatus EventKind = iota
	EventPayload
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventPayload:
		return "payload"
	case EventError:
		return "error"
	}
	return "unknown"
}

// RequestEvent is the only channel of information from a running request
// to its caller. Exactly one of Status, Payload or Err is meaningful,
// as selected by Kind. A nil Payload means the chunk carried no data.
type RequestEvent struct {
	Kind    EventKind
	Status  StatusCode
	Payload []byte
	Err     RequestError
}

func StatusEvent(s StatusCode) RequestEvent {
	return RequestEvent{Kind: EventStatus, Status: s}
}

func PayloadEvent(b []byte) RequestEvent {
	return RequestEvent{Kind: EventPayload, Payload: b}
}

func ErrorEvent(e RequestError) RequestEvent {
	return RequestEvent{Kind: EventError, Err: e}
}

func (e RequestEvent) IsError() bool {
	return e.Kind == EventError
}

func (e RequestEvent) String() string {
	switch e.Kind {
	case EventStatus:
		return "Status(" + e.Status.String() + ")"
	case EventPayload:
		return "Payload(" + strconv.Itoa(len(e.Payload)) + " bytes)"
	case EventError:
		return "Error(" + e.Err.String() + ")"
	}
	return "Event(" + e.Kind.String() + ")"
}
