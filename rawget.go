// Package rawget fetches a path from a host with a bare HTTP/1.0 GET over
// its own TCP connection and hands the response back as a stream of
// events instead of a parsed response.
//
//	rt := dialer.NewRuntime(logger)
//	rawget.New(rt, rawget.URI{Host: "example.com", Path: "/"}).Begin(ctx, func(ev rawget.Event) {
//		switch ev.Kind {
//		case rawget.EventPayload:
//			os.Stdout.Write(ev.Payload)
//		case rawget.EventError:
//			log.Println(ev.Err)
//		}
//	})
//
// Begin returns once the request is over. A request that fails reports
// exactly one Error event, always the last one.
package rawget

import (
	"context"

	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/model"
	"github.com/frankli0324/go-rawget/internal/request"
)

type URI = model.URI
type Address = model.Address
type Event = model.RequestEvent
type EventKind = model.EventKind
type StatusCode = model.StatusCode
type RequestError = model.RequestError

type Request = request.HTTPRequest
type Option = request.Option

const (
	EventStatus  = model.EventStatus
	EventPayload = model.EventPayload
	EventError   = model.EventError

	StatusOK      = model.StatusOK
	StatusUnknown = model.StatusUnknown

	ErrDNSResolution = model.ErrDNSResolution
	ErrConnect       = model.ErrConnect
	ErrMisc          = model.ErrMisc
)

var (
	WithLogger   = request.WithLogger
	WithRecorder = request.WithRecorder
)

// New builds a request that resolves and connects through rt.
func New(rt *dialer.Runtime, uri URI, opts ...Option) *Request {
	return request.OnRuntime(rt, uri, opts...)
}

// NewWith builds a request on an explicit resolver and connection
// factory, e.g. the mocks in package dialer.
func NewWith(resolve dialer.Resolver, factory dialer.ConnectionFactory, uri URI, opts ...Option) *Request {
	return request.New(resolve, factory, uri, opts...)
}

// Sequence runs r and returns every event it emitted, in order.
func Sequence(ctx context.Context, r *Request) []Event {
	return request.Sequence(ctx, r)
}
