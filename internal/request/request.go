package request

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/metrics"
	"github.com/frankli0324/go-rawget/internal/model"
	"github.com/frankli0324/go-rawget/internal/transport"
)

// Port is the only port requests connect to.
const Port = 80

type Option func(*HTTPRequest)

func WithLogger(l *zap.Logger) Option {
	return func(r *HTTPRequest) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithRecorder(m metrics.Recorder) Option {
	return func(r *HTTPRequest) {
		if m != nil {
			r.recorder = m
		}
	}
}

// HTTPRequest drives a single GET for uri. The resolver and factory are
// only read, so they may be shared between requests, and Begin may be
// called any number of times.
type HTTPRequest struct {
	resolve dialer.Resolver
	factory dialer.ConnectionFactory
	uri     model.URI

	transport transport.Transport
	logger    *zap.Logger
	recorder  metrics.Recorder
}

func New(resolve dialer.Resolver, factory dialer.ConnectionFactory, uri model.URI, opts ...Option) *HTTPRequest {
	r := &HTTPRequest{
		resolve:   resolve,
		factory:   factory,
		uri:       uri,
		transport: transport.HTTP1{},
		logger:    zap.NewNop(),
		recorder:  metrics.NopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnRuntime builds a request that resolves and connects through rt and
// logs to rt.Logger unless another logger is given in opts.
func OnRuntime(rt *dialer.Runtime, uri model.URI, opts ...Option) *HTTPRequest {
	return New(rt.Resolve, rt, uri, append([]Option{WithLogger(rt.Logger)}, opts...)...)
}

func (r *HTTPRequest) URI() model.URI { return r.uri }

// Begin runs the request to completion, calling cb for every event in
// the order they happen. Only payload chunks and failures are reported:
// a failure is always the last event, and a request that ends cleanly
// simply stops calling cb. ctx reaches the resolver and the connect
// call, the read loop runs until the transport ends it.
func (r *HTTPRequest) Begin(ctx context.Context, cb func(model.RequestEvent)) {
	start, outcome := time.Now(), metrics.OutcomeSuccess
	defer func() { r.recorder.ObserveRequest(outcome, time.Since(start)) }()

	emit := func(ev model.RequestEvent) {
		r.recorder.ObserveEvent(ev)
		cb(ev)
	}
	fail := func(e model.RequestError) {
		outcome = metrics.OutcomeFailure
		emit(model.ErrorEvent(e))
	}
	log := r.logger.With(zap.Stringer("uri", r.uri))

	log.Debug("looking up uri")
	addr, rerr, ok := r.selectAddress(ctx, log)
	if !ok {
		fail(rerr)
		return
	}
	log.Debug("connecting", zap.Stringer("addr", addr))

	conn, err := r.factory.Connect(ctx, addr, Port)
	if err != nil {
		log.Debug("unable to connect", zap.Stringer("addr", addr), zap.Error(err))
		fail(model.ErrConnect)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Debug("close failed", zap.Error(err))
		}
	}()

	header := r.transport.Encode(r.uri)
	log.Debug("writing request header", zap.ByteString("header", header))
	if err := conn.Write(header); err != nil {
		log.Debug("write failed", zap.Error(err))
		fail(model.ErrMisc)
		return
	}

	h, err := conn.ReadStart()
	if err != nil {
		log.Debug("read start failed", zap.Error(err))
		fail(model.ErrMisc)
		return
	}

	for {
		data, err := h.Recv()
		if err == nil {
			emit(model.PayloadEvent(data))
			continue
		}
		if dialer.IsEOF(err) {
			break
		}
		log.Debug("read error", zap.Error(err))
		r.readStop(conn, h, log)
		fail(model.ErrMisc)
		return
	}
	r.readStop(conn, h, log)
}

// selectAddress resolves the uri host and picks the first IPv4 address.
// IPv6 addresses are never used.
func (r *HTTPRequest) selectAddress(ctx context.Context, log *zap.Logger) (model.Address, model.RequestError, bool) {
	addrs, err := r.resolve(ctx, r.uri.Host)
	if err != nil {
		log.Debug("dns lookup failure", zap.Error(err))
		return model.Address{}, model.ErrDNSResolution, false
	}
	if len(addrs) == 0 {
		log.Debug("got no addresses")
		return model.Address{}, model.ErrMisc, false
	}
	addr, ok := model.FirstV4(addrs)
	if !ok {
		log.Debug("got no ipv4 address", zap.Int("addrs", len(addrs)))
		return model.Address{}, model.ErrMisc, false
	}
	return addr, 0, true
}

func (r *HTTPRequest) readStop(conn dialer.Connection, h *dialer.ReadHandle, log *zap.Logger) {
	if err := conn.ReadStop(h); err != nil {
		log.Debug("read stop failed", zap.Error(err))
	}
}
