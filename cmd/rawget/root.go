package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rawget "github.com/frankli0324/go-rawget"
	"github.com/frankli0324/go-rawget/dialer"
)

type options struct {
	dnsServer   string
	network     string
	staticHosts map[string]string
	dialTimeout time.Duration
	recvBuffer  int
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "rawget HOST [PATH]",
		Short: "Fetch a path with a bare HTTP/1.0 GET over raw TCP",
		Long: `rawget resolves HOST, connects to its first IPv4 address on port 80,
sends "GET PATH HTTP/1.0" with a single Host header and copies whatever
the server sends, status line and headers included, to stdout.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := rawget.URI{Host: args[0], Path: "/"}
			if len(args) == 2 {
				uri.Path = args[1]
			}
			return run(cmd, opts, uri)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.dnsServer, "dns-server", "", "DNS server to query (host[:port]), defaults to the system resolver")
	flags.StringVar(&opts.network, "network", "ip", `address families to resolve: "ip", "ip4" or "ip6"`)
	flags.StringToStringVar(&opts.staticHosts, "static-host", nil, "resolve NAME to ADDR without DNS (NAME=ADDR, repeatable)")
	flags.DurationVar(&opts.dialTimeout, "dial-timeout", dialer.DefaultDialTimeout, "timeout for establishing the TCP connection")
	flags.IntVar(&opts.recvBuffer, "recv-buffer", 0, "SO_RCVBUF size in bytes, 0 keeps the system default")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")
	return cmd
}

func (o *options) validate() error {
	switch o.network {
	case "ip", "ip4", "ip6":
	default:
		return fmt.Errorf("invalid --network %q", o.network)
	}
	if o.recvBuffer < 0 {
		return fmt.Errorf("invalid --recv-buffer %d", o.recvBuffer)
	}
	return nil
}

func (o *options) runtime(logger *zap.Logger) *dialer.Runtime {
	rt := dialer.NewRuntime(logger)
	rt.ResolveConfig = &dialer.ResolveConfig{
		CustomDNSServer: o.dnsServer,
		Network:         o.network,
		StaticHosts:     o.staticHosts,
	}
	rt.SocketConfig.RecvBuffer = o.recvBuffer
	rt.DialTimeout = o.dialTimeout
	return rt
}

func run(cmd *cobra.Command, opts *options, uri rawget.URI) error {
	if err := opts.validate(); err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	defer logger.Sync()

	var failure error
	out := cmd.OutOrStdout()
	rawget.New(opts.runtime(logger), uri).Begin(cmd.Context(), func(ev rawget.Event) {
		switch ev.Kind {
		case rawget.EventPayload:
			if _, err := out.Write(ev.Payload); err != nil && failure == nil {
				failure = fmt.Errorf("write output: %w", err)
			}
		case rawget.EventError:
			failure = fmt.Errorf("fetch %s: %w", uri, ev.Err)
		}
	})
	return failure
}

// newLogger logs to w only, stdout carries the payload
func newLogger(w io.Writer, debug bool) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		level.SetLevel(zap.DebugLevel)
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
