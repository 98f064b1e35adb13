package dialer

import (
	"context"
	"net"
	"net/netip"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/net/idna"

	"github.com/frankli0324/go-rawget/internal/model"
)

// Resolver maps a hostname to the addresses it resolves to.
// (*Runtime).Resolve is the real implementation.
type Resolver func(ctx context.Context, host string) ([]model.Address, error)

type ResolveConfig struct {
	CustomDNSServer string            // host:port, port defaults to 53
	Network         string            // one of "ip4", "ip6", default is "ip"
	StaticHosts     map[string]string // resembles /etc/hosts
}

func (c *ResolveConfig) Clone() *ResolveConfig {
	if c == nil {
		return nil
	}
	hosts := make(map[string]string, len(c.StaticHosts))
	for k, v := range c.StaticHosts {
		hosts[k] = v
	}
	return &ResolveConfig{
		CustomDNSServer: c.CustomDNSServer,
		Network:         c.Network,
		StaticHosts:     hosts,
	}
}

func (c *ResolveConfig) network() string {
	if c == nil || c.Network == "" {
		return "ip"
	}
	return c.Network
}

func (c *ResolveConfig) server() string {
	if c == nil || c.CustomDNSServer == "" {
		return ""
	}
	if _, _, err := net.SplitHostPort(c.CustomDNSServer); err != nil {
		return net.JoinHostPort(c.CustomDNSServer, "53")
	}
	return c.CustomDNSServer
}

// this type should not be used outside this file.
// prevents non-custom DNS server contexts to iterate through all keys
type dnsServerCtx struct {
	context.Context
	server string
}

var dnsServerCtxKey = &dnsServerCtx{nil, "dns-server"} // non-nil pointer to any object, definitely unique

func (c dnsServerCtx) Value(key interface{}) interface{} {
	if key == dnsServerCtxKey {
		return c.server
	}
	return c.Context.Value(key)
}

var customServerResolver = net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		if v, ok := ctx.Value(dnsServerCtxKey).(string); ok && v != "" {
			return zeroDialer.DialContext(ctx, network, v)
		}
		return zeroDialer.DialContext(ctx, network, address)
	},
}

// Resolve implements Resolver. IP literals and StaticHosts entries are
// answered locally, everything else is normalized with IDNA lookup rules
// and sent to the configured DNS server.
func (rt *Runtime) Resolve(ctx context.Context, host string) ([]model.Address, error) {
	if host == "" {
		return nil, errors.New("empty host")
	}
	if ip, err := netip.ParseAddr(host); err == nil {
		return []model.Address{tagAddr(ip)}, nil
	}
	if rt.ResolveConfig != nil {
		if static, ok := rt.ResolveConfig.StaticHosts[host]; ok {
			ip, err := netip.ParseAddr(static)
			if err != nil {
				return nil, errors.Wrapf(err, "static host %q", host)
			}
			return []model.Address{tagAddr(ip)}, nil
		}
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid host %q", host)
	}
	ips, err := rt.LookupIPServer(ctx, rt.ResolveConfig.network(), ascii, rt.ResolveConfig.server())
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", host)
	}
	addrs := make([]model.Address, 0, len(ips))
	for _, ip := range ips {
		if a, ok := model.AddressFromIP(ip); ok {
			addrs = append(addrs, a)
		}
	}
	rt.logger().Debug("resolved host", zap.String("host", host), zap.Int("addrs", len(addrs)))
	return addrs, nil
}

// LookupIPServer performs DNS lookup for a host on a custom dns server,
// it calls [net.Resolver.LookupIP] with a Go Resolver behind the scenes.
// An empty dns uses the system configuration.
func (rt *Runtime) LookupIPServer(ctx context.Context, network, host, dns string) ([]net.IP, error) {
	return customServerResolver.LookupIP(dnsServerCtx{ctx, dns}, network, host)
}

func tagAddr(ip netip.Addr) model.Address {
	if ip.Unmap().Is4() {
		return model.AddressV4(ip)
	}
	return model.AddressV6(ip)
}

// StaticResolver answers from table only. Unknown hosts fail the way a
// DNS miss does.
func StaticResolver(table map[string][]model.Address) Resolver {
	return func(_ context.Context, host string) ([]model.Address, error) {
		addrs, ok := table[host]
		if !ok {
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		}
		return addrs, nil
	}
}
