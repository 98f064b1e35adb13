package dialer_test

import (
	"context"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/model"
)

func TestResolveLocal(t *testing.T) {
	rt := dialer.NewRuntime(nil)
	rt.ResolveConfig.StaticHosts = map[string]string{
		"static.test": "10.1.2.3",
		"static6":     "2001:db8::2",
		"broken.test": "not-an-ip",
	}

	cases := map[string]struct {
		host string
		want []model.Address
	}{
		"LiteralV4": {"0.42.42.42", []model.Address{model.AddressV4(netip.MustParseAddr("0.42.42.42"))}},
		"LiteralV6": {"::1", []model.Address{model.AddressV6(netip.MustParseAddr("::1"))}},
		"StaticV4":  {"static.test", []model.Address{model.AddressV4(netip.MustParseAddr("10.1.2.3"))}},
		"StaticV6":  {"static6", []model.Address{model.AddressV6(netip.MustParseAddr("2001:db8::2"))}},
	}
	for name, cas := range cases {
		c := cas
		t.Run(name, func(t *testing.T) {
			got, err := rt.Resolve(context.Background(), c.host)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := rt.Resolve(context.Background(), "broken.test")
	assert.ErrorContains(t, err, `static host "broken.test"`)
	_, err = rt.Resolve(context.Background(), "")
	assert.EqualError(t, err, "empty host")
}

func TestResolveConfigClone(t *testing.T) {
	cfg := &dialer.ResolveConfig{Network: "ip4", StaticHosts: map[string]string{"a": "10.0.0.1"}}
	c := cfg.Clone()
	c.StaticHosts["b"] = "10.0.0.2"
	assert.Len(t, cfg.StaticHosts, 1)
	assert.Equal(t, "ip4", c.Network)

	var nilCfg *dialer.ResolveConfig
	assert.Nil(t, nilCfg.Clone())
}

func TestStaticResolver(t *testing.T) {
	a := model.AddressV4(netip.MustParseAddr("192.0.2.7"))
	resolve := dialer.StaticResolver(map[string][]model.Address{"known": {a}, "empty": {}})

	got, err := resolve(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, []model.Address{a}, got)

	got, err = resolve(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = resolve(context.Background(), "unknown")
	var dnsErr *net.DNSError
	require.ErrorAs(t, err, &dnsErr)
	assert.True(t, dnsErr.IsNotFound)
}
