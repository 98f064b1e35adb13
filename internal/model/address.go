package model

import (
	"net"
	"net/netip"
)

type Family uint8

const (
	V4 Family = iota
	V6
)

func (f Family) String() string {
	if f == V4 {
		return "ipv4"
	}
	return "ipv6"
}

// Address is one result of name resolution. Callers choosing between
// addresses should only look at Family.
type Address struct {
	Family Family
	IP     netip.Addr
}

func AddressV4(ip netip.Addr) Address { return Address{Family: V4, IP: ip.Unmap()} }
func AddressV6(ip netip.Addr) Address { return Address{Family: V6, IP: ip} }

// AddressFromIP tags a resolved net.IP, treating IPv4-mapped IPv6 forms
// as IPv4. ok is false for a malformed ip.
func AddressFromIP(ip net.IP) (addr Address, ok bool) {
	a, ok := netip.AddrFromSlice(ip)
	if !ok {
		return Address{}, false
	}
	if a.Unmap().Is4() {
		return AddressV4(a), true
	}
	return AddressV6(a), true
}

func (a Address) String() string {
	return a.IP.String()
}

// FirstV4 returns the first IPv4 address in addrs.
func FirstV4(addrs []Address) (Address, bool) {
	for _, a := range addrs {
		if a.Family == V4 {
			return a, true
		}
	}
	return Address{}, false
}
