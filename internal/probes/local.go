// Package probes provides network probing functionality.
package probes

import (
	"errors"
	"fmt"
	"net"

	"github.com/user/lanscan/internal/iprange"
)

// ErrNoIPv4Interface is returned when the machine has no usable IPv4 address.
var ErrNoIPv4Interface = errors.New("no network adapters with an IPv4 address in the system")

// LocalResolver discovers the machine's own IPv4 address.
type LocalResolver struct {
	iface string
	addrs func(iface string) ([]net.Addr, error)
}

// NewLocalResolver creates a resolver. A non-empty iface restricts the search to
// that interface.
func NewLocalResolver(iface string) *LocalResolver {
	return &LocalResolver{
		iface: iface,
		addrs: interfaceAddrs,
	}
}

// Resolve returns the first non-loopback IPv4 address found.
func (r *LocalResolver) Resolve() (iprange.IPv4, error) {
	addrs, err := r.addrs(r.iface)
	if err != nil {
		return iprange.IPv4{}, fmt.Errorf("%w: %v", ErrNoIPv4Interface, err)
	}

	for _, addr := range addrs {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		default:
			continue
		}

		if ip.IsLoopback() {
			continue
		}
		if v4, ok := iprange.FromNetIP(ip); ok {
			return v4, nil
		}
	}

	if r.iface != "" {
		return iprange.IPv4{}, fmt.Errorf("%w (interface %s)", ErrNoIPv4Interface, r.iface)
	}
	return iprange.IPv4{}, ErrNoIPv4Interface
}

func interfaceAddrs(name string) ([]net.Addr, error) {
	if name == "" {
		return net.InterfaceAddrs()
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, err
	}
	return iface.Addrs()
}
