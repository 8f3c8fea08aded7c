// Package iprange provides IPv4 address values and the /24 scan ranges built from them.
package iprange

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

var (
	// ErrInvalidAddressSyntax is returned when text is not an IPv4 dotted quad.
	ErrInvalidAddressSyntax = errors.New("invalid IPv4 address")

	// ErrRangeOrder is returned by strict validation when start is above end.
	ErrRangeOrder = errors.New("start address is above end address")

	// ErrOutsideLocalSubnet is returned by strict validation when an end of the
	// range is not in the local /24.
	ErrOutsideLocalSubnet = errors.New("address is outside the local /24")
)

// IPv4 is an IPv4 address ordered by its 32-bit value.
type IPv4 [4]byte

// FromUint32 builds an address from its 32-bit value.
func FromUint32(v uint32) IPv4 {
	return IPv4{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// FromNetIP converts a net.IP. ok is false when ip has no IPv4 form.
func FromNetIP(ip net.IP) (IPv4, bool) {
	v4 := ip.To4()
	if v4 == nil {
		return IPv4{}, false
	}
	return IPv4{v4[0], v4[1], v4[2], v4[3]}, true
}

// Parse parses a dotted-quad IPv4 address.
func Parse(text string) (IPv4, error) {
	s := strings.TrimSpace(text)
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return IPv4{}, fmt.Errorf("%w: %q", ErrInvalidAddressSyntax, text)
	}
	return IPv4(addr.As4()), nil
}

// MustParse is Parse for constants and tests.
func MustParse(text string) IPv4 {
	ip, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return ip
}

// Uint32 returns the address as a big-endian 32-bit value.
func (ip IPv4) Uint32() uint32 {
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

// Octet returns octet i (0-3).
func (ip IPv4) Octet(i int) byte {
	return ip[i]
}

// WithLastOctet returns a copy of ip with the host octet replaced.
func (ip IPv4) WithLastOctet(b byte) IPv4 {
	ip[3] = b
	return ip
}

// SamePrefix24 reports whether ip and other share their first three octets.
func (ip IPv4) SamePrefix24(other IPv4) bool {
	return ip[0] == other[0] && ip[1] == other[1] && ip[2] == other[2]
}

// Compare returns -1, 0 or +1 by numeric order.
func (ip IPv4) Compare(other IPv4) int {
	a, b := ip.Uint32(), other.Uint32()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String returns the dotted-quad form.
func (ip IPv4) String() string {
	return netip.AddrFrom4(ip).String()
}

// MarshalText implements encoding.TextMarshaler.
func (ip IPv4) MarshalText() ([]byte, error) {
	return []byte(ip.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ip *IPv4) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*ip = parsed
	return nil
}
