package probes

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lanscan/internal/iprange"
)

// fakePinger answers from a fixed table of reachable hosts.
type fakePinger struct {
	up    map[string]time.Duration
	err   error
	panic bool
	calls []string
}

func (f *fakePinger) Ping(_ context.Context, addr string, _ time.Duration) (time.Duration, bool, error) {
	f.calls = append(f.calls, addr)
	if f.panic {
		panic("malformed reply")
	}
	if f.err != nil {
		return 0, false, f.err
	}
	rtt, ok := f.up[addr]
	return rtt, ok, nil
}

type fakeResolver struct {
	names map[string][]string
	err   error
}

func (f *fakeResolver) LookupAddr(_ context.Context, addr string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	names, ok := f.names[addr]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
	}
	return names, nil
}

func TestHostProbeReachableWithHostname(t *testing.T) {
	pinger := &fakePinger{up: map[string]time.Duration{"192.168.1.10": 1500 * time.Microsecond}}
	resolver := &fakeResolver{names: map[string][]string{"192.168.1.10": {"printer.lan.", "alias.lan."}}}
	probe := NewHostProbe(pinger, resolver, 20*time.Millisecond, time.Second)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.10"))

	assert.True(t, got.Reachable)
	assert.Equal(t, "printer.lan", got.Hostname)
	assert.InDelta(t, 1.5, got.LatencyMs, 0.001)
	assert.Empty(t, got.Err)
	assert.Equal(t, "192.168.1.10", got.Address.String())
	assert.False(t, got.ProbedAt.IsZero())
}

func TestHostProbeTimeout(t *testing.T) {
	pinger := &fakePinger{}
	resolver := &fakeResolver{names: map[string][]string{"192.168.1.11": {"ghost.lan."}}}
	probe := NewHostProbe(pinger, resolver, 20*time.Millisecond, time.Second)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.11"))

	assert.False(t, got.Reachable)
	assert.Empty(t, got.Hostname)
	assert.Empty(t, got.Err)
	assert.Equal(t, []string{"192.168.1.11"}, pinger.calls)
}

func TestHostProbeLookupFailure(t *testing.T) {
	pinger := &fakePinger{up: map[string]time.Duration{"192.168.1.12": time.Millisecond}}
	probe := NewHostProbe(pinger, &fakeResolver{err: errors.New("server misbehaving")}, 0, 0)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.12"))

	assert.True(t, got.Reachable)
	assert.Empty(t, got.Hostname)
	assert.Empty(t, got.Err)
}

func TestHostProbeNoPTRRecord(t *testing.T) {
	pinger := &fakePinger{up: map[string]time.Duration{"192.168.1.13": time.Millisecond}}
	probe := NewHostProbe(pinger, &fakeResolver{}, 0, 0)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.13"))

	assert.True(t, got.Reachable)
	assert.Empty(t, got.Hostname)
}

func TestHostProbePingerError(t *testing.T) {
	pinger := &fakePinger{err: errors.New("socket: operation not permitted")}
	probe := NewHostProbe(pinger, &fakeResolver{}, 0, 0)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.14"))

	assert.False(t, got.Reachable)
	assert.Empty(t, got.Hostname)
	assert.Contains(t, got.Err, "not permitted")
}

func TestHostProbeRecoversPanic(t *testing.T) {
	probe := NewHostProbe(&fakePinger{panic: true}, &fakeResolver{}, 0, 0)

	got := probe.Probe(context.Background(), iprange.MustParse("192.168.1.15"))

	assert.False(t, got.Reachable)
	assert.Empty(t, got.Hostname)
	assert.Equal(t, "malformed reply", got.Err)
	assert.Equal(t, "192.168.1.15", got.Address.String())
}

func TestNewHostProbeDefaults(t *testing.T) {
	probe := NewHostProbe(&fakePinger{}, nil, 0, 0)

	assert.Equal(t, 20*time.Millisecond, probe.Timeout())
	assert.Equal(t, 2*time.Second, probe.lookupTimeout)
	assert.Equal(t, net.DefaultResolver, probe.resolver)
}

func stubAddrs(addrs []net.Addr, err error) func(string) ([]net.Addr, error) {
	return func(string) ([]net.Addr, error) {
		return addrs, err
	}
}

func ipNet(s string) *net.IPNet {
	ip, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestLocalResolverResolve(t *testing.T) {
	tests := []struct {
		name    string
		addrs   []net.Addr
		listErr error
		want    string
		wantErr bool
	}{
		{
			name:  "first ipv4 wins",
			addrs: []net.Addr{ipNet("192.168.1.42/24"), ipNet("10.0.0.5/8")},
			want:  "192.168.1.42",
		},
		{
			name:  "skips loopback and ipv6",
			addrs: []net.Addr{ipNet("127.0.0.1/8"), ipNet("fe80::1/64"), ipNet("172.16.4.2/16")},
			want:  "172.16.4.2",
		},
		{
			name:  "plain ip addr",
			addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("10.1.1.1")}},
			want:  "10.1.1.1",
		},
		{
			name:    "only loopback",
			addrs:   []net.Addr{ipNet("127.0.0.1/8"), ipNet("::1/128")},
			wantErr: true,
		},
		{
			name:    "no addresses",
			wantErr: true,
		},
		{
			name:    "listing fails",
			listErr: errors.New("route ip+net: no such network interface"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLocalResolver("")
			r.addrs = stubAddrs(tt.addrs, tt.listErr)

			got, err := r.Resolve()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoIPv4Interface)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLocalResolverNamedInterface(t *testing.T) {
	var asked string
	r := NewLocalResolver("wlan0")
	r.addrs = func(name string) ([]net.Addr, error) {
		asked = name
		return nil, nil
	}

	_, err := r.Resolve()
	require.ErrorIs(t, err, ErrNoIPv4Interface)
	assert.Equal(t, "wlan0", asked)
	assert.Contains(t, err.Error(), "wlan0")
}
