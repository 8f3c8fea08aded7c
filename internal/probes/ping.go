package probes

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/util"
)

// Pinger sends a single reachability probe.
type Pinger interface {
	Ping(ctx context.Context, addr string, timeout time.Duration) (time.Duration, bool, error)
}

// Resolver performs reverse name lookups. *net.Resolver satisfies it.
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// ICMPPinger sends ICMP echo requests via pro-bing.
type ICMPPinger struct {
	Privileged bool
}

// Ping sends one echo request and waits up to timeout for the reply.
// The socket lives only for the duration of the call.
func (p ICMPPinger) Ping(ctx context.Context, addr string, timeout time.Duration) (time.Duration, bool, error) {
	pinger, err := probing.NewPinger(addr)
	if err != nil {
		return 0, false, fmt.Errorf("create pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(p.Privileged || runtime.GOOS == "windows")

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, false, fmt.Errorf("ping %s: %w", addr, err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, false, nil
	}
	return stats.AvgRtt, true, nil
}

// HostProbe checks one address for reachability and resolves its hostname.
type HostProbe struct {
	pinger        Pinger
	resolver      Resolver
	timeout       time.Duration
	lookupTimeout time.Duration
}

// NewHostProbe creates a new host probe.
func NewHostProbe(pinger Pinger, resolver Resolver, timeout, lookupTimeout time.Duration) *HostProbe {
	if timeout <= 0 {
		timeout = util.DefaultProbeTimeout
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &HostProbe{
		pinger:        pinger,
		resolver:      resolver,
		timeout:       timeout,
		lookupTimeout: lookupTimeout,
	}
}

// NewDefaultHostProbe builds a probe from configuration.
func NewDefaultHostProbe(cfg *util.Config) *HostProbe {
	return NewHostProbe(
		ICMPPinger{Privileged: cfg.Privileged},
		net.DefaultResolver,
		cfg.ProbeTimeout,
		cfg.LookupTimeout,
	)
}

// Timeout returns the echo timeout in use.
func (p *HostProbe) Timeout() time.Duration {
	return p.timeout
}

// Probe pings addr and, when it answers, looks up its hostname.
// It never fails: faults are folded into an unreachable result.
func (p *HostProbe) Probe(ctx context.Context, addr iprange.IPv4) (result model.ScanResult) {
	result = model.ScanResult{
		Address:  addr,
		ProbedAt: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			util.Warn("Probe of %s panicked: %v", addr, r)
			result.Reachable = false
			result.Hostname = ""
			result.Err = fmt.Sprint(r)
		}
	}()

	ip := addr.String()
	rtt, ok, err := p.pinger.Ping(ctx, ip, p.timeout)
	if err != nil {
		util.Debug("Probe of %s failed: %v", ip, err)
		result.Err = err.Error()
		return result
	}
	if !ok {
		return result
	}

	result.Reachable = true
	result.LatencyMs = float64(rtt.Microseconds()) / 1000.0
	result.Hostname = p.lookup(ctx, ip)

	return result
}

func (p *HostProbe) lookup(ctx context.Context, ip string) string {
	ctx, cancel := context.WithTimeout(ctx, p.lookupTimeout)
	defer cancel()

	names, err := p.resolver.LookupAddr(ctx, ip)
	if err != nil {
		util.Debug("Reverse lookup of %s failed: %v", ip, err)
		return ""
	}
	if len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}
