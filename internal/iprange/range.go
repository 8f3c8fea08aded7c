package iprange

import "fmt"

// Range is an inclusive pair of addresses to scan.
//
// Only the host octets of Start and End drive a scan; the network prefix always
// comes from the local address (see Targets).
type Range struct {
	Start IPv4 `json:"start"`
	End   IPv4 `json:"end"`
}

// Auto returns the full /24 around local: x.y.z.0 through x.y.z.255.
func Auto(local IPv4) Range {
	return Range{
		Start: local.WithLastOctet(0),
		End:   local.WithLastOctet(255),
	}
}

// ParseManual parses user-supplied start and end addresses.
// Only syntax is checked; use Validate for the stricter rules.
func ParseManual(startText, endText string) (Range, error) {
	start, err := Parse(startText)
	if err != nil {
		return Range{}, fmt.Errorf("start: %w", err)
	}
	end, err := Parse(endText)
	if err != nil {
		return Range{}, fmt.Errorf("end: %w", err)
	}
	return Range{Start: start, End: end}, nil
}

// Validate applies the strict manual-mode rules: start must not be above end and
// both ends must share local's /24.
func (r Range) Validate(local IPv4) error {
	if r.Start.Compare(r.End) > 0 {
		return fmt.Errorf("%w: %s > %s", ErrRangeOrder, r.Start, r.End)
	}
	for _, ip := range []IPv4{r.Start, r.End} {
		if !ip.SamePrefix24(local) {
			return fmt.Errorf("%w: %s (local %s)", ErrOutsideLocalSubnet, ip, local)
		}
	}
	return nil
}

// PrefixMatches reports whether both ends already carry local's /24 prefix.
// When false, a scan silently substitutes the local prefix.
func (r Range) PrefixMatches(local IPv4) bool {
	return r.Start.SamePrefix24(local) && r.End.SamePrefix24(local)
}

// Count returns the number of addresses a scan of r emits.
func (r Range) Count() int {
	lo, hi := int(r.Start[3]), int(r.End[3])
	if lo > hi {
		return 0
	}
	return hi - lo + 1
}

// Targets lists the addresses a scan visits, in order: local's first three octets
// with the host octet running from Start's to End's.
func (r Range) Targets(local IPv4) []IPv4 {
	n := r.Count()
	if n == 0 {
		return nil
	}
	out := make([]IPv4, 0, n)
	for i := int(r.Start[3]); i <= int(r.End[3]); i++ {
		out = append(out, local.WithLastOctet(byte(i)))
	}
	return out
}

// String renders the range as "start - end".
func (r Range) String() string {
	return r.Start.String() + " - " + r.End.String()
}
