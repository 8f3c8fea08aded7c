package scanner

import (
	"fmt"

	"github.com/user/lanscan/internal/iprange"
	"github.com/user/lanscan/internal/model"
	"github.com/user/lanscan/internal/util"
)

// Plan is a validated scan request.
type Plan struct {
	Mode  model.Mode
	Local iprange.IPv4
	Range iprange.Range

	// PrefixOverridden is set when the typed range names another /24; the scan
	// still uses the local prefix.
	PrefixOverridden bool
}

// Targets returns the addresses the plan will probe.
func (p Plan) Targets() []iprange.IPv4 {
	return p.Range.Targets(p.Local)
}

// PlanAuto covers the whole local /24.
func PlanAuto(local iprange.IPv4) Plan {
	return Plan{
		Mode:  model.ModeAuto,
		Local: local,
		Range: iprange.Auto(local),
	}
}

// PlanManual builds a plan from typed addresses. With strict set, the range must
// be ordered and inside the local /24.
func PlanManual(local iprange.IPv4, startText, endText string, strict bool) (Plan, error) {
	r, err := iprange.ParseManual(startText, endText)
	if err != nil {
		return Plan{}, err
	}
	if strict {
		if err := r.Validate(local); err != nil {
			return Plan{}, fmt.Errorf("invalid range: %w", err)
		}
	}

	p := Plan{
		Mode:             model.ModeManual,
		Local:            local,
		Range:            r,
		PrefixOverridden: !r.PrefixMatches(local),
	}
	if p.PrefixOverridden {
		util.Warn("Range %s is outside %s/24; scanning host octets on the local network", r, local.WithLastOctet(0))
	}
	return p, nil
}
