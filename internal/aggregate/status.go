// FilePath: internal/aggregate/status.go
package aggregate

// BinStatus classifies a bin's overall condition.
type BinStatus string

const (
	StatusNormal   BinStatus = "normal"
	StatusWarning  BinStatus = "warning"
	StatusCritical BinStatus = "critical"
)

// Policy is one named set of classification thresholds. The dashboard
// carries two independent profiles that were never unified upstream; keep
// them separate.
type Policy struct {
	Name string

	// Critical thresholds. First match wins; fire always dominates.
	FillCritical float64
	GasCritical  float64

	// Warning thresholds.
	FillWarning float64
	GasWarning  float64

	// UseFill disables fill-level checks for profiles that only watch gas.
	UseFill bool
}

// BinStatusPolicy is the profile behind the bin status grid.
var BinStatusPolicy = Policy{
	Name:         "bin_status",
	FillCritical: 80,
	GasCritical:  3000,
	FillWarning:  60,
	GasWarning:   2500,
	UseFill:      true,
}

// SafetyPanelPolicy is the stricter gas-only profile behind the safety
// panel. Fill level is not part of this profile.
var SafetyPanelPolicy = Policy{
	Name:        "safety_panel",
	GasCritical: 200,
	GasWarning:  150,
}

// Classify maps the current levels to a status under this policy,
// evaluating critical conditions before warnings.
func (p Policy) Classify(fillLevel, gasLevel float64, fireDetected bool) BinStatus {
	if fireDetected || (p.UseFill && fillLevel > p.FillCritical) || gasLevel > p.GasCritical {
		return StatusCritical
	}
	if (p.UseFill && fillLevel > p.FillWarning) || gasLevel > p.GasWarning {
		return StatusWarning
	}
	return StatusNormal
}
