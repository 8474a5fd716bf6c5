/*
Copyright © 2026 the RiverScope authors.
This file is part of RiverScope.

RiverScope is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RiverScope is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RiverScope.  If not, see <http://www.gnu.org/licenses/>.
*/

package riverscope

import "fmt"

// FlowCondition is a categorical modifier representing hydrologic
// variability in the receiving water. The associated multiplier is
// applied to the upstream flow rate before mixing.
type FlowCondition int

const (
	// Normal represents typical upstream flow (multiplier 1.0).
	Normal FlowCondition = iota

	// LowFlow represents drought-like upstream flow (multiplier 0.5),
	// which dilutes the discharge less.
	LowFlow

	// HighFlow represents flood-like upstream flow (multiplier 2.0).
	HighFlow
)

// Multiplier returns the factor applied to the upstream flow rate
// under this flow condition.
func (fc FlowCondition) Multiplier() float64 {
	switch fc {
	case Normal:
		return 1.0
	case LowFlow:
		return 0.5
	case HighFlow:
		return 2.0
	}
	return 0
}

func (fc FlowCondition) String() string {
	switch fc {
	case Normal:
		return "normal"
	case LowFlow:
		return "low"
	case HighFlow:
		return "high"
	}
	return fmt.Sprintf("FlowCondition(%d)", int(fc))
}

// ParseFlowCondition converts a flow condition name to a
// FlowCondition. Accepted values are "normal", "low", and "high".
func ParseFlowCondition(s string) (FlowCondition, error) {
	switch s {
	case "normal", "":
		return Normal, nil
	case "low", "lowflow":
		return LowFlow, nil
	case "high", "highflow":
		return HighFlow, nil
	}
	return 0, &InvalidInputError{Field: "FlowCondition", Value: s,
		Reason: "must be one of 'normal', 'low', or 'high'"}
}

// BackgroundLevels maps compound identifiers to upstream background
// concentrations [ppt] for one region. It is read-only input supplied
// by the data-preparation collaborator.
type BackgroundLevels map[string]float64

// DischargeScenario describes a point-source discharge into a
// receiving water body.
type DischargeScenario struct {
	// Discharge maps compound identifiers to concentrations in the
	// discharge [ppt]. A zero value represents a no-discharge
	// baseline for that compound.
	Discharge map[string]float64

	// DischargeFlow is the discharge flow rate [MGD]. Must be > 0.
	DischargeFlow float64

	// UpstreamFlow is the receiving-water flow rate upstream of the
	// outfall [MGD]. Must be > 0.
	UpstreamFlow float64

	// FlowCondition modifies UpstreamFlow to represent hydrologic
	// variability.
	FlowCondition FlowCondition
}

// effectiveUpstreamFlow is the upstream flow after the flow-condition
// multiplier has been applied.
func (s *DischargeScenario) effectiveUpstreamFlow() float64 {
	return s.UpstreamFlow * s.FlowCondition.Multiplier()
}

// DilutionFactor returns the fraction of the discharge concentration
// that appears in the fully mixed river,
// Qd / (Qd + Qu·multiplier).
func (s *DischargeScenario) DilutionFactor() float64 {
	return s.DischargeFlow / (s.DischargeFlow + s.effectiveUpstreamFlow())
}

// Mix computes the downstream concentration of each compound under a
// complete-mixing mass balance:
//
//	downstream = (Qu·Cb + Qd·Cd) / (Qu + Qd)
//
// where Qu is the flow-condition-adjusted upstream flow. The result
// covers the union of compounds present in the background table and
// the discharge scenario; a compound absent from one side is treated
// as zero concentration there.
//
// Mix is a single-point instantaneous approximation: it does not model
// dispersion, travel time, or degradation. Inputs are assumed to have
// been validated (flows strictly positive, concentrations
// non-negative); Simulator.Run performs that validation.
func Mix(background BackgroundLevels, scenario *DischargeScenario) map[string]float64 {
	qu := scenario.effectiveUpstreamFlow()
	qd := scenario.DischargeFlow
	denom := qu + qd

	out := make(map[string]float64, len(background)+len(scenario.Discharge))
	for id, cb := range background {
		cd := scenario.Discharge[id]
		out[id] = (qu*cb + qd*cd) / denom
	}
	for id, cd := range scenario.Discharge {
		if _, ok := background[id]; ok {
			continue
		}
		out[id] = qd * cd / denom
	}
	return out
}
