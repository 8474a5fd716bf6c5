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

package riverscopeutil

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/watermodel/riverscope"
)

// ScenarioSpec is the TOML representation of a discharge scenario,
// for example:
//
//	Region = "VA"
//	UpstreamFlow = 100.0
//	DischargeFlow = 10.0
//	FlowCondition = "normal"
//
//	[Discharge]
//	PFOA = 10.0
//	PFOS = 8.0
type ScenarioSpec struct {
	// Region optionally overrides the configured background region.
	Region string

	// UpstreamFlow is the receiving-water flow rate [MGD].
	UpstreamFlow float64

	// DischargeFlow is the discharge flow rate [MGD].
	DischargeFlow float64

	// FlowCondition is "normal", "low", or "high". Empty means normal.
	FlowCondition string

	// Discharge maps compound identifiers to discharge
	// concentrations [ppt].
	Discharge map[string]float64
}

// ReadScenario decodes a TOML discharge scenario.
func ReadScenario(r io.Reader) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	if _, err := toml.DecodeReader(r, &spec); err != nil {
		return nil, fmt.Errorf("riverscope: decoding scenario: %v", err)
	}
	return &spec, nil
}

// Scenario converts the spec to an engine scenario. Numeric validation
// is left to the engine, which reports typed errors per field.
func (s *ScenarioSpec) Scenario() (*riverscope.DischargeScenario, error) {
	fc, err := riverscope.ParseFlowCondition(s.FlowCondition)
	if err != nil {
		return nil, err
	}
	return &riverscope.DischargeScenario{
		Discharge:     s.Discharge,
		DischargeFlow: s.DischargeFlow,
		UpstreamFlow:  s.UpstreamFlow,
		FlowCondition: fc,
	}, nil
}
