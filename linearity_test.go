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

import (
	"math"
	"testing"

	"github.com/GaryBoone/GoStats/stats"
)

// The mass balance is affine in the discharge concentration: sweeping
// one compound's discharge concentration must produce downstream
// concentrations on a straight line with slope equal to the dilution
// factor.
func TestMixLinearInDischarge(t *testing.T) {
	background := BackgroundLevels{"PFOA": 2.4}
	var concs, downstreams []float64
	scenario := &DischargeScenario{
		UpstreamFlow:  100,
		DischargeFlow: 10,
		FlowCondition: Normal,
	}
	for cd := 0.0; cd <= 50; cd += 2.5 {
		scenario.Discharge = map[string]float64{"PFOA": cd}
		concs = append(concs, cd)
		downstreams = append(downstreams, Mix(background, scenario)["PFOA"])
	}

	slope, _, rsquared, _, _, _ := stats.LinearRegression(concs, downstreams)
	if want := scenario.DilutionFactor(); math.Abs(slope-want) > 1e-6 {
		t.Errorf("slope = %g, want dilution factor %g", slope, want)
	}
	if rsquared < 1-1e-9 {
		t.Errorf("r² = %g, want 1", rsquared)
	}
}
