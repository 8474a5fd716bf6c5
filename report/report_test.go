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

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/watermodel/riverscope"
)

func testResult(t *testing.T) *riverscope.Result {
	t.Helper()
	sim := riverscope.NewSimulator(riverscope.Config{CombinedMCL: 8})
	r, err := sim.Run(
		riverscope.BackgroundLevels{"PFOA": 3.2, "PFOS": 4.7, "PFHxS": 1.1},
		&riverscope.DischargeScenario{
			Discharge:     map[string]float64{"PFOA": 10, "HFPO-DA": 5},
			UpstreamFlow:  100,
			DischargeFlow: 10,
			FlowCondition: riverscope.Normal,
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestWrite(t *testing.T) {
	var b bytes.Buffer
	meta := Meta{
		SiteName:  "Example outfall 001",
		Region:    "VA",
		Generated: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
	if err := Write(&b, testResult(t), meta); err != nil {
		t.Fatal(err)
	}
	if b.Len() == 0 {
		t.Fatal("empty report")
	}
	if !strings.HasPrefix(b.String(), "%PDF") {
		t.Errorf("output does not start with a PDF header: %q", b.String()[:8])
	}
}

// A report for a result without a combined assessment must still render.
func TestWriteWithoutCombined(t *testing.T) {
	sim := riverscope.NewSimulator(riverscope.Config{})
	r, err := sim.Run(
		riverscope.BackgroundLevels{"PFBS": 12},
		&riverscope.DischargeScenario{
			UpstreamFlow:  50,
			DischargeFlow: 2,
			FlowCondition: riverscope.HighFlow,
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := Write(&b, r, Meta{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "%PDF") {
		t.Error("output is not a PDF")
	}
}
