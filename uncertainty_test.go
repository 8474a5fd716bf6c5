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
	"strings"
	"testing"
)

func TestClassifyUncertainty(t *testing.T) {
	var tests = []struct {
		n           int
		pctDetected float64
		want        UncertaintyClass
	}{
		{n: 0, pctDetected: 0, want: UncertaintyLowDataVolume},
		{n: 4, pctDetected: 90, want: UncertaintyLowDataVolume},
		{n: 5, pctDetected: 0.5, want: UncertaintyRarelyDetected},
		{n: 100, pctDetected: 0.99, want: UncertaintyRarelyDetected},
		{n: 5, pctDetected: 1, want: UncertaintySometimesDetected},
		{n: 100, pctDetected: 19.9, want: UncertaintySometimesDetected},
		{n: 5, pctDetected: 20, want: UncertaintyFrequentlyDetected},
		{n: 1000, pctDetected: 95, want: UncertaintyFrequentlyDetected},
	}
	for _, test := range tests {
		if got := ClassifyUncertainty(test.n, test.pctDetected); got != test.want {
			t.Errorf("ClassifyUncertainty(%d, %g) = %q, want %q",
				test.n, test.pctDetected, got, test.want)
		}
	}
}

// RunWithStats must attach the monitoring record and its uncertainty
// class to each compound, and flag weakly supported compounds in the
// result notes.
func TestRunWithStats(t *testing.T) {
	sim := NewSimulator(Config{})
	background := BackgroundLevels{"PFOA": 2, "PFOS": 1}
	stats := BackgroundStats{
		"PFOA": {N: 120, PctDetected: 45, Max: 8.8},
		"PFOS": {N: 3, PctDetected: 33, Max: 2.1},
	}
	scenario := &DischargeScenario{
		Discharge:     map[string]float64{"PFOA": 1},
		UpstreamFlow:  100,
		DischargeFlow: 10,
		FlowCondition: Normal,
	}
	r, err := sim.RunWithStats(background, stats, scenario)
	if err != nil {
		t.Fatal(err)
	}

	byID := make(map[string]CompoundResult, len(r.Compounds))
	for _, c := range r.Compounds {
		byID[c.Compound] = c
	}
	pfoa := byID["PFOA"]
	if pfoa.NSamples != 120 || pfoa.PctDetected != 45 || pfoa.BackgroundMax != 8.8 {
		t.Errorf("PFOA stats = %d/%g/%g, want 120/45/8.8",
			pfoa.NSamples, pfoa.PctDetected, pfoa.BackgroundMax)
	}
	if pfoa.Uncertainty != UncertaintyFrequentlyDetected {
		t.Errorf("PFOA uncertainty = %q, want %q", pfoa.Uncertainty, UncertaintyFrequentlyDetected)
	}
	if got := byID["PFOS"].Uncertainty; got != UncertaintyLowDataVolume {
		t.Errorf("PFOS uncertainty = %q, want %q", got, UncertaintyLowDataVolume)
	}

	var found bool
	for _, note := range r.Notes {
		if strings.Contains(note, "PFOS") {
			found = true
		}
	}
	if !found {
		t.Errorf("notes %q do not flag the weakly supported compound", r.Notes)
	}
}

// A compound with no entry in the stats map counts as unmonitored, not
// as an error.
func TestRunWithStatsMissingCompound(t *testing.T) {
	sim := NewSimulator(Config{})
	r, err := sim.RunWithStats(
		BackgroundLevels{"PFOA": 2},
		BackgroundStats{"PFOS": {N: 50, PctDetected: 30}},
		&DischargeScenario{
			Discharge:     map[string]float64{"PFOA": 1},
			UpstreamFlow:  100,
			DischargeFlow: 10,
			FlowCondition: Normal,
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Compounds[0].Uncertainty; got != UncertaintyLowDataVolume {
		t.Errorf("uncertainty = %q, want %q", got, UncertaintyLowDataVolume)
	}
}

// Run without stats leaves the uncertainty fields empty but still
// produces a narrative.
func TestRunWithoutStats(t *testing.T) {
	sim := NewSimulator(Config{})
	r, err := sim.Run(
		BackgroundLevels{"PFOA": 2},
		&DischargeScenario{
			Discharge:     map[string]float64{"PFOA": 1},
			UpstreamFlow:  100,
			DischargeFlow: 10,
			FlowCondition: Normal,
		})
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Compounds[0].Uncertainty; got != "" {
		t.Errorf("uncertainty = %q without stats, want empty", got)
	}
	if len(r.Notes) != 1 || !strings.Contains(r.Notes[0], "No compound exceeds") {
		t.Errorf("notes = %q, want the single all-clear note", r.Notes)
	}
}

// Exceedance notes must name the offending compounds and thresholds.
func TestRunNotesExceedances(t *testing.T) {
	sim := NewSimulator(Config{CombinedMCL: 8})
	r, err := sim.Run(
		BackgroundLevels{"PFOA": 40, "PFOS": 40},
		&DischargeScenario{
			Discharge:     map[string]float64{"PFOA": 100},
			UpstreamFlow:  100,
			DischargeFlow: 10,
			FlowCondition: Normal,
		})
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(r.Notes, " ")
	for _, want := range []string{"Hazard index", "Combined PFOA+PFOS", "PFOA, PFOS"} {
		if !strings.Contains(joined, want) {
			t.Errorf("notes %q missing %q", r.Notes, want)
		}
	}
}
