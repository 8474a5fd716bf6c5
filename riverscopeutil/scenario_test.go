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
	"context"
	"os"
	"strings"
	"testing"

	"github.com/watermodel/riverscope"
	"github.com/watermodel/riverscope/background"
)

func TestReadScenario(t *testing.T) {
	f, err := os.Open("testdata/scenario.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	spec, err := ReadScenario(f)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Region != "VA" {
		t.Errorf("Region = %q, want VA", spec.Region)
	}
	if spec.UpstreamFlow != 100 || spec.DischargeFlow != 10 {
		t.Errorf("flows = %g/%g, want 100/10", spec.UpstreamFlow, spec.DischargeFlow)
	}
	if spec.Discharge["PFOA"] != 10 || spec.Discharge["PFOS"] != 8 {
		t.Errorf("discharge = %v", spec.Discharge)
	}

	scenario, err := spec.Scenario()
	if err != nil {
		t.Fatal(err)
	}
	if scenario.FlowCondition != riverscope.Normal {
		t.Errorf("FlowCondition = %v, want Normal", scenario.FlowCondition)
	}
}

func TestReadScenarioBadTOML(t *testing.T) {
	if _, err := ReadScenario(strings.NewReader("UpstreamFlow = [")); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestScenarioBadFlowCondition(t *testing.T) {
	spec := &ScenarioSpec{FlowCondition: "flood"}
	if _, err := spec.Scenario(); err == nil {
		t.Fatal("expected error for unrecognized flow condition")
	}
}

func TestFilterRegions(t *testing.T) {
	samples := []background.Sample{
		{Region: "VA", Compound: "PFOA", Concentration: 3},
		{Region: "NC", Compound: "PFOA", Concentration: 5},
		{Region: "VA", Compound: "PFOS", Concentration: 2},
	}
	if got := filterRegions(samples, nil); len(got) != 3 {
		t.Errorf("empty filter kept %d samples, want 3", len(got))
	}
	got := filterRegions(samples, []string{"va"})
	if len(got) != 2 {
		t.Fatalf("filter kept %d samples, want 2", len(got))
	}
	for _, s := range got {
		if s.Region != "VA" {
			t.Errorf("kept sample from region %q", s.Region)
		}
	}
}

// The command-line paths share one loader, so repeated invocations
// against the same table hit the cache instead of re-parsing.
func TestSharedLoaderReuse(t *testing.T) {
	t1, err := bgLoader.Table(context.Background(), "testdata/medians.csv")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := bgLoader.Table(context.Background(), "testdata/medians.csv")
	if err != nil {
		t.Fatal(err)
	}
	if t1 != t2 {
		t.Error("repeated loads did not share the cached table")
	}
}

func TestCommands(t *testing.T) {
	want := map[string]bool{
		"version": false, "run": false, "ingest": false, "report": false, "serve": false,
	}
	for _, cmd := range Root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
