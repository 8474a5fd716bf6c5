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
	"fmt"
	"math"
	"sort"
	"strings"
)

// HazardIndexStatus classifies the aggregate hazard index relative to
// the configured threshold.
type HazardIndexStatus string

const (
	// HIWellBelowThreshold means HI < 50% of the threshold.
	HIWellBelowThreshold HazardIndexStatus = "well_below_threshold"

	// HINearThreshold means HI is between 50% and 100% of the
	// threshold, inclusive.
	HINearThreshold HazardIndexStatus = "near_threshold"

	// HIAboveThreshold means HI strictly exceeds the threshold.
	HIAboveThreshold HazardIndexStatus = "above_threshold"
)

// Config holds simulation parameters. It is passed explicitly to
// NewSimulator rather than read from process-wide state.
type Config struct {
	// Registry is the compound catalog to assess against. If nil,
	// DefaultRegistry() is used.
	Registry *Registry

	// HazardIndexThreshold is the hazard index level above which the
	// aggregate mixture is considered a concern. If zero, 1.0 is used.
	HazardIndexThreshold float64

	// CombinedMCL is the combined PFOA+PFOS limit [ppt]. If zero, the
	// combined assessment is omitted from results.
	CombinedMCL float64
}

// Simulator runs discharge-mixing simulations. It is a pure,
// synchronous computation with no I/O; a single Simulator may be used
// from multiple goroutines concurrently.
type Simulator struct {
	cfg Config
}

// NewSimulator creates a Simulator with the given configuration,
// filling in defaults for zero-valued fields.
func NewSimulator(cfg Config) *Simulator {
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.HazardIndexThreshold == 0 {
		cfg.HazardIndexThreshold = 1.0
	}
	return &Simulator{cfg: cfg}
}

// CompoundResult holds the simulation outcome for one compound.
type CompoundResult struct {
	Compound       string    `json:"compound"`
	Background     float64   `json:"background_ppt"`
	Discharge      float64   `json:"discharge_ppt"`
	Downstream     float64   `json:"downstream_ppt"`
	MCL            float64   `json:"mcl_ppt,omitempty"`
	MCLRatio       float64   `json:"mcl_ratio,omitempty"`
	Status         MCLStatus `json:"mcl_status"`
	ExceedsMCL     bool      `json:"exceeds_mcl"`
	HazardQuotient float64   `json:"hazard_quotient"`
	ExcludedFromHI bool      `json:"excluded_from_hazard_index,omitempty"`

	// BackgroundMax, NSamples, PctDetected, and Uncertainty qualify
	// the background monitoring record. They are only populated when
	// the caller supplies BackgroundStats.
	BackgroundMax float64          `json:"background_max_ppt,omitempty"`
	NSamples      int              `json:"n_samples,omitempty"`
	PctDetected   float64          `json:"pct_detected,omitempty"`
	Uncertainty   UncertaintyClass `json:"uncertainty_class,omitempty"`
}

// CombinedAssessment holds the combined PFOA+PFOS evaluation.
type CombinedAssessment struct {
	MCL     float64 `json:"combined_mcl_ppt"`
	Total   float64 `json:"total_ppt"`
	Ratio   float64 `json:"ratio"`
	Exceeds bool    `json:"exceeds"`
}

// Result is the complete outcome of one simulation invocation. It is
// immutable after construction.
type Result struct {
	FlowCondition        string              `json:"flow_condition"`
	UpstreamFlow         float64             `json:"upstream_flow_mgd"`
	DischargeFlow        float64             `json:"discharge_flow_mgd"`
	DilutionFactor       float64             `json:"dilution_factor"`
	Compounds            []CompoundResult    `json:"compounds"`
	HazardIndex          float64             `json:"hazard_index"`
	HazardIndexThreshold float64             `json:"hazard_index_threshold"`
	HazardIndexStatus    HazardIndexStatus   `json:"hazard_index_status"`
	ExcludedFromHI       []string            `json:"excluded_from_hazard_index,omitempty"`
	CombinedPFOAPFOS     *CombinedAssessment `json:"combined_pfoa_pfos,omitempty"`
	ExceedanceCount      int                 `json:"exceedance_count"`
	TotalCompounds       int                 `json:"total_compounds"`
	Score                int                 `json:"score"`
	Category             Category            `json:"category"`

	// Notes is a short narrative of the findings: data-quality
	// caveats and any threshold exceedances.
	Notes []string `json:"notes"`
}

// Run validates the inputs, mixes the discharge into the receiving
// water, evaluates the result against the registry, and derives the
// risk score. It fails fast with a typed error on the first invalid
// input and computes nothing partially. Given identical inputs it
// always produces an identical Result.
func (s *Simulator) Run(background BackgroundLevels, scenario *DischargeScenario) (*Result, error) {
	return s.RunWithStats(background, nil, scenario)
}

// RunWithStats is Run with background monitoring statistics attached.
// The statistics do not influence the mixing or scoring arithmetic;
// they qualify each compound's result with an uncertainty class
// derived from the sample count and detection percentage, with
// compounds absent from stats classified as low-volume. A nil stats
// map leaves the uncertainty fields empty.
func (s *Simulator) RunWithStats(background BackgroundLevels, stats BackgroundStats, scenario *DischargeScenario) (*Result, error) {
	bg, sc, err := s.validate(background, scenario)
	if err != nil {
		return nil, err
	}

	downstream := Mix(bg, sc)
	ev, err := Evaluate(downstream, s.cfg.Registry)
	if err != nil {
		return nil, err
	}

	exceeded := ev.ExceedanceCount()
	total := len(downstream)
	score := Score(ev.HazardIndex, exceeded, total)

	r := &Result{
		FlowCondition:        sc.FlowCondition.String(),
		UpstreamFlow:         sc.UpstreamFlow,
		DischargeFlow:        sc.DischargeFlow,
		DilutionFactor:       sc.DilutionFactor(),
		HazardIndex:          ev.HazardIndex,
		HazardIndexThreshold: s.cfg.HazardIndexThreshold,
		HazardIndexStatus:    hiStatus(ev.HazardIndex, s.cfg.HazardIndexThreshold),
		ExcludedFromHI:       ev.ExcludedFromHI,
		ExceedanceCount:      exceeded,
		TotalCompounds:       total,
		Score:                score,
		Category:             CategoryForScore(score),
	}

	normStats := make(map[string]BackgroundStat, len(stats))
	for id, st := range stats {
		normStats[normalizeID(id)] = st
	}

	ids := make([]string, 0, len(downstream))
	for id := range downstream {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		c, err := s.cfg.Registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		cr := CompoundResult{
			Compound:       c.ID,
			Background:     bg[id],
			Discharge:      sc.Discharge[id],
			Downstream:     downstream[id],
			MCL:            c.MCL,
			Status:         ev.Statuses[c.ID],
			ExceedsMCL:     ev.Exceedances[c.ID],
			HazardQuotient: ev.HazardQuotients[c.ID],
		}
		if c.MCL > 0 {
			cr.MCLRatio = downstream[id] / c.MCL
		}
		if c.ReferenceDose <= 0 {
			cr.ExcludedFromHI = true
		}
		if stats != nil {
			st := normStats[id]
			cr.BackgroundMax = st.Max
			cr.NSamples = st.N
			cr.PctDetected = st.PctDetected
			cr.Uncertainty = ClassifyUncertainty(st.N, st.PctDetected)
		}
		r.Compounds = append(r.Compounds, cr)
	}

	if s.cfg.CombinedMCL > 0 {
		r.CombinedPFOAPFOS = s.combined(downstream)
	}
	r.Notes = notes(r)
	return r, nil
}

// notes builds the result narrative: data-quality caveats for
// compounds with weak background records, followed by any threshold
// exceedances. A result with nothing to flag gets a single
// all-clear note.
func notes(r *Result) []string {
	var out []string

	var lowData []string
	for _, c := range r.Compounds {
		if c.Uncertainty == UncertaintyLowDataVolume || c.Uncertainty == UncertaintyRarelyDetected {
			lowData = append(lowData, c.Compound)
		}
	}
	if len(lowData) > 0 {
		sort.Strings(lowData)
		out = append(out, "Background data is limited or rarely above detection for: "+
			strings.Join(lowData, ", ")+".")
	}

	if r.HazardIndex > r.HazardIndexThreshold {
		out = append(out, fmt.Sprintf("Hazard index exceeds the reference threshold (HI=%.2f).",
			r.HazardIndex))
	}
	if c := r.CombinedPFOAPFOS; c != nil && c.Exceeds {
		out = append(out, fmt.Sprintf("Combined PFOA+PFOS concentration exceeds the combined limit (ratio=%.2f).",
			c.Ratio))
	}

	var exceeding []string
	for _, c := range r.Compounds {
		if c.ExceedsMCL {
			exceeding = append(exceeding, c.Compound)
		}
	}
	if len(exceeding) > 0 {
		sort.Strings(exceeding)
		out = append(out, "Individual MCL exceedances: "+strings.Join(exceeding, ", ")+".")
	}

	if len(out) == 0 {
		out = append(out, "No compound exceeds its MCL or the hazard index threshold "+
			"under the assumed background and mixing conditions.")
	}
	return out
}

// combined assesses the summed PFOA and PFOS downstream concentration
// against the combined MCL. Compounds absent from the scenario
// contribute zero.
func (s *Simulator) combined(downstream map[string]float64) *CombinedAssessment {
	total := downstream[normalizeID(PFOA.ID)] + downstream[normalizeID(PFOS.ID)]
	ratio := total / s.cfg.CombinedMCL
	return &CombinedAssessment{
		MCL:     s.cfg.CombinedMCL,
		Total:   total,
		Ratio:   ratio,
		Exceeds: ratio > 1,
	}
}

// validate checks every input before any mixing arithmetic runs and
// returns copies of the background and scenario with compound
// identifiers normalized to their registry form.
func (s *Simulator) validate(background BackgroundLevels, scenario *DischargeScenario) (BackgroundLevels, *DischargeScenario, error) {
	if scenario == nil {
		return nil, nil, &InvalidInputError{Field: "Scenario", Value: nil,
			Reason: "scenario must not be nil"}
	}
	if err := checkFlow("UpstreamFlow", scenario.UpstreamFlow); err != nil {
		return nil, nil, err
	}
	if err := checkFlow("DischargeFlow", scenario.DischargeFlow); err != nil {
		return nil, nil, err
	}
	if scenario.FlowCondition.Multiplier() == 0 {
		return nil, nil, &InvalidInputError{Field: "FlowCondition",
			Value: int(scenario.FlowCondition), Reason: "unrecognized flow condition"}
	}
	if len(background) == 0 {
		return nil, nil, &InvalidInputError{Field: "Background", Value: nil,
			Reason: "region has no background data"}
	}

	bg, err := s.normalizeConcentrations("Background", background)
	if err != nil {
		return nil, nil, err
	}
	discharge, err := s.normalizeConcentrations("Discharge", scenario.Discharge)
	if err != nil {
		return nil, nil, err
	}
	sc := *scenario
	sc.Discharge = discharge
	return bg, &sc, nil
}

// normalizeConcentrations validates a concentration map and rekeys it
// by canonical registry identifiers. Iteration is in sorted order so
// that the first error reported is deterministic.
func (s *Simulator) normalizeConcentrations(field string, m map[string]float64) (map[string]float64, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[string]float64, len(m))
	for _, id := range ids {
		conc := m[id]
		if math.IsNaN(conc) || math.IsInf(conc, 0) || conc < 0 {
			return nil, &InvalidInputError{
				Field:  fmt.Sprintf("%s[%s]", field, id),
				Value:  conc,
				Reason: "concentration must be finite and non-negative",
			}
		}
		c, err := s.cfg.Registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		out[normalizeID(c.ID)] = conc
	}
	return out, nil
}

func checkFlow(field string, q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return &InvalidInputError{Field: field, Value: q,
			Reason: "flow rate must be finite and positive"}
	}
	return nil
}

func hiStatus(hi, threshold float64) HazardIndexStatus {
	switch {
	case hi > threshold:
		return HIAboveThreshold
	case hi >= 0.5*threshold:
		return HINearThreshold
	}
	return HIWellBelowThreshold
}
