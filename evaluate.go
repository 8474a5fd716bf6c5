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
	"sort"

	"github.com/gonum/floats"
)

// MCLStatus classifies a downstream concentration relative to the
// compound's individual MCL.
type MCLStatus string

const (
	// StatusNoMCL means no individual MCL exists for the compound.
	StatusNoMCL MCLStatus = "no_mcl"

	// StatusBelowHalfMCL means the concentration is below 50% of the MCL.
	StatusBelowHalfMCL MCLStatus = "below_half_mcl"

	// StatusNearMCL means the concentration is between 50% and 100%
	// of the MCL, inclusive. A concentration exactly at the MCL is
	// compliant.
	StatusNearMCL MCLStatus = "near_mcl"

	// StatusAboveMCL means the concentration strictly exceeds the MCL.
	StatusAboveMCL MCLStatus = "above_mcl"
)

// Evaluation holds the regulatory assessment of a set of downstream
// concentrations.
type Evaluation struct {
	// Exceedances flags compounds whose downstream concentration
	// strictly exceeds their MCL. Concentrations exactly equal to the
	// MCL are compliant.
	Exceedances map[string]bool

	// Statuses classifies each compound relative to its MCL.
	Statuses map[string]MCLStatus

	// HazardQuotients holds downstream/referenceDose for each compound
	// with a usable reference dose.
	HazardQuotients map[string]float64

	// HazardIndex is the sum of the hazard quotients.
	HazardIndex float64

	// ExcludedFromHI lists, in lexicographic order, the compounds that
	// were left out of the hazard index because they lack a usable
	// reference dose.
	ExcludedFromHI []string
}

// ExceedanceCount returns the number of compounds flagged as
// exceeding their MCL.
func (e *Evaluation) ExceedanceCount() int {
	var n int
	for _, x := range e.Exceedances {
		if x {
			n++
		}
	}
	return n
}

// Evaluate compares each downstream concentration to the registry's
// regulatory limits and aggregates the multi-compound hazard index.
// A compound present in downstream but absent from the registry is a
// data-contract violation and returns an UnknownCompoundError rather
// than being silently skipped.
func Evaluate(downstream map[string]float64, registry *Registry) (*Evaluation, error) {
	ids := make([]string, 0, len(downstream))
	for id := range downstream {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ev := &Evaluation{
		Exceedances:     make(map[string]bool, len(ids)),
		Statuses:        make(map[string]MCLStatus, len(ids)),
		HazardQuotients: make(map[string]float64, len(ids)),
	}
	quotients := make([]float64, 0, len(ids))
	for _, id := range ids {
		c, err := registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		conc := downstream[id]

		ev.Exceedances[c.ID] = c.MCL > 0 && conc > c.MCL
		ev.Statuses[c.ID] = mclStatus(conc, c.MCL)

		if c.ReferenceDose > 0 {
			hq := conc / c.ReferenceDose
			ev.HazardQuotients[c.ID] = hq
			quotients = append(quotients, hq)
		} else {
			ev.ExcludedFromHI = append(ev.ExcludedFromHI, c.ID)
		}
	}
	ev.HazardIndex = floats.Sum(quotients)
	sort.Strings(ev.ExcludedFromHI)
	return ev, nil
}

func mclStatus(conc, mcl float64) MCLStatus {
	switch {
	case mcl <= 0:
		return StatusNoMCL
	case conc > mcl:
		return StatusAboveMCL
	case conc < 0.5*mcl:
		return StatusBelowHalfMCL
	}
	return StatusNearMCL
}
