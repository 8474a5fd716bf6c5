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
	"strings"
)

// Compound holds the regulatory parameters for one tracked contaminant.
// All concentrations are in parts per trillion (ppt; ng/L).
type Compound struct {
	// ID is the canonical identifier, e.g. "PFOA" or "HFPO-DA".
	ID string

	// Name is the full chemical name, for reports.
	Name string

	// MCL is the Maximum Contaminant Level. A zero value means no
	// individual MCL has been established for this compound.
	MCL float64

	// ReferenceDose is the health-based benchmark concentration used
	// as the denominator of this compound's hazard quotient. A zero
	// value excludes the compound from hazard index calculations.
	ReferenceDose float64
}

// PFOA is perfluorooctanoic acid, regulated with an individual MCL in:
//
// US EPA (2024). PFAS National Primary Drinking Water Regulation.
// Federal Register 89 FR 32532.
var PFOA = Compound{
	ID:            "PFOA",
	Name:          "Perfluorooctanoic acid",
	MCL:           4.0,
	ReferenceDose: 4.0,
}

// PFOS is perfluorooctane sulfonic acid, regulated with an individual
// MCL equal to that of PFOA.
var PFOS = Compound{
	ID:            "PFOS",
	Name:          "Perfluorooctane sulfonic acid",
	MCL:           4.0,
	ReferenceDose: 4.0,
}

// PFHxS is perfluorohexane sulfonic acid, one of the four hazard-index
// compounds in the 2024 rule. The reference dose is the EPA
// health-based water concentration.
var PFHxS = Compound{
	ID:            "PFHxS",
	Name:          "Perfluorohexane sulfonic acid",
	MCL:           10.0,
	ReferenceDose: 10.0,
}

// PFNA is perfluorononanoic acid, a hazard-index compound.
var PFNA = Compound{
	ID:            "PFNA",
	Name:          "Perfluorononanoic acid",
	MCL:           10.0,
	ReferenceDose: 10.0,
}

// HFPODA is hexafluoropropylene oxide dimer acid (GenX chemicals),
// a hazard-index compound.
var HFPODA = Compound{
	ID:            "HFPO-DA",
	Name:          "Hexafluoropropylene oxide dimer acid",
	MCL:           10.0,
	ReferenceDose: 10.0,
}

// PFBS is perfluorobutane sulfonic acid. It has no individual MCL but
// contributes to the hazard index.
var PFBS = Compound{
	ID:            "PFBS",
	Name:          "Perfluorobutane sulfonic acid",
	MCL:           0,
	ReferenceDose: 2000.0,
}

// Registry is a closed catalog of tracked compounds. It is immutable
// after construction and therefore safe for unrestricted concurrent
// read access.
type Registry struct {
	compounds map[string]Compound
	ids       []string
}

// NewRegistry creates a registry holding the given compounds.
// Compound IDs are matched case-insensitively.
func NewRegistry(compounds ...Compound) *Registry {
	r := &Registry{
		compounds: make(map[string]Compound, len(compounds)),
	}
	for _, c := range compounds {
		key := normalizeID(c.ID)
		if _, ok := r.compounds[key]; !ok {
			r.ids = append(r.ids, key)
		}
		r.compounds[key] = c
	}
	sort.Strings(r.ids)
	return r
}

// DefaultRegistry returns a registry holding the six PFAS covered by
// the 2024 national primary drinking water regulation.
func DefaultRegistry() *Registry {
	return NewRegistry(PFOA, PFOS, PFHxS, PFNA, HFPODA, PFBS)
}

// Lookup returns the compound with the given identifier, or an
// UnknownCompoundError if the identifier is not in the registry.
func (r *Registry) Lookup(id string) (Compound, error) {
	c, ok := r.compounds[normalizeID(id)]
	if !ok {
		return Compound{}, &UnknownCompoundError{ID: id}
	}
	return c, nil
}

// Compounds returns the registered compounds sorted lexicographically
// by identifier, so that iteration order is reproducible across runs.
func (r *Registry) Compounds() []Compound {
	out := make([]Compound, len(r.ids))
	for i, id := range r.ids {
		out[i] = r.compounds[id]
	}
	return out
}

// Len returns the number of registered compounds.
func (r *Registry) Len() int { return len(r.ids) }

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
