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

// Package background prepares per-region background concentration
// tables from raw regulatory monitoring data. It cleans the EPA UCMR5
// occurrence export (unit conversion from µg/L to ppt, censored-value
// handling, per-region median aggregation) into the read-only input
// the simulation engine consumes.
package background

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// uglToPpt converts µg/L to parts per trillion (ng/L).
const uglToPpt = 1000.0

// ucmrNames maps contaminant names as they appear in the UCMR5
// "Contaminant" column (upper-cased) to canonical compound
// identifiers. Contaminants not listed here are skipped during
// ingestion.
var ucmrNames = map[string]string{
	"PFOA":    "PFOA",
	"PFOS":    "PFOS",
	"PFHXS":   "PFHxS",
	"PFNA":    "PFNA",
	"PFBS":    "PFBS",
	"HFPO-DA": "HFPO-DA",
	"GENX":    "HFPO-DA",
}

// Sample is one cleaned monitoring result.
type Sample struct {
	// Region is the political subdivision (state abbreviation) the
	// sample was collected in.
	Region string

	// Compound is the canonical compound identifier.
	Compound string

	// Concentration is the measured concentration [ppt].
	Concentration float64

	// Censored reports whether the result was below the minimum
	// reporting level. Censored results carry a concentration of zero.
	Censored bool
}

// ReadUCMR reads a tab-delimited UCMR5 occurrence export and returns
// the cleaned samples for tracked compounds. Results reported with a
// "<" sign are below the minimum reporting level and are treated as
// zero. Rows for untracked contaminants and rows with non-numeric
// result values are skipped.
func ReadUCMR(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("background: reading UCMR header: %v", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var (
		stateCol, stateOK = columnIndex(cols, "State", "STATE", "state")
		contCol, contOK   = columnIndex(cols, "Contaminant")
		valueCol, valueOK = columnIndex(cols, "AnalyticalResultValue")
		signCol, signOK   = columnIndex(cols, "AnalyticalResultsSign")
	)
	if !stateOK || !contOK || !valueOK {
		return nil, fmt.Errorf("background: UCMR input is missing a State, "+
			"Contaminant, or AnalyticalResultValue column; have %v", header)
	}

	var samples []Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("background: reading UCMR line %d: %v", line, err)
		}
		if len(rec) <= stateCol || len(rec) <= contCol || len(rec) <= valueCol {
			continue
		}
		compound, ok := ucmrNames[strings.ToUpper(strings.TrimSpace(rec[contCol]))]
		if !ok {
			continue
		}
		region := strings.ToUpper(strings.TrimSpace(rec[stateCol]))
		if region == "" {
			continue
		}

		censored := signOK && len(rec) > signCol && strings.TrimSpace(rec[signCol]) == "<"
		var conc float64
		if !censored {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[valueCol]), 64)
			if err != nil || v < 0 {
				continue
			}
			conc = v * uglToPpt
		}
		samples = append(samples, Sample{
			Region:        region,
			Compound:      compound,
			Concentration: conc,
			Censored:      censored,
		})
	}
	return samples, nil
}

func columnIndex(cols map[string]int, names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := cols[name]; ok {
			return i, true
		}
	}
	return 0, false
}
