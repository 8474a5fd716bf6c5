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

package background

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gonum/floats"
	"github.com/watermodel/riverscope"
)

// NationalRegion is the pseudo-region holding national medians. It is
// the fallback for regions without their own data.
const NationalRegion = "US"

// Stat summarizes the background monitoring record for one compound
// in one region.
type Stat struct {
	// Median is the median concentration [ppt], including censored
	// zeros.
	Median float64

	// Max is the maximum observed concentration [ppt].
	Max float64

	// N is the number of samples.
	N int

	// PctDetected is the percentage of samples with a nonzero result.
	PctDetected float64
}

// Table holds per-region, per-compound background statistics. It is
// immutable after construction.
type Table struct {
	regions map[string]map[string]Stat
}

// Aggregate builds a background table from cleaned samples: for each
// (region, compound) pair it computes the median, maximum, sample
// count, and detection percentage, and adds a national pseudo-region
// holding the median of the per-region medians for each compound.
func Aggregate(samples []Sample) *Table {
	grouped := make(map[string]map[string][]float64)
	for _, s := range samples {
		byCompound, ok := grouped[s.Region]
		if !ok {
			byCompound = make(map[string][]float64)
			grouped[s.Region] = byCompound
		}
		byCompound[s.Compound] = append(byCompound[s.Compound], s.Concentration)
	}

	t := &Table{regions: make(map[string]map[string]Stat, len(grouped)+1)}
	national := make(map[string][]float64)
	for region, byCompound := range grouped {
		stats := make(map[string]Stat, len(byCompound))
		for compound, concs := range byCompound {
			var detected int
			for _, c := range concs {
				if c > 0 {
					detected++
				}
			}
			stats[compound] = Stat{
				Median:      median(concs),
				Max:         floats.Max(concs),
				N:           len(concs),
				PctDetected: 100 * float64(detected) / float64(len(concs)),
			}
			national[compound] = append(national[compound], stats[compound].Median)
		}
		t.regions[region] = stats
	}

	nat := make(map[string]Stat, len(national))
	for compound, medians := range national {
		nat[compound] = Stat{
			Median:      median(medians),
			Max:         floats.Max(medians),
			N:           len(medians),
			PctDetected: 0,
		}
	}
	t.regions[NationalRegion] = nat
	return t
}

// Region returns the background concentration medians for a region,
// falling back to the national pseudo-region if the region has no
// data. The returned map is a copy; the caller may modify it.
func (t *Table) Region(region string) riverscope.BackgroundLevels {
	stats, ok := t.regions[strings.ToUpper(strings.TrimSpace(region))]
	if !ok {
		stats = t.regions[NationalRegion]
	}
	if len(stats) == 0 {
		return nil
	}
	out := make(riverscope.BackgroundLevels, len(stats))
	for compound, s := range stats {
		out[compound] = s.Median
	}
	return out
}

// Stats returns the full background statistics for a region, with the
// national fallback, or nil if neither exists.
func (t *Table) Stats(region string) map[string]Stat {
	stats, ok := t.regions[strings.ToUpper(strings.TrimSpace(region))]
	if !ok {
		stats = t.regions[NationalRegion]
	}
	if len(stats) == 0 {
		return nil
	}
	out := make(map[string]Stat, len(stats))
	for compound, s := range stats {
		out[compound] = s
	}
	return out
}

// RegionStats returns the monitoring statistics for a region in the
// form the simulator consumes, with the national fallback, or nil if
// neither exists.
func (t *Table) RegionStats(region string) riverscope.BackgroundStats {
	stats := t.Stats(region)
	if stats == nil {
		return nil
	}
	out := make(riverscope.BackgroundStats, len(stats))
	for compound, s := range stats {
		out[compound] = riverscope.BackgroundStat{
			N:           s.N,
			PctDetected: s.PctDetected,
			Max:         s.Max,
		}
	}
	return out
}

// Regions returns the regions in the table, sorted, including the
// national pseudo-region.
func (t *Table) Regions() []string {
	out := make([]string, 0, len(t.regions))
	for region := range t.regions {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// WriteTable writes the table as CSV with one row per
// (region, compound) pair.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"REGION", "COMPOUND", "MEDIAN_PPT", "MAX_PPT", "N_SAMPLES", "PCT_DETECTED"}); err != nil {
		return fmt.Errorf("background: writing table header: %v", err)
	}
	for _, region := range t.Regions() {
		stats := t.regions[region]
		compounds := make([]string, 0, len(stats))
		for compound := range stats {
			compounds = append(compounds, compound)
		}
		sort.Strings(compounds)
		for _, compound := range compounds {
			s := stats[compound]
			rec := []string{
				region,
				compound,
				strconv.FormatFloat(s.Median, 'g', -1, 64),
				strconv.FormatFloat(s.Max, 'g', -1, 64),
				strconv.Itoa(s.N),
				strconv.FormatFloat(s.PctDetected, 'g', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("background: writing table row: %v", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTable reads a table previously written by WriteTable.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("background: reading table header: %v", err)
	}
	t := &Table{regions: make(map[string]map[string]Stat)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("background: reading table line %d: %v", line, err)
		}
		med, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("background: table line %d: bad median %q", line, rec[2])
		}
		max, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("background: table line %d: bad max %q", line, rec[3])
		}
		n, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("background: table line %d: bad sample count %q", line, rec[4])
		}
		pct, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("background: table line %d: bad detection percentage %q", line, rec[5])
		}
		region := strings.ToUpper(strings.TrimSpace(rec[0]))
		if _, ok := t.regions[region]; !ok {
			t.regions[region] = make(map[string]Stat)
		}
		t.regions[region][rec[1]] = Stat{Median: med, Max: max, N: n, PctDetected: pct}
	}
	return t, nil
}

// median returns the median of vals. It sorts a copy.
func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
