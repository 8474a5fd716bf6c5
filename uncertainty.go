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

// BackgroundStat summarizes the monitoring record behind one
// compound's background concentration. It qualifies how much trust to
// place in the background median, not the median itself.
type BackgroundStat struct {
	// N is the number of monitoring samples.
	N int

	// PctDetected is the percentage of samples with a nonzero result.
	PctDetected float64

	// Max is the maximum observed concentration [ppt].
	Max float64
}

// BackgroundStats maps compound identifiers to monitoring statistics
// for one region.
type BackgroundStats map[string]BackgroundStat

// UncertaintyClass qualifies the background monitoring record behind
// a compound's result.
type UncertaintyClass string

const (
	// UncertaintyLowDataVolume means fewer than 5 samples back the
	// background estimate.
	UncertaintyLowDataVolume UncertaintyClass = "low_data_volume"

	// UncertaintyRarelyDetected means the compound was detected in
	// less than 1% of samples.
	UncertaintyRarelyDetected UncertaintyClass = "rarely_detected"

	// UncertaintySometimesDetected means the compound was detected in
	// less than 20% of samples.
	UncertaintySometimesDetected UncertaintyClass = "sometimes_detected"

	// UncertaintyFrequentlyDetected means the compound was detected in
	// at least 20% of samples.
	UncertaintyFrequentlyDetected UncertaintyClass = "frequently_detected"
)

// ClassifyUncertainty derives the uncertainty class for a background
// estimate from its sample count and detection percentage. Sample
// count dominates: a record with fewer than 5 samples is low-volume
// regardless of how often the compound was detected.
func ClassifyUncertainty(n int, pctDetected float64) UncertaintyClass {
	switch {
	case n < 5:
		return UncertaintyLowDataVolume
	case pctDetected < 1:
		return UncertaintyRarelyDetected
	case pctDetected < 20:
		return UncertaintySometimesDetected
	}
	return UncertaintyFrequentlyDetected
}
