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
	"encoding/json"
	"fmt"
	"math"
)

// Category is an ordered qualitative risk classification.
type Category int

const (
	// CategoryLow covers scores in [0, 25).
	CategoryLow Category = iota

	// CategoryModerate covers scores in [25, 50).
	CategoryModerate

	// CategoryHigh covers scores in [50, 75).
	CategoryHigh

	// CategorySevere covers scores in [75, 100].
	CategorySevere
)

func (c Category) String() string {
	switch c {
	case CategoryLow:
		return "Low"
	case CategoryModerate:
		return "Moderate"
	case CategoryHigh:
		return "High"
	case CategorySevere:
		return "Severe"
	}
	return "Unknown"
}

// MarshalJSON encodes the category as its name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a category from its name.
func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "Low":
		*c = CategoryLow
	case "Moderate":
		*c = CategoryModerate
	case "High":
		*c = CategoryHigh
	case "Severe":
		*c = CategorySevere
	default:
		return fmt.Errorf("riverscope: unknown risk category %q", s)
	}
	return nil
}

// Score maps a hazard index and MCL exceedance count to a bounded
// integer risk score:
//
//	score = clamp(round(100·(0.5·min(HI,1) + 0.5·exceeded/total)), 0, 100)
//
// The score rises monotonically with the hazard index and with the
// fraction of compounds exceeding their MCL, and saturates at 100.
// The constants are tuned for comparability between scenarios, not
// derived from a regulatory standard.
func Score(hazardIndex float64, exceeded, total int) int {
	hiTerm := math.Min(hazardIndex, 1.0)
	var exceedTerm float64
	if total > 0 {
		exceedTerm = float64(exceeded) / float64(total)
	}
	s := int(math.Round(100 * (0.5*hiTerm + 0.5*exceedTerm)))
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// CategoryForScore returns the risk category for a score in [0, 100].
// Boundary scores belong to the higher category: a score of exactly 25
// is Moderate, 50 is High, and 75 is Severe.
func CategoryForScore(score int) Category {
	switch {
	case score < 25:
		return CategoryLow
	case score < 50:
		return CategoryModerate
	case score < 75:
		return CategoryHigh
	}
	return CategorySevere
}
