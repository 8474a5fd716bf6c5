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
	"testing"
)

func TestScore(t *testing.T) {
	var tests = []struct {
		hi              float64
		exceeded, total int
		want            int
	}{
		{hi: 0, exceeded: 0, total: 6, want: 0},
		{hi: 0.6818181818, exceeded: 0, total: 1, want: 34},
		{hi: 1, exceeded: 0, total: 6, want: 50},
		{hi: 0.5, exceeded: 3, total: 6, want: 50},
		{hi: 1, exceeded: 6, total: 6, want: 100},
		// HI saturates at 1; the score must not overflow.
		{hi: 1e12, exceeded: 6, total: 6, want: 100},
		{hi: 1e12, exceeded: 0, total: 6, want: 50},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("hi=%g_%d/%d", test.hi, test.exceeded, test.total), func(t *testing.T) {
			have := Score(test.hi, test.exceeded, test.total)
			if have != test.want {
				t.Errorf("Score(%g, %d, %d) = %d, want %d",
					test.hi, test.exceeded, test.total, have, test.want)
			}
		})
	}
}

// The score must stay in [0, 100] and never decrease when either the
// hazard index or the exceedance fraction increases with the other
// held fixed.
func TestScoreBoundsAndMonotonicity(t *testing.T) {
	his := []float64{0, 0.1, 0.25, 0.5, 0.9, 1, 2, 10, math.Inf(1)}
	const total = 6
	for e := 0; e <= total; e++ {
		prev := -1
		for _, hi := range his {
			s := Score(hi, e, total)
			if s < 0 || s > 100 {
				t.Fatalf("Score(%g, %d, %d) = %d out of [0, 100]", hi, e, total, s)
			}
			if s < prev {
				t.Errorf("score decreased from %d to %d at hi=%g, exceeded=%d", prev, s, hi, e)
			}
			prev = s
		}
	}
	for _, hi := range his {
		prev := -1
		for e := 0; e <= total; e++ {
			s := Score(hi, e, total)
			if s < prev {
				t.Errorf("score decreased from %d to %d at hi=%g, exceeded=%d", prev, s, hi, e)
			}
			prev = s
		}
	}
}

func TestCategoryForScore(t *testing.T) {
	var tests = []struct {
		score int
		want  Category
	}{
		{score: 0, want: CategoryLow},
		{score: 24, want: CategoryLow},
		// Boundary values belong to the higher category.
		{score: 25, want: CategoryModerate},
		{score: 49, want: CategoryModerate},
		{score: 50, want: CategoryHigh},
		{score: 74, want: CategoryHigh},
		{score: 75, want: CategorySevere},
		{score: 100, want: CategorySevere},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.score), func(t *testing.T) {
			if have := CategoryForScore(test.score); have != test.want {
				t.Errorf("CategoryForScore(%d) = %v, want %v", test.score, have, test.want)
			}
		})
	}
}

func TestCategoryJSON(t *testing.T) {
	for _, c := range []Category{CategoryLow, CategoryModerate, CategoryHigh, CategorySevere} {
		b, err := c.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		var back Category
		if err := back.UnmarshalJSON(b); err != nil {
			t.Fatal(err)
		}
		if back != c {
			t.Errorf("round trip of %v gave %v", c, back)
		}
	}
	var c Category
	if err := c.UnmarshalJSON([]byte(`"Catastrophic"`)); err == nil {
		t.Error("expected error for unknown category name")
	}
}
