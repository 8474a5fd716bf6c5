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

// Package riverscope implements a reduced-form surface-water mixing
// model and regulatory risk assessment for PFAS point-source
// discharges. Given per-region background concentrations and a
// discharge scenario, it computes downstream concentrations under a
// complete-mixing mass balance, compares them to maximum contaminant
// levels, aggregates a multi-compound hazard index, and derives a
// bounded risk score.
package riverscope

// Version gives the version number.
const Version = "1.2.1"
