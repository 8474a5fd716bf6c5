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

import "fmt"

// UnknownCompoundError reports a compound identifier that is not in
// the registry. It indicates a data-contract violation between the
// background or discharge inputs and the compound catalog.
type UnknownCompoundError struct {
	ID string
}

func (e *UnknownCompoundError) Error() string {
	return fmt.Sprintf("riverscope: unknown compound %q", e.ID)
}

// InvalidInputError reports a simulation input that failed validation.
// Validation happens before any mixing arithmetic runs, so an
// InvalidInputError guarantees that no partial result was computed.
type InvalidInputError struct {
	// Field names the offending input, e.g. "UpstreamFlow".
	Field string

	// Value is the offending value.
	Value interface{}

	// Reason describes the constraint that was violated.
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("riverscope: invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}
