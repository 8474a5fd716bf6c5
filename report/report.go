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

// Package report renders simulation results as a one-page PDF summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/watermodel/riverscope"
)

// Meta holds site information shown in the report header.
type Meta struct {
	// SiteName is the facility or site description.
	SiteName string

	// Region is the region whose background data was used.
	Region string

	// Generated is the report timestamp. If zero, the current time
	// is used.
	Generated time.Time
}

// Write renders a one-page PDF summary of a simulation result.
func Write(w io.Writer, r *riverscope.Result, meta Meta) error {
	if meta.Generated.IsZero() {
		meta.Generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("PFAS Discharge Risk Assessment", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PFAS Discharge Risk Assessment", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+meta.Generated.Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Site", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if meta.SiteName != "" {
		pdf.CellFormat(0, 5, "Site: "+meta.SiteName, "", 1, "L", false, 0, "")
	}
	if meta.Region != "" {
		pdf.CellFormat(0, 5, "Background region: "+meta.Region, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Upstream flow: %.2f MGD (%s flow condition)",
		r.UpstreamFlow, r.FlowCondition), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Discharge flow: %.2f MGD (dilution factor %.4f)",
		r.DischargeFlow, r.DilutionFactor), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Overall risk: %s (score %d/100)", r.Category, r.Score),
		"", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Hazard index: %.3f (threshold %.1f, %s)",
		r.HazardIndex, r.HazardIndexThreshold, r.HazardIndexStatus), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("MCL exceedances: %d of %d compounds",
		r.ExceedanceCount, r.TotalCompounds), "", 1, "L", false, 0, "")
	if r.CombinedPFOAPFOS != nil {
		c := r.CombinedPFOAPFOS
		pdf.CellFormat(0, 5, fmt.Sprintf("Combined PFOA+PFOS: %.2f ppt against %.1f ppt (ratio %.2f)",
			c.Total, c.MCL, c.Ratio), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeCompoundTable(pdf, r)

	if len(r.Notes) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, note := range r.Notes {
			pdf.MultiCell(0, 4, "- "+note, "", "L", false)
		}
	}

	if len(r.ExcludedFromHI) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 4, "Excluded from hazard index (no usable reference dose): "+
			strings.Join(r.ExcludedFromHI, ", "), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, "Downstream concentrations are a single-point complete-mixing "+
		"mass-balance approximation; dispersion, travel time, and degradation are not modeled.",
		"", "L", false)

	return pdf.Output(w)
}

func writeCompoundTable(pdf *gofpdf.Fpdf, r *riverscope.Result) {
	widths := []float64{26, 28, 28, 24, 18, 26, 28}
	headers := []string{"Compound", "Background (ppt)", "Downstream (ppt)", "MCL (ppt)", "Exceeds", "Hazard quotient", "Background data"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, c := range r.Compounds {
		mcl := "none"
		if c.MCL > 0 {
			mcl = fmt.Sprintf("%.1f", c.MCL)
		}
		exceeds := "no"
		if c.ExceedsMCL {
			exceeds = "YES"
		}
		hq := fmt.Sprintf("%.3f", c.HazardQuotient)
		if c.ExcludedFromHI {
			hq = "excluded"
		}
		cells := []string{
			c.Compound,
			fmt.Sprintf("%.2f", c.Background),
			fmt.Sprintf("%.2f", c.Downstream),
			mcl,
			exceeds,
			hq,
			uncertaintyLabel(c.Uncertainty),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// uncertaintyLabel is the table-cell rendering of an uncertainty
// class. Results computed without monitoring statistics leave the
// class empty.
func uncertaintyLabel(u riverscope.UncertaintyClass) string {
	switch u {
	case riverscope.UncertaintyLowDataVolume:
		return "few samples"
	case riverscope.UncertaintyRarelyDetected:
		return "rarely det."
	case riverscope.UncertaintySometimesDetected:
		return "sometimes det."
	case riverscope.UncertaintyFrequentlyDetected:
		return "frequent det."
	}
	return "n/a"
}
