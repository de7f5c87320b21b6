/*
 * overlap.go, part of cctbx-project.
 *
 * Copyright 2026 The cctbx-project authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package chemplot draws the distribution of clash overlaps.
package chemplot

import (
	"fmt"
	"image/color"

	"github.com/JiriCernyJC/cctbx-project/clash"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Overlaps returns the overlaps of all the clashes in C, in registry order.
//If sym is false, symmetry clashes are left out.
func Overlaps(C *clash.Clashes, sym bool) []float64 {
	ret := make([]float64, 0, C.Len())
	for _, c := range C.Records() {
		if !sym && c.IsSymmetry() {
			continue
		}
		ret = append(ret, c.Overlap)
	}
	return ret
}

//Stats contains a summary of a set of overlaps.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Max    float64
}

//OverlapStats summarizes the overlaps in data. The standard deviation
//is zero for fewer than 2 values.
func OverlapStats(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}
	ret := Stats{N: len(data), Max: floats.Max(data)}
	if len(data) == 1 {
		ret.Mean = data[0]
		return ret
	}
	ret.Mean, ret.StdDev = stat.MeanStdDev(data, nil)
	return ret
}

//OverlapHistogram plots a histogram of the overlaps in data with the given
//number of bins and saves it to plotname. The format is taken from the
//extension of plotname (png, svg, pdf...).
func OverlapHistogram(data []float64, bins int, title, plotname string) error {
	if len(data) == 0 {
		return fmt.Errorf("chemplot.OverlapHistogram: No data to plot")
	}
	if bins < 1 {
		return fmt.Errorf("chemplot.OverlapHistogram: Invalid number of bins %d", bins)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Overlap (A)"
	p.Y.Label.Text = "Clashes"
	h, err := plotter.NewHist(plotter.Values(data), bins)
	if err != nil {
		return fmt.Errorf("chemplot.OverlapHistogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	p.Add(plotter.NewGrid())
	p.Add(h)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("chemplot.OverlapHistogram: %w", err)
	}
	return nil
}
