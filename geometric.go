/*
 * geometric.go, part of cctbx-project.
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

package chem

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Distance returns the euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

//Angle takes 2 vectors and calculate the angle in radians between them.
//If one of the vectors has zero length, it returns 0.
func Angle(v1, v2 r3.Vec) float64 {
	normproduct := r3.Norm(v1) * r3.Norm(v2)
	if normproduct <= appzero {
		return 0
	}
	argument := r3.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Collinearity evaluates whether two atoms u and v, which clash with a common atom w,
//are in line with w:
//	w ~~~ u
//	w ~~~ v
//It returns |cos| of the angle between the vector from the midpoint of u and v to w,
//and the vector u-v. Values close to 1 mean that w lies on the line through u and v.
//If either vector has zero length the result is 1.
func Collinearity(u, v, w r3.Vec) float64 {
	mid := r3.Scale(0.5, r3.Add(u, v))
	vec1 := r3.Sub(w, mid)
	vec2 := r3.Sub(u, v)
	n1 := r3.Norm(vec1)
	n2 := r3.Norm(vec2)
	if n1 == 0 || n2 == 0 {
		return 1
	}
	cos := math.Abs(r3.Dot(vec1, vec2) / (n1 * n2))
	if cos > 1 {
		cos = 1
	}
	return cos
}
