/*
 * cell.go, part of cctbx-project.
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
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//UnitCell is a crystallographic unit cell. Lengths are in A, angles in degrees.
//The orthogonalization follows the PDB convention: a along x, b in the xy plane.
type UnitCell struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
	orth               *mat.Dense
	frac               *mat.Dense
}

//NewUnitCell returns the unit cell with the given parameters, or an error if they
//don't define a cell with a positive volume.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) (*UnitCell, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, NewError(ErrInvalidOption, true, "NewUnitCell: Non-positive cell length (%g, %g, %g)", a, b, c)
	}
	ca := math.Cos(alpha * Deg2Rad)
	cb := math.Cos(beta * Deg2Rad)
	cg := math.Cos(gamma * Deg2Rad)
	sg := math.Sin(gamma * Deg2Rad)
	v2 := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	if v2 <= appzero || math.Abs(sg) <= appzero {
		return nil, NewError(ErrInvalidOption, true, "NewUnitCell: Angles (%g, %g, %g) don't define a cell", alpha, beta, gamma)
	}
	vol := a * b * c * math.Sqrt(v2)
	U := &UnitCell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
	U.orth = mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0, b * sg, c * (ca - cb*cg) / sg,
		0, 0, vol / (a * b * sg),
	})
	U.frac = mat.NewDense(3, 3, nil)
	if err := U.frac.Inverse(U.orth); err != nil {
		return nil, NewError(ErrInvalidOption, true, "NewUnitCell: Can't invert orthogonalization matrix: %s", err)
	}
	return U, nil
}

//Volume returns the volume of the cell in A^3
func (U *UnitCell) Volume() float64 {
	return mat.Det(U.orth)
}

//Orthogonalize transforms fractional coordinates into cartesian ones.
func (U *UnitCell) Orthogonalize(f r3.Vec) r3.Vec {
	return mulVec(U.orth, f)
}

//Fractionalize transforms cartesian coordinates into fractional ones.
func (U *UnitCell) Fractionalize(x r3.Vec) r3.Vec {
	return mulVec(U.frac, x)
}

func mulVec(m mat.Matrix, v r3.Vec) r3.Vec {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return r3.Vec{X: r.AtVec(0), Y: r.AtVec(1), Z: r.AtVec(2)}
}

/**Symmetry operators**/

//SymOp is a crystallographic symmetry operator, a rotation R and a translation T
//acting on fractional coordinates: f' = R*f + T
type SymOp struct {
	R *mat.Dense
	T r3.Vec
}

//NewSymOp returns the operator with the 3x3 row-major rotation rot and translation t.
func NewSymOp(rot []float64, t r3.Vec) (*SymOp, error) {
	if len(rot) != 9 {
		return nil, NewError(ErrInvalidOption, true, "NewSymOp: Rotation needs 9 elements, got %d", len(rot))
	}
	r := make([]float64, 9)
	copy(r, rot)
	return &SymOp{R: mat.NewDense(3, 3, r), T: t}, nil
}

//ParseSymOp parses operators written as "x,y,z", "-x+1/2,y,-z" or "y-x,-x,z+0.25".
func ParseSymOp(s string) (*SymOp, error) {
	parts := strings.Split(strings.ToLower(strings.ReplaceAll(s, " ", "")), ",")
	if len(parts) != 3 {
		return nil, NewError(ErrInvalidOption, true, "ParseSymOp: Operator %q doesn't have 3 components", s)
	}
	rot := make([]float64, 9)
	var t [3]float64
	for i, p := range parts {
		row, tr, err := parseSymOpRow(p)
		if err != nil {
			return nil, NewError(ErrInvalidOption, true, "ParseSymOp: Operator %q: %s", s, err)
		}
		copy(rot[3*i:3*i+3], row[:])
		t[i] = tr
	}
	return NewSymOp(rot, r3.Vec{X: t[0], Y: t[1], Z: t[2]})
}

func parseSymOpRow(s string) (row [3]float64, t float64, err error) {
	if s == "" {
		return row, 0, fmt.Errorf("empty component")
	}
	for i := 0; i < len(s); {
		sign := 1.0
		if s[i] == '+' {
			i++
		} else if s[i] == '-' {
			sign = -1
			i++
		}
		j := i
		for j < len(s) && s[j] != '+' && s[j] != '-' {
			j++
		}
		term := s[i:j]
		i = j
		switch term {
		case "x":
			row[0] += sign
		case "y":
			row[1] += sign
		case "z":
			row[2] += sign
		default:
			v, err := parseFraction(term)
			if err != nil {
				return row, 0, err
			}
			t += sign * v
		}
	}
	return row, t, nil
}

func parseFraction(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing term")
	}
	num, den, isfrac := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("bad term %q", s)
	}
	if !isfrac {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("bad fraction %q", s)
	}
	return n / d, nil
}

//String returns the operator in the x,y,z notation.
func (S *SymOp) String() string {
	rows := make([]string, 3)
	t := []float64{S.T.X, S.T.Y, S.T.Z}
	axes := "xyz"
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j := 0; j < 3; j++ {
			c := S.R.At(i, j)
			switch {
			case c == 0:
				continue
			case c == 1:
				if b.Len() > 0 {
					b.WriteByte('+')
				}
			case c == -1:
				b.WriteByte('-')
			default:
				if c > 0 && b.Len() > 0 {
					b.WriteByte('+')
				}
				b.WriteString(strconv.FormatFloat(c, 'g', -1, 64) + "*")
			}
			b.WriteByte(axes[j])
		}
		if t[i] != 0 {
			if t[i] > 0 && b.Len() > 0 {
				b.WriteByte('+')
			}
			b.WriteString(formatFraction(t[i]))
		}
		if b.Len() == 0 {
			b.WriteByte('0')
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, ",")
}

func formatFraction(f float64) string {
	if f == math.Trunc(f) {
		return strconv.Itoa(int(f))
	}
	for _, den := range []int{2, 3, 4, 6, 8, 12} {
		n := f * float64(den)
		if math.Abs(n-math.Round(n)) < 1e-6 {
			return fmt.Sprintf("%d/%d", int(math.Round(n)), den)
		}
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

//ApplyFrac applies the operator to fractional coordinates.
func (S *SymOp) ApplyFrac(f r3.Vec) r3.Vec {
	return r3.Add(mulVec(S.R, f), S.T)
}

//Inverse returns the operator that undoes S: R' = R^-1, T' = -R^-1*T
func (S *SymOp) Inverse() (*SymOp, error) {
	var inv mat.Dense
	if err := inv.Inverse(S.R); err != nil {
		return nil, NewError(ErrInvalidOption, true, "SymOp.Inverse: Singular rotation in %s: %s", S, err)
	}
	t := r3.Scale(-1, mulVec(&inv, S.T))
	return &SymOp{R: &inv, T: t}, nil
}

//IsIdentity returns true if the operator is x,y,z
func (S *SymOp) IsIdentity() bool {
	return mat.EqualApprox(S.R, mat.NewDiagDense(3, []float64{1, 1, 1}), appzero) && r3.Norm(S.T) <= appzero
}

//ApplySymOp returns the images of the cartesian coordinates xyz under op: the coordinates
//are fractionalized with cell, transformed with op, and orthogonalized again.
func ApplySymOp(cell *UnitCell, op *SymOp, xyz []r3.Vec) []r3.Vec {
	ret := make([]r3.Vec, len(xyz))
	for i, v := range xyz {
		ret[i] = cell.Orthogonalize(op.ApplyFrac(cell.Fractionalize(v)))
	}
	return ret
}
