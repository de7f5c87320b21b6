/*
 * chem.go, part of cctbx-project.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

//Atom contains the information of one atom of a model, except for the coordinates,
//which are kept by the Model in a separate slice.
type Atom struct {
	Name      string
	ID        int
	Symbol    string
	AltLoc    string
	MolName   string
	MolID     int
	ICode     string
	Chain     string
	Occupancy float64
	Het       bool // is hetatm in the pdb file?
	index     int
}

//Index returns the position of the atom in the model it belongs to.
func (A *Atom) Index() int {
	return A.index
}

//IsHydrogen returns true for hydrogen and deuterium atoms.
func (A *Atom) IsHydrogen() bool {
	s := strings.ToUpper(strings.TrimSpace(A.Symbol))
	return s == "H" || s == "D"
}

//IsWater returns true if the atom belongs to a water residue.
func (A *Atom) IsWater() bool {
	return isInString(waterNames, strings.ToUpper(strings.TrimSpace(A.MolName)))
}

//IsProtein returns true if the atom belongs to one of the standard amino acids.
func (A *Atom) IsProtein() bool {
	_, ok := three2OneLetter[strings.ToUpper(strings.TrimSpace(A.MolName))]
	return ok
}

//ResidueID identifies the residue group of the atom: chain, residue number and
//insertion code. Alternate conformers of a residue share the same ResidueID.
func (A *Atom) ResidueID() string {
	return fmt.Sprintf("%2s%4d%1s", A.Chain, A.MolID, A.ICode)
}

//IDStr returns a PDB-like label for the atom, e.g. " CA  ALA A  12 "
func (A *Atom) IDStr() string {
	return fmt.Sprintf("%-4s%1s%3s%2s%4d%1s", A.Name, A.AltLoc, A.MolName, A.Chain, A.MolID, A.ICode)
}

//Candidate is an atom pair reported by the geometry engine as being in
//nonbonded interaction range. SymOp is nil unless atom J is related to atom I by
//a crystallographic symmetry operator.
type Candidate struct {
	I, J        int
	Distance    float64
	VdWSum      float64
	SymOpString string
	SymOp       *SymOp
}

//Delta is the model distance minus the sum of van der Waals radii.
func (C Candidate) Delta() float64 {
	return C.Distance - C.VdWSum
}

//HasSymmetry returns true if the pair involves a symmetry image.
func (C Candidate) HasSymmetry() bool {
	return C.SymOp != nil
}

/**Type Model**/

//Model is an atomic model frozen in one configuration: atoms, cartesian coordinates,
//covalent connectivity, an optional unit cell, and the list of candidate
//nonbonded pairs for that configuration. The selections (hydrogen, water, protein)
//are computed once when the model is built.
type Model struct {
	atoms    []*Atom
	coords   []r3.Vec
	conn     *Connectivity
	cell     *UnitCell
	pairs    []Candidate
	hd       []bool
	water    []bool
	protein  []bool
	residues map[string][]int
}

//NewModel builds a model from the given atoms, coordinates (one per atom), bonds and
//unit cell. conn and cell can be nil. The atoms are not copied, but their indexes are
//set to their position in ats.
func NewModel(ats []*Atom, coords []r3.Vec, conn *Connectivity, cell *UnitCell) (*Model, error) {
	if ats == nil {
		return nil, NewError(ErrInvalidOption, true, "NewModel: Supplied a nil atom slice")
	}
	if len(ats) != len(coords) {
		return nil, NewError(ErrInvalidOption, true, "NewModel: Inconsistent atoms/coordinates: Atoms %d, coords: %d", len(ats), len(coords))
	}
	if conn == nil {
		conn = NewConnectivity(len(ats))
	}
	if conn.Len() != len(ats) {
		return nil, NewError(ErrInvalidOption, true, "NewModel: Connectivity for %d atoms given for a model with %d atoms", conn.Len(), len(ats))
	}
	M := &Model{
		atoms:    ats,
		coords:   coords,
		conn:     conn,
		cell:     cell,
		hd:       make([]bool, len(ats)),
		water:    make([]bool, len(ats)),
		protein:  make([]bool, len(ats)),
		residues: make(map[string][]int),
	}
	for i, at := range ats {
		if at == nil {
			return nil, NewError(ErrInvalidOption, true, "NewModel: Atom %d is nil", i)
		}
		at.index = i
		M.hd[i] = at.IsHydrogen()
		M.water[i] = at.IsWater()
		M.protein[i] = at.IsProtein()
		rid := at.ResidueID()
		M.residues[rid] = append(M.residues[rid], i)
	}
	return M, nil
}

//Atom returns the Atom corresponding to the index i. Panics if
//out of range.
func (M *Model) Atom(i int) *Atom {
	if i < 0 || i >= len(M.atoms) {
		panic(fmt.Sprintf("Model: Requested Atom %d out of bounds", i))
	}
	return M.atoms[i]
}

//Len returns the number of atoms in the model.
func (M *Model) Len() int {
	return len(M.atoms)
}

//Coord returns the cartesian coordinates of atom i. Panics if out of range.
func (M *Model) Coord(i int) r3.Vec {
	if i < 0 || i >= len(M.coords) {
		panic(fmt.Sprintf("Model: Requested coordinate %d out of bounds", i))
	}
	return M.coords[i]
}

//Connectivity returns the covalent bond table of the model.
func (M *Model) Connectivity() *Connectivity {
	return M.conn
}

//Cell returns the unit cell, or nil if the model has no crystal symmetry.
func (M *Model) Cell() *UnitCell {
	return M.cell
}

//HydrogenSelection returns a slice where the element i is true if atom i is H or D.
func (M *Model) HydrogenSelection() []bool { return M.hd }

//WaterSelection returns a slice where the element i is true if atom i belongs to a water.
func (M *Model) WaterSelection() []bool { return M.water }

//ProteinSelection returns a slice where the element i is true if atom i belongs to an amino acid.
func (M *Model) ProteinSelection() []bool { return M.protein }

//ResidueAtoms returns the indexes of all the atoms sharing a residue group with atom i,
//including i.
func (M *Model) ResidueAtoms(i int) []int {
	return M.residues[M.Atom(i).ResidueID()]
}

//SetCandidates replaces the candidate pair list of the model. The list is
//sorted by ascending distance (stable) so the order in which the pairs
//are processed doesn't depend on the producer.
func (M *Model) SetCandidates(pairs []Candidate) error {
	for k, p := range pairs {
		if p.I < 0 || p.I >= M.Len() || p.J < 0 || p.J >= M.Len() {
			return NewError(ErrNotFound, true, "SetCandidates: Pair %d (%d, %d) out of range for %d atoms", k, p.I, p.J, M.Len())
		}
	}
	c := make([]Candidate, len(pairs))
	copy(c, pairs)
	sort.SliceStable(c, func(i, j int) bool { return c[i].Distance < c[j].Distance })
	M.pairs = c
	return nil
}

//Candidates returns the distance-sorted candidate pairs of the model.
//The returned slice should not be modified.
func (M *Model) Candidates() ([]Candidate, error) {
	return M.pairs, nil
}
