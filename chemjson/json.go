/*
 * json.go, part of cctbx-project.
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

package chemjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/JiriCernyJC/cctbx-project"
	"github.com/JiriCernyJC/cctbx-project/clash"
	"gonum.org/v1/gonum/spatial/r3"
)

//An easily JSON-serializable error type.
type Error struct {
	deco     []string
	err      error
	Where    string //input, model or output
	Function string //which go function gave the error
	Message  string //the error itself
}

//NewError returns an error that happened in function, at the stage where.
func NewError(where, function string, err error) *Error {
	return &Error{err: err, Where: where, Function: function, Message: err.Error()}
}

//Error implements the error interface
func (J *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", J.Function, J.Where, J.Message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec != "" {
		J.deco = append(J.deco, dec)
	}
	return J.deco
}

//Unwrap returns the underlying error.
func (J *Error) Unwrap() error { return J.err }

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//A ready-to-serialize container for an atom.
type Atom struct {
	Name      string     `json:"name"`
	ID        int        `json:"id"`
	Symbol    string     `json:"symbol"`
	AltLoc    string     `json:"altloc,omitempty"`
	MolName   string     `json:"resname"`
	MolID     int        `json:"resid"`
	ICode     string     `json:"icode,omitempty"`
	Chain     string     `json:"chain"`
	Occupancy float64    `json:"occupancy"`
	Het       bool       `json:"het,omitempty"`
	XYZ       [3]float64 `json:"xyz"`
}

//Cell holds the unit cell parameters, in A and degrees.
type Cell struct {
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

//Pair is a nonbonded pair. A zero VdWSum is filled in from the element radii.
//SymOp, in x,y,z notation, maps atom J onto the image in contact with I.
type Pair struct {
	I        int     `json:"i"`
	J        int     `json:"j"`
	Distance float64 `json:"distance"`
	VdWSum   float64 `json:"vdw_sum,omitempty"`
	SymOp    string  `json:"symop,omitempty"`
}

//Snapshot is one configuration of a model together with its nonbonded pairs.
type Snapshot struct {
	Atoms []Atom   `json:"atoms"`
	Bonds [][2]int `json:"bonds"`
	Cell  *Cell    `json:"cell,omitempty"`
	Pairs []Pair   `json:"pairs"`
}

//Decode reads a snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	S := new(Snapshot)
	dec := json.NewDecoder(r)
	if err := dec.Decode(S); err != nil {
		return nil, NewError("input", "chemjson.Decode", err)
	}
	return S, nil
}

//Encode writes the snapshot to w.
func (S *Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(S); err != nil {
		return NewError("output", "chemjson.Snapshot.Encode", err)
	}
	return nil
}

//ReadSnapshot reads the snapshot in the file name, which may be compressed.
func ReadSnapshot(name string) (*Snapshot, error) {
	r, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	S, err := Decode(r)
	if err != nil {
		err.(*Error).Decorate("chemjson.ReadSnapshot")
		return nil, err
	}
	return S, nil
}

//WriteSnapshot writes S to the file name, compressed according to its extension.
func WriteSnapshot(name string, S *Snapshot) error {
	w, err := Create(name)
	if err != nil {
		return err
	}
	if err := S.Encode(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return NewError("output", "chemjson.WriteSnapshot", err)
	}
	return nil
}

//Model builds the model described by the snapshot, with its candidate pairs set.
func (S *Snapshot) Model() (*chem.Model, error) {
	ats := make([]*chem.Atom, len(S.Atoms))
	coords := make([]r3.Vec, len(S.Atoms))
	for i, a := range S.Atoms {
		ats[i] = &chem.Atom{
			Name:      a.Name,
			ID:        a.ID,
			Symbol:    a.Symbol,
			AltLoc:    a.AltLoc,
			MolName:   a.MolName,
			MolID:     a.MolID,
			ICode:     a.ICode,
			Chain:     a.Chain,
			Occupancy: a.Occupancy,
			Het:       a.Het,
		}
		coords[i] = r3.Vec{X: a.XYZ[0], Y: a.XYZ[1], Z: a.XYZ[2]}
	}
	conn := chem.NewConnectivity(len(ats))
	for _, b := range S.Bonds {
		if err := conn.AddBond(b[0], b[1]); err != nil {
			return nil, NewError("model", "chemjson.Snapshot.Model", err)
		}
	}
	var cell *chem.UnitCell
	if S.Cell != nil {
		var err error
		c := S.Cell
		cell, err = chem.NewUnitCell(c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma)
		if err != nil {
			return nil, NewError("model", "chemjson.Snapshot.Model", err)
		}
	}
	mol, err := chem.NewModel(ats, coords, conn, cell)
	if err != nil {
		return nil, NewError("model", "chemjson.Snapshot.Model", err)
	}
	cands := make([]chem.Candidate, len(S.Pairs))
	for k, p := range S.Pairs {
		if p.I < 0 || p.I >= len(ats) || p.J < 0 || p.J >= len(ats) {
			return nil, NewError("model", "chemjson.Snapshot.Model", chem.NewError(chem.ErrNotFound, true, "pair %d (%d, %d) out of range for %d atoms", k, p.I, p.J, len(ats)))
		}
		c := chem.Candidate{I: p.I, J: p.J, Distance: p.Distance, VdWSum: p.VdWSum}
		if c.VdWSum == 0 {
			c.VdWSum, err = chem.VdWSum(ats[p.I].Symbol, ats[p.J].Symbol)
			if err != nil {
				return nil, NewError("model", "chemjson.Snapshot.Model", err)
			}
		}
		if p.SymOp != "" {
			c.SymOp, err = chem.ParseSymOp(p.SymOp)
			if err != nil {
				return nil, NewError("model", "chemjson.Snapshot.Model", err)
			}
			//identity operators come from engines that always print one.
			if c.SymOp.IsIdentity() {
				c.SymOp = nil
			} else {
				c.SymOpString = c.SymOp.String()
			}
		}
		cands[k] = c
	}
	if err := mol.SetCandidates(cands); err != nil {
		return nil, NewError("model", "chemjson.Snapshot.Model", err)
	}
	return mol, nil
}

//ClashRecord is the serializable form of a clash.
type ClashRecord struct {
	Atoms         [2]string `json:"atoms"`
	Indexes       [2]int    `json:"indexes"`
	ModelDistance float64   `json:"model_distance"`
	VdWSum        float64   `json:"vdw_sum"`
	Overlap       float64   `json:"overlap"`
	SymOp         string    `json:"symop,omitempty"`
}

//HBondRecord is the serializable form of a X-H...A hydrogen bond.
type HBondRecord struct {
	Atoms      [3]string `json:"atoms"`
	Indexes    [3]int    `json:"indexes"`
	HADistance float64   `json:"ha_distance"`
	XADistance float64   `json:"xa_distance"`
	Angle      float64   `json:"angle"`
	SymOp      string    `json:"symop,omitempty"`
}

//Report is the output document of an analysis.
type Report struct {
	Results clash.Results `json:"results"`
	Clashes []ClashRecord `json:"clashes"`
	HBonds  []HBondRecord `json:"hbonds"`
}

//NewReport collects the results and the records of both registries,
//labeling the atoms with the information in mol.
func NewReport(res clash.Results, C *clash.Clashes, H *clash.HBonds, mol chem.Atomer) *Report {
	R := &Report{Results: res, Clashes: make([]ClashRecord, 0, C.Len()), HBonds: make([]HBondRecord, 0, H.Len())}
	label := func(i int) string { return strings.TrimSpace(mol.Atom(i).IDStr()) }
	for _, c := range C.Records() {
		R.Clashes = append(R.Clashes, ClashRecord{
			Atoms:         [2]string{label(c.Pair[0]), label(c.Pair[1])},
			Indexes:       c.Pair,
			ModelDistance: c.ModelDistance,
			VdWSum:        c.VdWSum,
			Overlap:       c.Overlap,
			SymOp:         c.SymOpString,
		})
	}
	for _, h := range H.Records() {
		R.HBonds = append(R.HBonds, HBondRecord{
			Atoms:      [3]string{label(h.Donor()), label(h.Hydrogen()), label(h.Acceptor())},
			Indexes:    h.Triple,
			HADistance: h.HADistance,
			XADistance: h.XADistance,
			Angle:      h.Angle,
			SymOp:      h.SymOpString,
		})
	}
	return R
}

//Send marshals the report and writes it to out.
func (R *Report) Send(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(R); err != nil {
		return NewError("output", "chemjson.Report.Send", err)
	}
	return nil
}

//WriteReport writes the report to the file name, compressed according to its extension.
func WriteReport(name string, R *Report) error {
	w, err := Create(name)
	if err != nil {
		return err
	}
	if err := R.Send(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return NewError("output", "chemjson.WriteReport", err)
	}
	return nil
}
