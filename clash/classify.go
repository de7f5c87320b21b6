package clash

import (
	"errors"
	"log/slog"
	"math"
	"strings"

	chem "github.com/JiriCernyJC/cctbx-project"
	"gonum.org/v1/gonum/spatial/r3"
)

//Elements that can act as hydrogen bond acceptors.
var acceptorElements = []string{"O", "N", "S", "F", "CL"}

func isAcceptorElement(symbol string) bool {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, v := range acceptorElements {
		if s == v {
			return true
		}
	}
	return false
}

//classifier holds the state of one pass over the candidate pairs.
type classifier struct {
	mol     Model
	opts    *Options
	hd      []bool
	water   []bool
	conn    *chem.Connectivity
	cell    *chem.UnitCell
	clashes *Clashes
	hbonds  *HBonds
	multi   *multiClashIndex
	log     *slog.Logger
	skipped int //hydrogen bond tests abandoned after an invariant violation
}

func newClassifier(mol Model, opts *Options) *classifier {
	return &classifier{
		mol:     mol,
		opts:    opts,
		hd:      mol.HydrogenSelection(),
		water:   mol.WaterSelection(),
		conn:    mol.Connectivity(),
		cell:    mol.Cell(),
		clashes: NewClashes(),
		hbonds:  NewHBonds(),
		multi:   newMultiClashIndex(),
		log:     opts.logger(),
	}
}

//classify runs the hydrogen bond test and then the clash test on cand.
//A pair can pass both.
func (C *classifier) classify(cand chem.Candidate) error {
	i, j := cand.I, cand.J
	if C.opts.FindHBonds && cand.Distance < C.opts.HBondMaxModelDistance && C.hd[i] != C.hd[j] {
		_, err := C.hbond(cand)
		if err != nil {
			if C.opts.Strict || !errors.Is(err, chem.ErrInvariant) {
				return chem.ErrDecorate(err, "classify")
			}
			C.skipped++
			C.log.Warn("hydrogen bond test skipped", "i", i, "j", j, "error", err.Error())
		}
	}
	if C.opts.FindClashes && isClash(cand.Delta(), C.opts.ClashCutoff) {
		if chem.Is15Interaction(i, j, C.hd, C.conn) {
			return nil
		}
		err := C.clashes.Add(Clash{
			Pair:          NewPair(i, j),
			ModelDistance: cand.Distance,
			VdWSum:        cand.VdWSum,
			Overlap:       math.Abs(cand.Delta()),
			SymOpString:   cand.SymOpString,
			SymOp:         cand.SymOp,
		})
		if err != nil {
			return chem.ErrDecorate(err, "classify")
		}
		C.multi.add(i, j)
	}
	return nil
}

//hbond tests whether cand is the H...A contact of a hydrogen bond X-H...A and
//registers the bond if so. Only the first bonded partner of H that gives an acceptable
//geometry is used as X, even if H has more than one (for instance, in a disordered structure).
func (C *classifier) hbond(cand chem.Candidate) (bool, error) {
	i, j := cand.I, cand.J
	if C.water[i] || C.water[j] {
		return false, nil
	}
	ati, atj := C.mol.Atom(i), C.mol.Atom(j)
	if ati.ResidueID() == atj.ResidueID() {
		return false, nil
	}
	var h, a int
	if C.hd[i] {
		h, a = i, j
	} else if C.hd[j] {
		h, a = j, i
	} else {
		return false, chem.NewError(chem.ErrUnreachable, true, "hbond: Neither atom %d nor %d is a hydrogen", i, j)
	}
	if !isAcceptorElement(C.mol.Atom(a).Symbol) {
		return false, nil
	}
	xs := C.conn.Bonded(h)
	if len(xs) == 0 {
		return false, nil
	}
	xyzh := C.mol.Coord(h)
	xyza, err := C.acceptorPosition(cand, a)
	if err != nil {
		return false, chem.ErrDecorate(err, "hbond")
	}
	ha := chem.Distance(xyzh, xyza)
	if math.Abs(ha-cand.Distance) > C.opts.DistanceTolerance {
		return false, chem.NewError(chem.ErrInvariant, false, "hbond: H...A distance %.3f for atoms %d, %d differs from the model distance %.3f", ha, h, a, cand.Distance)
	}
	for _, x := range xs {
		xyzx := C.mol.Coord(x)
		xa := chem.Distance(xyzx, xyza)
		angle := chem.Angle(r3.Sub(xyzh, xyza), r3.Sub(xyzh, xyzx)) * chem.Rad2Deg
		if !C.opts.acceptsHBond(ha, xa, angle) {
			continue
		}
		err := C.hbonds.Add(HBond{
			Triple:      Triple{x, h, a},
			HADistance:  ha,
			XADistance:  xa,
			Angle:       angle,
			SymOpString: cand.SymOpString,
			SymOp:       cand.SymOp,
			VdWSum:      cand.VdWSum,
		})
		if err != nil {
			return false, chem.ErrDecorate(err, "hbond")
		}
		return true, nil
	}
	return false, nil
}

//acceptorPosition returns the coordinates of the acceptor a in the frame of the hydrogen.
//The symmetry operator of a candidate maps atom J onto the image that is in contact with I,
//so if the acceptor is I, the inverse operator is used. The whole residue of the acceptor is
//transformed and the atom is found again by name and alternate location.
func (C *classifier) acceptorPosition(cand chem.Candidate, a int) (r3.Vec, error) {
	if !cand.HasSymmetry() {
		return C.mol.Coord(a), nil
	}
	if C.cell == nil {
		return r3.Vec{}, chem.NewError(chem.ErrInvalidOption, true, "acceptorPosition: Symmetry operator %s given for a model without unit cell", cand.SymOpString)
	}
	op := cand.SymOp
	if a == cand.I {
		var err error
		op, err = op.Inverse()
		if err != nil {
			return r3.Vec{}, chem.ErrDecorate(err, "acceptorPosition")
		}
	}
	res := C.mol.ResidueAtoms(a)
	xyz := make([]r3.Vec, len(res))
	for k, idx := range res {
		xyz[k] = C.mol.Coord(idx)
	}
	images := chem.ApplySymOp(C.cell, op, xyz)
	target := C.mol.Atom(a)
	for k, idx := range res {
		at := C.mol.Atom(idx)
		if at.Name == target.Name && at.AltLoc == target.AltLoc {
			return images[k], nil
		}
	}
	return r3.Vec{}, chem.NewError(chem.ErrUnreachable, true, "acceptorPosition: Atom %d not found in its own residue", a)
}
