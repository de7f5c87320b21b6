package clash

import (
	"bytes"
	"errors"
	"math"
	"testing"

	chem "github.com/JiriCernyJC/cctbx-project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

//countingModel counts the calls to Candidates.
type countingModel struct {
	*chem.Model
	calls int
}

func (C *countingModel) Candidates() ([]chem.Candidate, error) {
	C.calls++
	return C.Model.Candidates()
}

func carbons(n int) []*chem.Atom {
	ats := make([]*chem.Atom, n)
	for i := range ats {
		ats[i] = &chem.Atom{Name: "C", Symbol: "C", MolName: "LIG", MolID: i + 1, Chain: "A", Het: true}
	}
	return ats
}

func mustModel(Te *testing.T, ats []*chem.Atom, coords []r3.Vec, bonds [][2]int, cell *chem.UnitCell, cands []chem.Candidate) *chem.Model {
	Te.Helper()
	conn := chem.NewConnectivity(len(ats))
	for _, b := range bonds {
		require.NoError(Te, conn.AddBond(b[0], b[1]))
	}
	mol, err := chem.NewModel(ats, coords, conn, cell)
	require.NoError(Te, err)
	require.NoError(Te, mol.SetCandidates(cands))
	return mol
}

func run(Te *testing.T, mol Model, opts *Options) (*Clashes, *HBonds) {
	Te.Helper()
	m, err := NewManager(mol, opts)
	require.NoError(Te, err)
	c, h, err := m.Run()
	require.NoError(Te, err)
	return c, h
}

func TestClashThreshold(Te *testing.T) {
	mol := mustModel(Te, carbons(3), make([]r3.Vec, 3), nil, nil, []chem.Candidate{
		{I: 0, J: 1, Distance: 2.0, VdWSum: 2.4},
		{I: 0, J: 2, Distance: 2.0, VdWSum: 2.41},
	})
	c, _ := run(Te, mol, nil)
	assert.Equal(Te, 1, c.Len())
	assert.False(Te, c.Contains(Pair{0, 1}))
	assert.True(Te, c.Contains(Pair{0, 2}))
	cl, err := c.Get(Pair{2, 0})
	require.NoError(Te, err)
	assert.InDelta(Te, 0.41, cl.Overlap, 1e-9)
}

func TestClashCutoffBoundary(Te *testing.T) {
	//every pair overlaps by 0.4 up to rounding, which is not a clash
	pairs := [][2]float64{{1.8, 2.2}, {2.0, 2.4}, {2.2, 2.6}, {2.6, 3.0}, {2.9, 3.3}, {3.0, 3.4}}
	for _, p := range pairs {
		mol := mustModel(Te, carbons(2), make([]r3.Vec, 2), nil, nil, []chem.Candidate{
			{I: 0, J: 1, Distance: p[0], VdWSum: p[1]},
		})
		c, _ := run(Te, mol, nil)
		assert.Equal(Te, 0, c.Len(), "distance %v, vdW sum %v", p[0], p[1])
	}
	//slightly beyond the cutoff is still a clash
	mol := mustModel(Te, carbons(2), make([]r3.Vec, 2), nil, nil, []chem.Candidate{
		{I: 0, J: 1, Distance: 1.8, VdWSum: 2.2000001},
	})
	c, _ := run(Te, mol, nil)
	assert.Equal(Te, 1, c.Len())
}

func TestClashKeyFromEitherOrder(Te *testing.T) {
	mol := mustModel(Te, carbons(6), make([]r3.Vec, 6), nil, nil, []chem.Candidate{
		{I: 5, J: 2, Distance: 2.0, VdWSum: 3.4},
	})
	c, _ := run(Te, mol, nil)
	require.Equal(Te, 1, c.Len())
	assert.Equal(Te, Pair{2, 5}, c.Records()[0].Pair)
}

func TestOneFiveSuppression(Te *testing.T) {
	//H0-C1-C2-C3-C4, C5 bonded to C4
	ats := carbons(6)
	ats[0].Symbol, ats[0].Name = "H", "H"
	mol := mustModel(Te, ats, make([]r3.Vec, 6), [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}}, nil, []chem.Candidate{
		{I: 0, J: 4, Distance: 1.5, VdWSum: 2.8},
		{I: 0, J: 5, Distance: 1.6, VdWSum: 2.8},
		{I: 0, J: 3, Distance: 1.7, VdWSum: 2.8},
	})
	c, _ := run(Te, mol, &Options{FindClashes: true, SortBy: ByOverlap, ClashCutoff: -0.4, InlineCos: 0.707})
	assert.False(Te, c.Contains(Pair{0, 4}))
	assert.True(Te, c.Contains(Pair{0, 5}))
	assert.True(Te, c.Contains(Pair{0, 3}))
}

//hbondModel builds X(N)-H ... A(O), with H at the origin, A on the -x axis at ha
//from H and X at xh from H, so that the X-H...A angle is the given one (degrees).
func hbondModel(Te *testing.T, ha, angle float64, acceptorRes int, acceptorMol string, reported float64) *chem.Model {
	Te.Helper()
	const xh = 1.0
	t := angle * chem.Deg2Rad
	coords := []r3.Vec{
		{X: xh * math.Cos(t), Y: -xh * math.Sin(t)},
		{},
		{X: ha},
	}
	ats := []*chem.Atom{
		{Name: "N", Symbol: "N", MolName: "GLY", MolID: 1, Chain: "A"},
		{Name: "H", Symbol: "H", MolName: "GLY", MolID: 1, Chain: "A"},
		{Name: "O", Symbol: "O", MolName: acceptorMol, MolID: acceptorRes, Chain: "A"},
	}
	return mustModel(Te, ats, coords, [][2]int{{0, 1}}, nil, []chem.Candidate{
		{I: 1, J: 2, Distance: reported, VdWSum: 2.3},
	})
}

func TestHBondGeometry(Te *testing.T) {
	h := func(ha, angle float64) *HBonds {
		_, hb := run(Te, hbondModel(Te, ha, angle, 2, "GLY", ha), nil)
		return hb
	}
	hb := h(2.0, 150)
	require.Equal(Te, 1, hb.Len())
	rec := hb.Records()[0]
	assert.Equal(Te, Triple{0, 1, 2}, rec.Triple)
	assert.InDelta(Te, 2.0, rec.HADistance, 1e-9)
	assert.InDelta(Te, 150, rec.Angle, 1e-6)
	assert.InDelta(Te, math.Sqrt(5+4*math.Cos(30*chem.Deg2Rad)), rec.XADistance, 1e-9)
	assert.Equal(Te, 2.3, rec.VdWSum)

	assert.Equal(Te, 0, h(2.0, 100).Len())
	assert.Equal(Te, 0, h(2.3, 150).Len())
}

func TestHBondExclusions(Te *testing.T) {
	//same residue
	_, hb := run(Te, hbondModel(Te, 2.0, 150, 1, "GLY", 2.0), nil)
	assert.Equal(Te, 0, hb.Len())
	//water
	_, hb = run(Te, hbondModel(Te, 2.0, 150, 2, "HOH", 2.0), nil)
	assert.Equal(Te, 0, hb.Len())
	//switched off
	opts := DefaultOptions()
	opts.FindHBonds = false
	_, hb = run(Te, hbondModel(Te, 2.0, 150, 2, "GLY", 2.0), opts)
	assert.Equal(Te, 0, hb.Len())
	//not an acceptor element
	mol := hbondModel(Te, 2.0, 150, 2, "GLY", 2.0)
	mol.Atom(2).Symbol = "C"
	_, hb = run(Te, mol, nil)
	assert.Equal(Te, 0, hb.Len())
}

func TestHBondInvariant(Te *testing.T) {
	//the reported distance doesn't match the coordinates
	mol := hbondModel(Te, 2.0, 150, 2, "GLY", 2.5)
	_, hb := run(Te, mol, nil)
	assert.Equal(Te, 0, hb.Len())

	opts := DefaultOptions()
	opts.Strict = true
	m, err := NewManager(mol, opts)
	require.NoError(Te, err)
	_, _, err = m.Run()
	assert.True(Te, errors.Is(err, chem.ErrInvariant))
	ok, err := m.HasClashes()
	assert.False(Te, ok)
	assert.Error(Te, err)
}

func TestHBondSymmetry(Te *testing.T) {
	cell, err := chem.NewUnitCell(10, 10, 10, 90, 90, 90)
	require.NoError(Te, err)
	ats := func() []*chem.Atom {
		return []*chem.Atom{
			{Name: "N", Symbol: "N", MolName: "GLY", MolID: 1, Chain: "A"},
			{Name: "H", Symbol: "H", MolName: "GLY", MolID: 1, Chain: "A"},
			{Name: "O", Symbol: "O", MolName: "GLY", MolID: 2, Chain: "A"},
		}
	}
	coords := []r3.Vec{{X: -1}, {}, {X: -8}}
	//the image of the acceptor under x+1,y,z is 2 A from the hydrogen
	op, err := chem.ParseSymOp("x+1,y,z")
	require.NoError(Te, err)
	mol := mustModel(Te, ats(), coords, [][2]int{{0, 1}}, cell, []chem.Candidate{
		{I: 1, J: 2, Distance: 2.0, VdWSum: 2.6, SymOp: op, SymOpString: op.String()},
	})
	_, hb := run(Te, mol, nil)
	require.Equal(Te, 1, hb.Len())
	rec := hb.Records()[0]
	assert.True(Te, rec.IsSymmetry())
	assert.InDelta(Te, 3.0, rec.XADistance, 1e-9)
	assert.InDelta(Te, 180, rec.Angle, 1e-6)

	//same contact, with the hydrogen as the second atom
	op, err = chem.ParseSymOp("x-1,y,z")
	require.NoError(Te, err)
	mol = mustModel(Te, ats(), coords, [][2]int{{0, 1}}, cell, []chem.Candidate{
		{I: 2, J: 1, Distance: 2.0, VdWSum: 2.6, SymOp: op, SymOpString: op.String()},
	})
	_, hb = run(Te, mol, nil)
	require.Equal(Te, 1, hb.Len())
	assert.Equal(Te, Triple{0, 1, 2}, hb.Records()[0].Triple)

	//an operator without a cell can't be used
	mol = mustModel(Te, ats(), coords, [][2]int{{0, 1}}, nil, []chem.Candidate{
		{I: 1, J: 2, Distance: 2.0, VdWSum: 2.6, SymOp: op, SymOpString: op.String()},
	})
	m, err := NewManager(mol, nil)
	require.NoError(Te, err)
	_, _, err = m.Run()
	assert.True(Te, errors.Is(err, chem.ErrInvalidOption))
}

//detachedModel leaves every atom out of its own residue.
type detachedModel struct {
	*chem.Model
}

func (D detachedModel) ResidueAtoms(i int) []int { return nil }

func TestHBondSymmetryLostAcceptor(Te *testing.T) {
	cell, err := chem.NewUnitCell(10, 10, 10, 90, 90, 90)
	require.NoError(Te, err)
	ats := []*chem.Atom{
		{Name: "N", Symbol: "N", MolName: "GLY", MolID: 1, Chain: "A"},
		{Name: "H", Symbol: "H", MolName: "GLY", MolID: 1, Chain: "A"},
		{Name: "O", Symbol: "O", MolName: "GLY", MolID: 2, Chain: "A"},
	}
	op, err := chem.ParseSymOp("x+1,y,z")
	require.NoError(Te, err)
	mol := mustModel(Te, ats, []r3.Vec{{X: -1}, {}, {X: -8}}, [][2]int{{0, 1}}, cell, []chem.Candidate{
		{I: 1, J: 2, Distance: 2.0, VdWSum: 2.6, SymOp: op, SymOpString: op.String()},
	})
	m, err := NewManager(detachedModel{mol}, nil)
	require.NoError(Te, err)
	_, _, err = m.Run()
	assert.True(Te, errors.Is(err, chem.ErrUnreachable))
}

func collinearModel(Te *testing.T, sym *chem.SymOp) *chem.Model {
	Te.Helper()
	coords := []r3.Vec{{}, {X: 1}, {X: 2}}
	c2 := chem.Candidate{I: 0, J: 2, Distance: 2.0, VdWSum: 3.4}
	if sym != nil {
		c2.SymOp, c2.SymOpString = sym, sym.String()
	}
	return mustModel(Te, carbons(3), coords, [][2]int{{1, 2}}, nil, []chem.Candidate{
		{I: 0, J: 1, Distance: 1.0, VdWSum: 3.4},
		c2,
	})
}

func TestMultiClashCollinear(Te *testing.T) {
	c, _ := run(Te, collinearModel(Te, nil), nil)
	require.Equal(Te, 1, c.Len())
	assert.True(Te, c.Contains(Pair{0, 1}))

	op, err := chem.ParseSymOp("-x,-y,-z")
	require.NoError(Te, err)
	c, _ = run(Te, collinearModel(Te, op), nil)
	assert.Equal(Te, 2, c.Len())
}

func TestMultiClashNotBonded(Te *testing.T) {
	coords := []r3.Vec{{}, {X: 1}, {X: 2}}
	mol := mustModel(Te, carbons(3), coords, nil, nil, []chem.Candidate{
		{I: 0, J: 1, Distance: 1.0, VdWSum: 3.4},
		{I: 0, J: 2, Distance: 2.0, VdWSum: 3.4},
	})
	c, _ := run(Te, mol, nil)
	assert.Equal(Te, 2, c.Len())
}

func TestMultiClashTie(Te *testing.T) {
	//equal model distances: the clash with the first partner goes.
	coords := []r3.Vec{{}, {X: 1}, {X: 2}}
	mol := mustModel(Te, carbons(3), coords, [][2]int{{1, 2}}, nil, []chem.Candidate{
		{I: 0, J: 1, Distance: 1.5, VdWSum: 3.4},
		{I: 0, J: 2, Distance: 1.5, VdWSum: 3.4},
	})
	c, _ := run(Te, mol, nil)
	require.Equal(Te, 1, c.Len())
	assert.True(Te, c.Contains(Pair{0, 2}))
}

func TestRunOnce(Te *testing.T) {
	mol := &countingModel{Model: collinearModel(Te, nil)}
	m, err := NewManager(mol, nil)
	require.NoError(Te, err)
	c1, h1, err := m.Run()
	require.NoError(Te, err)
	c2, err := m.Clashes()
	require.NoError(Te, err)
	h2, err := m.HBonds()
	require.NoError(Te, err)
	assert.Same(Te, c1, c2)
	assert.Same(Te, h1, h2)
	ok, err := m.HasClashes()
	require.NoError(Te, err)
	assert.True(Te, ok)
	ok, err = m.HasHBonds()
	require.NoError(Te, err)
	assert.False(Te, ok)
	assert.Equal(Te, 1, mol.calls)
	assert.True(Te, c1.Frozen())
	assert.True(Te, errors.Is(c1.Add(Clash{Pair: Pair{1, 2}}), chem.ErrReadOnly))
}

func TestDeterminism(Te *testing.T) {
	build := func() *chem.Model {
		ats := carbons(8)
		coords := make([]r3.Vec, 8)
		for i := range coords {
			coords[i] = r3.Vec{X: float64(i) * 0.9, Y: float64(i%3) * 0.3}
		}
		cands := make([]chem.Candidate, 0)
		for i := 0; i < 8; i++ {
			for j := i + 1; j < 8; j++ {
				d := chem.Distance(coords[i], coords[j])
				if d < 3.5 {
					cands = append(cands, chem.Candidate{I: i, J: j, Distance: d, VdWSum: 3.4})
				}
			}
		}
		return mustModel(Te, ats, coords, [][2]int{{1, 2}, {3, 4}, {5, 6}}, nil, cands)
	}
	c1, _ := run(Te, build(), nil)
	c2, _ := run(Te, build(), nil)
	assert.Equal(Te, c1.Records(), c2.Records())
	assert.Greater(Te, c1.Len(), 0)
}

func TestEmptyInput(Te *testing.T) {
	mol := mustModel(Te, carbons(2), make([]r3.Vec, 2), nil, nil, nil)
	m, err := NewManager(mol, nil)
	require.NoError(Te, err)
	c, h, err := m.Run()
	require.NoError(Te, err)
	assert.Equal(Te, 0, c.Len())
	assert.Equal(Te, 0, h.Len())
	assert.True(Te, c.Frozen())
	res, err := m.Results()
	require.NoError(Te, err)
	assert.Equal(Te, Results{}, res)
	var b bytes.Buffer
	require.NoError(Te, m.Show(&b))
	assert.Contains(Te, b.String(), "No clashes found")
	assert.Contains(Te, b.String(), "No hbonds found")
}

func TestBadOptions(Te *testing.T) {
	mol := mustModel(Te, carbons(2), make([]r3.Vec, 2), nil, nil, nil)
	opts := DefaultOptions()
	opts.SortBy = "energy"
	_, err := NewManager(mol, opts)
	assert.True(Te, errors.Is(err, chem.ErrInvalidOption))
	opts = DefaultOptions()
	opts.HAMin = 3
	_, err = NewManager(mol, opts)
	assert.True(Te, errors.Is(err, chem.ErrInvalidOption))
	_, err = NewManager(nil, nil)
	assert.True(Te, errors.Is(err, chem.ErrInvalidOption))
}

func TestShow(Te *testing.T) {
	mol := hbondModel(Te, 2.0, 150, 2, "GLY", 2.0)
	m, err := NewManager(mol, nil)
	require.NoError(Te, err)
	var b bytes.Buffer
	require.NoError(Te, m.Show(&b))
	out := b.String()
	assert.Contains(Te, out, "Nonbonded overlaps")
	assert.Contains(Te, out, "No clashes found")
	assert.Contains(Te, out, "Number of H bonds")
	assert.Contains(Te, out, mol.Atom(0).IDStr())
	assert.Contains(Te, out, "150.00")
	assert.Equal(Te, "  ab  ", center("ab", 6))
	assert.Equal(Te, " ab  ", center("ab", 5))
}
