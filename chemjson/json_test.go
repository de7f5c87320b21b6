package chemjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/JiriCernyJC/cctbx-project"
	"github.com/JiriCernyJC/cctbx-project/clash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//N-H of one glycine donating to the O of another, plus a close C...C contact.
func testSnapshot() *Snapshot {
	return &Snapshot{
		Atoms: []Atom{
			{Name: "N", ID: 1, Symbol: "N", MolName: "GLY", MolID: 1, Chain: "A", Occupancy: 1, XYZ: [3]float64{-1, 0, 0}},
			{Name: "H", ID: 2, Symbol: "H", MolName: "GLY", MolID: 1, Chain: "A", Occupancy: 1},
			{Name: "O", ID: 3, Symbol: "O", MolName: "GLY", MolID: 2, Chain: "A", Occupancy: 1, XYZ: [3]float64{2, 0, 0}},
			{Name: "C1", ID: 4, Symbol: "C", MolName: "LIG", MolID: 3, Chain: "B", Occupancy: 1, Het: true, XYZ: [3]float64{0, 5, 0}},
			{Name: "C2", ID: 5, Symbol: "C", MolName: "LIG", MolID: 4, Chain: "B", Occupancy: 1, Het: true, XYZ: [3]float64{0, 7, 0}},
		},
		Bonds: [][2]int{{0, 1}},
		Cell:  &Cell{A: 30, B: 30, C: 30, Alpha: 90, Beta: 90, Gamma: 90},
		Pairs: []Pair{
			{I: 3, J: 4, Distance: 2.0},
			{I: 1, J: 2, Distance: 2.0, VdWSum: 2.3, SymOp: "x,y,z"},
		},
	}
}

func TestSnapshotModel(Te *testing.T) {
	mol, err := testSnapshot().Model()
	require.NoError(Te, err)
	assert.Equal(Te, 5, mol.Len())
	assert.True(Te, mol.Connectivity().AreBonded(1, 0))
	require.NotNil(Te, mol.Cell())
	cands, err := mol.Candidates()
	require.NoError(Te, err)
	require.Len(Te, cands, 2)
	//C+C radii filled in
	assert.InDelta(Te, 3.4, cands[0].VdWSum, 1e-9)
	//the identity operator is dropped
	assert.Nil(Te, cands[1].SymOp)
	assert.Equal(Te, "", cands[1].SymOpString)

	m, err := clash.NewManager(mol, nil)
	require.NoError(Te, err)
	res, err := m.Results()
	require.NoError(Te, err)
	assert.Equal(Te, 1, res.Clashes.NClashes)
	assert.Equal(Te, 1, res.HBonds.NHBonds)
}

func TestSnapshotErrors(Te *testing.T) {
	S := testSnapshot()
	S.Pairs = append(S.Pairs, Pair{I: 0, J: 9, Distance: 1})
	_, err := S.Model()
	assert.True(Te, errors.Is(err, chem.ErrNotFound))

	S = testSnapshot()
	S.Pairs[1].SymOp = "x,y,q"
	_, err = S.Model()
	assert.True(Te, errors.Is(err, chem.ErrInvalidOption))

	S = testSnapshot()
	S.Atoms[4].Symbol = "Qq"
	_, err = S.Model()
	assert.True(Te, errors.Is(err, chem.ErrNotFound))

	_, err = Decode(strings.NewReader("{\"atoms\": ["))
	var jerr *Error
	require.True(Te, errors.As(err, &jerr))
	assert.Equal(Te, "input", jerr.Where)
	assert.Contains(Te, string(jerr.Marshal()), "chemjson.Decode")
}

func TestCompressedRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"snap.json", "snap.json.gz", "snap.json.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(Te, WriteSnapshot(path, testSnapshot()), name)
		S, err := ReadSnapshot(path)
		require.NoError(Te, err, name)
		assert.Equal(Te, testSnapshot(), S, name)
	}
	assert.Equal(Te, Gzip, Format("a.JSON.GZ"))
	assert.Equal(Te, Zstd, Format("a.zstd"))
	assert.Equal(Te, Plain, Format("a.json"))
	_, err := ReadSnapshot(filepath.Join(dir, "missing.json"))
	assert.Error(Te, err)
}

func TestReport(Te *testing.T) {
	mol, err := testSnapshot().Model()
	require.NoError(Te, err)
	m, err := clash.NewManager(mol, nil)
	require.NoError(Te, err)
	c, h, err := m.Run()
	require.NoError(Te, err)
	res, err := m.Results()
	require.NoError(Te, err)
	R := NewReport(res, c, h, mol)
	require.Len(Te, R.Clashes, 1)
	assert.Equal(Te, [2]int{3, 4}, R.Clashes[0].Indexes)
	assert.Equal(Te, "C1   LIG B   3", R.Clashes[0].Atoms[0])
	require.Len(Te, R.HBonds, 1)
	assert.Equal(Te, [3]int{0, 1, 2}, R.HBonds[0].Indexes)

	var b bytes.Buffer
	require.NoError(Te, R.Send(&b))
	back := new(Report)
	require.NoError(Te, json.Unmarshal(b.Bytes(), back))
	assert.Equal(Te, 1, back.Results.Clashes.NClashes)
	assert.Equal(Te, 1, back.Results.HBonds.NHBonds)

	path := filepath.Join(Te.TempDir(), "report.json.gz")
	require.NoError(Te, WriteReport(path, R))
	r, err := Open(path)
	require.NoError(Te, err)
	defer r.Close()
	back = new(Report)
	require.NoError(Te, json.NewDecoder(r).Decode(back))
	assert.Equal(Te, R.Clashes, back.Clashes)
}
