package clash

import (
	"fmt"
	"io"
	"sync"

	chem "github.com/JiriCernyJC/cctbx-project"
	"gonum.org/v1/gonum/spatial/r3"
)

//Model is what a Manager needs to know about an atomic model.
//*chem.Model implements it.
type Model interface {
	chem.Atomer
	Coord(i int) r3.Vec
	Connectivity() *chem.Connectivity
	Cell() *chem.UnitCell
	HydrogenSelection() []bool
	WaterSelection() []bool
	ProteinSelection() []bool
	ResidueAtoms(i int) []int
	//Candidates returns the nonbonded pairs in interaction range,
	//sorted by ascending distance.
	Candidates() ([]chem.Candidate, error)
}

var _ Model = (*chem.Model)(nil)

//Manager finds the clashes and hydrogen bonds of a model. The analysis
//runs once, the first time any of the accessors is called, and its results
//are kept. A Manager is safe for concurrent use. The registries it returns
//are frozen.
type Manager struct {
	mol     Model
	opts    *Options
	once    sync.Once
	clashes *Clashes
	hbonds  *HBonds
	err     error
}

//NewManager returns a Manager for mol. If opts is nil, DefaultOptions is used.
func NewManager(mol Model, opts *Options) (*Manager, error) {
	if mol == nil {
		return nil, chem.NewError(chem.ErrInvalidOption, true, "NewManager: Nil model")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, chem.ErrDecorate(err, "NewManager")
	}
	return &Manager{mol: mol, opts: opts}, nil
}

//Run processes the candidate pairs of the model and returns the clash and the
//hydrogen bond registries. Only the first call does any work.
func (M *Manager) Run() (*Clashes, *HBonds, error) {
	M.once.Do(func() {
		M.clashes, M.hbonds, M.err = M.run()
	})
	return M.clashes, M.hbonds, M.err
}

func (M *Manager) run() (*Clashes, *HBonds, error) {
	log := M.opts.logger()
	cands, err := M.mol.Candidates()
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Manager.Run")
	}
	n := M.mol.Len()
	for k, c := range cands {
		if c.I < 0 || c.I >= n || c.J < 0 || c.J >= n {
			return nil, nil, chem.NewError(chem.ErrNotFound, true, "Manager.Run: Candidate %d (%d, %d) out of range for %d atoms", k, c.I, c.J, n)
		}
	}
	cl := newClassifier(M.mol, M.opts)
	if len(cands) == 0 {
		log.Info("no candidate pairs")
		cl.clashes.freeze()
		cl.hbonds.freeze()
		return cl.clashes, cl.hbonds, nil
	}
	for _, c := range cands {
		if err := cl.classify(c); err != nil {
			return nil, nil, chem.ErrDecorate(err, "Manager.Run")
		}
	}
	raw := cl.clashes.Len()
	removed, err := resolve(cl.clashes, cl.multi, M.mol.Coord, cl.conn, M.opts.InlineCos)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "Manager.Run")
	}
	if err := cl.clashes.Sort(M.opts.SortBy); err != nil {
		return nil, nil, chem.ErrDecorate(err, "Manager.Run")
	}
	cl.clashes.freeze()
	cl.hbonds.freeze()
	log.Info("nonbonded pairs processed", "candidates", len(cands), "raw_clashes", raw,
		"redundant_removed", removed, "clashes", cl.clashes.Len(), "hbonds", cl.hbonds.Len(),
		"hbond_tests_skipped", cl.skipped)
	return cl.clashes, cl.hbonds, nil
}

//Clashes returns the clash registry.
func (M *Manager) Clashes() (*Clashes, error) {
	c, _, err := M.Run()
	return c, err
}

//HBonds returns the hydrogen bond registry.
func (M *Manager) HBonds() (*HBonds, error) {
	_, h, err := M.Run()
	return h, err
}

//HasClashes returns true if at least one clash was found.
func (M *Manager) HasClashes() (bool, error) {
	c, err := M.Clashes()
	if err != nil {
		return false, err
	}
	return c.Len() > 0, nil
}

//HasHBonds returns true if at least one hydrogen bond was found.
func (M *Manager) HasHBonds() (bool, error) {
	h, err := M.HBonds()
	if err != nil {
		return false, err
	}
	return h.Len() > 0, nil
}

//Results returns the summaries for the clashes and hydrogen bonds of the model.
func (M *Manager) Results() (Results, error) {
	c, h, err := M.Run()
	if err != nil {
		return Results{}, err
	}
	return Results{
		Clashes: c.Results(M.mol.Len(), M.mol.ProteinSelection()),
		HBonds:  h.Results(),
	}, nil
}

//Show writes the clash and hydrogen bond tables to w.
func (M *Manager) Show(w io.Writer) error {
	res, err := M.Results()
	if err != nil {
		return err
	}
	if err := ShowClashes(w, M.clashes, M.mol, res.Clashes, true); err != nil {
		return chem.ErrDecorate(err, "Manager.Show")
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := ShowHBonds(w, M.hbonds, M.mol, res.HBonds); err != nil {
		return chem.ErrDecorate(err, "Manager.Show")
	}
	return nil
}
