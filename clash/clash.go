package clash

import (
	"sort"

	chem "github.com/JiriCernyJC/cctbx-project"
)

//Pair identifies a clash. The smaller atom index always goes first,
//so the same two atoms give the same Pair regardless of their order.
type Pair [2]int

//NewPair returns the Pair for atoms i and j.
func NewPair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{i, j}
}

//Clash is an unfavorable close contact between two atoms.
type Clash struct {
	Pair          Pair
	ModelDistance float64
	VdWSum        float64
	Overlap       float64 // |model distance - vdW sum|
	SymOpString   string
	SymOp         *chem.SymOp
}

//IsSymmetry returns true if one of the atoms is a symmetry image.
func (C Clash) IsSymmetry() bool {
	return C.SymOp != nil
}

//Clashes is the registry of clashes found in a model, with at most one record per Pair.
//Records keep the order in which they were added until the registry is sorted.
//Registries returned by a Manager are frozen: Add, Remove and Sort fail on them.
//Use Sorted to obtain a re-ordered, writable copy.
type Clashes struct {
	records []Clash
	index   map[Pair]int
	frozen  bool
}

//NewClashes returns an empty registry.
func NewClashes() *Clashes {
	return &Clashes{index: make(map[Pair]int)}
}

func (C *Clashes) readOnly(caller string) error {
	return chem.NewError(chem.ErrReadOnly, false, "%s: clash registry is frozen", caller)
}

//Add adds a clash. A clash with the same Pair is replaced, keeping its position.
func (C *Clashes) Add(c Clash) error {
	if C.frozen {
		return C.readOnly("Clashes.Add")
	}
	c.Pair = NewPair(c.Pair[0], c.Pair[1])
	if k, ok := C.index[c.Pair]; ok {
		C.records[k] = c
		return nil
	}
	C.index[c.Pair] = len(C.records)
	C.records = append(C.records, c)
	return nil
}

//Remove deletes the clash for p. It returns false if there was no such clash.
func (C *Clashes) Remove(p Pair) (bool, error) {
	if C.frozen {
		return false, C.readOnly("Clashes.Remove")
	}
	p = NewPair(p[0], p[1])
	k, ok := C.index[p]
	if !ok {
		return false, nil
	}
	C.records = append(C.records[:k], C.records[k+1:]...)
	delete(C.index, p)
	for i := k; i < len(C.records); i++ {
		C.index[C.records[i].Pair] = i
	}
	return true, nil
}

//Contains returns true if the two atoms in p clash.
func (C *Clashes) Contains(p Pair) bool {
	_, ok := C.index[NewPair(p[0], p[1])]
	return ok
}

func (C *Clashes) lookup(p Pair) (Clash, bool) {
	k, ok := C.index[NewPair(p[0], p[1])]
	if !ok {
		return Clash{}, false
	}
	return C.records[k], true
}

//Get returns the clash for p, or an error wrapping chem.ErrNotFound.
func (C *Clashes) Get(p Pair) (Clash, error) {
	c, ok := C.lookup(p)
	if !ok {
		return Clash{}, chem.NewError(chem.ErrNotFound, false, "Clashes.Get: No clash between atoms %d and %d", p[0], p[1])
	}
	return c, nil
}

//Distance returns the model distance of the clash p.
func (C *Clashes) Distance(p Pair) (float64, error) {
	c, err := C.Get(p)
	if err != nil {
		return 0, chem.ErrDecorate(err, "Clashes.Distance")
	}
	return c.ModelDistance, nil
}

//IsSymmetry returns whether the clash p involves a symmetry image.
func (C *Clashes) IsSymmetry(p Pair) (bool, error) {
	c, err := C.Get(p)
	if err != nil {
		return false, chem.ErrDecorate(err, "Clashes.IsSymmetry")
	}
	return c.IsSymmetry(), nil
}

//IsClashing returns true if atom is involved in at least one clash.
func (C *Clashes) IsClashing(atom int) bool {
	for _, c := range C.records {
		if c.Pair[0] == atom || c.Pair[1] == atom {
			return true
		}
	}
	return false
}

//Len returns the number of clashes.
func (C *Clashes) Len() int {
	return len(C.records)
}

//Records returns a copy of the clashes, in registry order.
func (C *Clashes) Records() []Clash {
	ret := make([]Clash, len(C.records))
	copy(ret, C.records)
	return ret
}

//Frozen returns true if the registry can't be modified.
func (C *Clashes) Frozen() bool {
	return C.frozen
}

func (C *Clashes) freeze() {
	C.frozen = true
}

//Sort re-orders the registry in place by ascending value of the given key:
//ByModelDistance, ByVdWDistance, ByOverlap or BySymmetry. Ties keep their
//previous relative order. Any other key is an error.
func (C *Clashes) Sort(by string) error {
	if C.frozen {
		return C.readOnly("Clashes.Sort")
	}
	less, err := clashLess(by)
	if err != nil {
		return chem.ErrDecorate(err, "Clashes.Sort")
	}
	sort.SliceStable(C.records, func(i, j int) bool { return less(C.records[i], C.records[j]) })
	for i, c := range C.records {
		C.index[c.Pair] = i
	}
	return nil
}

//Sorted returns a sorted, writable copy of the registry, leaving the receiver untouched.
func (C *Clashes) Sorted(by string) (*Clashes, error) {
	ret := NewClashes()
	for _, c := range C.records {
		ret.Add(c)
	}
	if err := ret.Sort(by); err != nil {
		return nil, err
	}
	return ret, nil
}

func clashLess(by string) (func(a, b Clash) bool, error) {
	switch by {
	case ByModelDistance:
		return func(a, b Clash) bool { return a.ModelDistance < b.ModelDistance }, nil
	case ByVdWDistance:
		return func(a, b Clash) bool { return a.VdWSum < b.VdWSum }, nil
	case ByOverlap:
		return func(a, b Clash) bool { return a.Overlap < b.Overlap }, nil
	case BySymmetry:
		return func(a, b Clash) bool { return a.SymOpString < b.SymOpString }, nil
	}
	return nil, chem.NewError(chem.ErrInvalidOption, true, "Can not sort by %q. Possible options: %s, %s, %s, %s", by, ByVdWDistance, ByModelDistance, ByOverlap, BySymmetry)
}

//Symmetry returns the clashes that involve a symmetry image.
func (C *Clashes) Symmetry() []Clash {
	ret := make([]Clash, 0)
	for _, c := range C.records {
		if c.IsSymmetry() {
			ret = append(ret, c)
		}
	}
	return ret
}

//Macromolecule returns the clashes between two atoms selected in sel
//(normally the protein selection), excluding symmetry clashes.
func (C *Clashes) Macromolecule(sel []bool) []Clash {
	ret := make([]Clash, 0)
	for _, c := range C.records {
		i, j := c.Pair[0], c.Pair[1]
		if i < len(sel) && j < len(sel) && sel[i] && sel[j] && !c.IsSymmetry() {
			ret = append(ret, c)
		}
	}
	return ret
}
