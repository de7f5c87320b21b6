package clash

import (
	"sort"

	chem "github.com/JiriCernyJC/cctbx-project"
)

//Triple identifies a hydrogen bond X-H...A by the indexes of the donor heavy
//atom X, the hydrogen H and the acceptor A, in that order.
type Triple [3]int

//HBond is the geometry of a hydrogen bond. Distances in A, angle in degrees.
type HBond struct {
	Triple      Triple
	HADistance  float64
	XADistance  float64
	Angle       float64 // X-H...A
	SymOpString string
	SymOp       *chem.SymOp
	VdWSum      float64
}

//Donor returns the index of the donor heavy atom.
func (H HBond) Donor() int { return H.Triple[0] }

//Hydrogen returns the index of the hydrogen atom.
func (H HBond) Hydrogen() int { return H.Triple[1] }

//Acceptor returns the index of the acceptor atom.
func (H HBond) Acceptor() int { return H.Triple[2] }

//IsSymmetry returns true if the acceptor was taken from a symmetry image.
func (H HBond) IsSymmetry() bool { return H.SymOp != nil }

//HBonds is the registry of hydrogen bonds found in a model.
//It follows the same rules as Clashes.
type HBonds struct {
	records []HBond
	index   map[Triple]int
	frozen  bool
}

//NewHBonds returns an empty registry.
func NewHBonds() *HBonds {
	return &HBonds{index: make(map[Triple]int)}
}

//Add adds a hydrogen bond. A bond with the same Triple is replaced in place.
func (H *HBonds) Add(h HBond) error {
	if H.frozen {
		return chem.NewError(chem.ErrReadOnly, false, "HBonds.Add: hydrogen bond registry is frozen")
	}
	if k, ok := H.index[h.Triple]; ok {
		H.records[k] = h
		return nil
	}
	H.index[h.Triple] = len(H.records)
	H.records = append(H.records, h)
	return nil
}

//Len returns the number of hydrogen bonds.
func (H *HBonds) Len() int {
	return len(H.records)
}

//Records returns a copy of the hydrogen bonds, in registry order.
func (H *HBonds) Records() []HBond {
	ret := make([]HBond, len(H.records))
	copy(ret, H.records)
	return ret
}

//Contains returns true if there is a hydrogen bond for t.
func (H *HBonds) Contains(t Triple) bool {
	_, ok := H.index[t]
	return ok
}

//Get returns the hydrogen bond t, or an error wrapping chem.ErrNotFound.
func (H *HBonds) Get(t Triple) (HBond, error) {
	k, ok := H.index[t]
	if !ok {
		return HBond{}, chem.NewError(chem.ErrNotFound, false, "HBonds.Get: No hydrogen bond %d-%d...%d", t[0], t[1], t[2])
	}
	return H.records[k], nil
}

//FormsHBond returns true if atom takes part in a hydrogen bond, as donor,
//hydrogen or acceptor.
func (H *HBonds) FormsHBond(atom int) bool {
	for _, h := range H.records {
		if h.Triple[0] == atom || h.Triple[1] == atom || h.Triple[2] == atom {
			return true
		}
	}
	return false
}

//Frozen returns true if the registry can't be modified.
func (H *HBonds) Frozen() bool {
	return H.frozen
}

func (H *HBonds) freeze() {
	H.frozen = true
}

//Sort re-orders the registry by ascending ByHADistance, ByXADistance, ByAngle or BySymmetry.
func (H *HBonds) Sort(by string) error {
	if H.frozen {
		return chem.NewError(chem.ErrReadOnly, false, "HBonds.Sort: hydrogen bond registry is frozen")
	}
	var less func(a, b HBond) bool
	switch by {
	case ByHADistance:
		less = func(a, b HBond) bool { return a.HADistance < b.HADistance }
	case ByXADistance:
		less = func(a, b HBond) bool { return a.XADistance < b.XADistance }
	case ByAngle:
		less = func(a, b HBond) bool { return a.Angle < b.Angle }
	case BySymmetry:
		less = func(a, b HBond) bool { return a.SymOpString < b.SymOpString }
	default:
		return chem.NewError(chem.ErrInvalidOption, true, "HBonds.Sort: Can not sort by %q. Possible options: %s, %s, %s, %s", by, ByHADistance, ByXADistance, ByAngle, BySymmetry)
	}
	sort.SliceStable(H.records, func(i, j int) bool { return less(H.records[i], H.records[j]) })
	for i, h := range H.records {
		H.index[h.Triple] = i
	}
	return nil
}

//Sorted returns a sorted, writable copy of the registry.
func (H *HBonds) Sorted(by string) (*HBonds, error) {
	ret := NewHBonds()
	for _, h := range H.records {
		ret.Add(h)
	}
	if err := ret.Sort(by); err != nil {
		return nil, err
	}
	return ret, nil
}
