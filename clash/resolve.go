package clash

import (
	chem "github.com/JiriCernyJC/cctbx-project"
	"gonum.org/v1/gonum/spatial/r3"
)

//multiClashIndex maps each atom to the atoms it clashes with. order keeps
//the atoms in the order they first appeared, so the resolution doesn't
//depend on map iteration.
type multiClashIndex struct {
	partners map[int][]int
	order    []int
}

func newMultiClashIndex() *multiClashIndex {
	return &multiClashIndex{partners: make(map[int][]int)}
}

func (M *multiClashIndex) addOne(i, j int) {
	if _, ok := M.partners[i]; !ok {
		M.order = append(M.order, i)
	}
	M.partners[i] = append(M.partners[i], j)
}

//add records the clash in both directions.
func (M *multiClashIndex) add(i, j int) {
	M.addOne(i, j)
	M.addOne(j, i)
}

//resolve removes redundant clashes. X-H ~~~ Y can produce two clashes, X~~~Y and H~~~Y.
//When an atom c clashes with two atoms bonded to each other, and c is in line
//with them, only the shorter of the two clashes is kept. Clashes with a symmetry
//image are never removed here, as their coordinates are not in the frame of
//the model. It returns the number of clashes removed.
func resolve(clashes *Clashes, index *multiClashIndex, coord func(int) r3.Vec, conn *chem.Connectivity, inlineCos float64) (int, error) {
	toRemove := make([]Pair, 0)
	for _, c := range index.order {
		partners := index.partners[c]
		if len(partners) < 2 {
			continue
		}
		for i := 0; i < len(partners)-1; i++ {
			for j := i + 1; j < len(partners); j++ {
				p1, p2 := partners[i], partners[j]
				if !conn.AreBonded(p1, p2) {
					continue
				}
				t1, t2 := NewPair(c, p1), NewPair(c, p2)
				if !clashes.Contains(t1) || !clashes.Contains(t2) {
					continue
				}
				sym1, _ := clashes.IsSymmetry(t1)
				sym2, _ := clashes.IsSymmetry(t2)
				cos := 0.0
				if !sym1 && !sym2 {
					cos = chem.Collinearity(coord(p1), coord(p2), coord(c))
				}
				if cos <= inlineCos || coord(p1) == coord(p2) {
					continue
				}
				d1, err := clashes.Distance(t1)
				if err != nil {
					return 0, chem.ErrDecorate(err, "resolve")
				}
				d2, err := clashes.Distance(t2)
				if err != nil {
					return 0, chem.ErrDecorate(err, "resolve")
				}
				if d1 < d2 {
					toRemove = append(toRemove, t2)
				} else {
					toRemove = append(toRemove, t1)
				}
			}
		}
	}
	removed := 0
	for _, p := range toRemove {
		ok, err := clashes.Remove(p)
		if err != nil {
			return removed, chem.ErrDecorate(err, "resolve")
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}
