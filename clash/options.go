package clash

import (
	"log/slog"

	chem "github.com/JiriCernyJC/cctbx-project"
)

//Sort keys for the clash registry.
const (
	ByModelDistance = "model_distance"
	ByVdWDistance   = "vdw_distance"
	ByOverlap       = "overlap"
	BySymmetry      = "symmetry"
)

//Sort keys for the hydrogen bond registry.
const (
	ByHADistance = "ha_distance"
	ByXADistance = "xa_distance"
	ByAngle      = "angle"
)

//Options control a Manager run. Use DefaultOptions to obtain the standard values
//and change only what is needed.
type Options struct {
	FindClashes bool
	FindHBonds  bool

	//If true, an invariant violation aborts the whole run. Otherwise only the
	//hydrogen bond test of the offending pair is skipped.
	Strict bool

	//Sort key for the final clash registry.
	SortBy string

	//A pair is a clash if model distance - vdW sum is below this value.
	ClashCutoff float64

	//Only pairs closer than this are tested as hydrogen bonds.
	HBondMaxModelDistance float64

	//Hydrogen bond geometry, from Steiner, Angew. Chem. Int. Ed. 2002, 41, 48-76, Table 2,
	//except that the minimum angle is 110, not 90.
	HAMin, HAMax float64
	XAMin, XAMax float64
	MinAngle     float64 //degrees

	//Two clashes with a common atom are redundant if the collinearity of
	//the three atoms is above this.
	InlineCos float64

	//Maximum allowed difference between the reported model distance and the
	//H...A distance computed from the coordinates.
	DistanceTolerance float64

	Logger *slog.Logger
}

//DefaultOptions returns the standard settings.
func DefaultOptions() *Options {
	return &Options{
		FindClashes:           true,
		FindHBonds:            true,
		SortBy:                ByOverlap,
		ClashCutoff:           -0.40,
		HBondMaxModelDistance: 3.0,
		HAMin:                 1.2,
		HAMax:                 2.2,
		XAMin:                 2.2,
		XAMax:                 3.2,
		MinAngle:              110,
		InlineCos:             0.707,
		DistanceTolerance:     0.1,
	}
}

//Validate returns an error if the options can't be used for a run.
func (O *Options) Validate() error {
	if !isClashSortKey(O.SortBy) {
		return chem.NewError(chem.ErrInvalidOption, true, "Options: Can not sort by %q. Possible options: %s, %s, %s, %s", O.SortBy, ByVdWDistance, ByModelDistance, ByOverlap, BySymmetry)
	}
	if O.HAMin > O.HAMax || O.XAMin > O.XAMax {
		return chem.NewError(chem.ErrInvalidOption, true, "Options: Empty hydrogen bond distance range")
	}
	if O.InlineCos < 0 || O.InlineCos > 1 {
		return chem.NewError(chem.ErrInvalidOption, true, "Options: InlineCos %g out of [0,1]", O.InlineCos)
	}
	if O.DistanceTolerance < 0 {
		return chem.NewError(chem.ErrInvalidOption, true, "Options: Negative distance tolerance")
	}
	return nil
}

func (O *Options) logger() *slog.Logger {
	if O.Logger == nil {
		return slog.Default()
	}
	return O.Logger
}

//acceptsHBond tests the X-H...A geometry. angle in degrees.
func (O *Options) acceptsHBond(ha, xa, angle float64) bool {
	return ha >= O.HAMin && ha <= O.HAMax &&
		xa >= O.XAMin && xa <= O.XAMax &&
		angle >= O.MinAngle
}

func isClashSortKey(key string) bool {
	switch key {
	case ByModelDistance, ByVdWDistance, ByOverlap, BySymmetry:
		return true
	}
	return false
}

//cutoffTolerance absorbs the rounding of model distance - vdW sum, so a pair
//sitting exactly on the cutoff is not a clash.
const cutoffTolerance = 1e-9

//isClash is true if delta is below cutoff by more than the rounding error.
func isClash(delta, cutoff float64) bool {
	return delta < cutoff-cutoffTolerance
}
