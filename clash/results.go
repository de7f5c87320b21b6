package clash

//ClashResults summarizes a clash registry. Clashscores are clashes per 1000 atoms.
type ClashResults struct {
	NClashes           int     `json:"n_clashes"`
	Clashscore         float64 `json:"clashscore"`
	NClashesSym        int     `json:"n_clashes_sym"`
	ClashscoreSym      float64 `json:"clashscore_sym"`
	NClashesMacroMol   int     `json:"n_clashes_macro_mol"`
	ClashscoreMacroMol float64 `json:"clashscore_macro_mol"`
}

//HBondResults summarizes a hydrogen bond registry.
type HBondResults struct {
	NHBonds int `json:"n_hbonds"`
}

//Results puts together the summaries of one run.
type Results struct {
	Clashes ClashResults `json:"clashes"`
	HBonds  HBondResults `json:"hbonds"`
}

func clashscore(nclashes, natoms int) float64 {
	if natoms == 0 {
		return 0
	}
	return float64(nclashes) * 1000 / float64(natoms)
}

//Results computes the clash summary for a model with natoms atoms,
//where protein selects the macromolecule atoms. The symmetry clashscore
//uses all the atoms of the model, the macromolecule one only the selected atoms.
func (C *Clashes) Results(natoms int, protein []bool) ClashResults {
	nprot := 0
	for _, v := range protein {
		if v {
			nprot++
		}
	}
	nsym := len(C.Symmetry())
	nmacro := len(C.Macromolecule(protein))
	return ClashResults{
		NClashes:           C.Len(),
		Clashscore:         clashscore(C.Len(), natoms),
		NClashesSym:        nsym,
		ClashscoreSym:      clashscore(nsym, natoms),
		NClashesMacroMol:   nmacro,
		ClashscoreMacroMol: clashscore(nmacro, nprot),
	}
}

//Results returns the hydrogen bond summary.
func (H *HBonds) Results() HBondResults {
	return HBondResults{NHBonds: H.Len()}
}
