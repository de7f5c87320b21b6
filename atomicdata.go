/*
 * atomicdata.go, part of cctbx-project.
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

package chem

import "strings"

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"D":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"SE": 1.90,
	"K":  2.75,
	"CA": 2.31,
	"MG": 1.73,
	"CL": 1.75,
	"NA": 2.27,
	"CU": 2.00,
	"ZN": 2.02,
	"CO": 1.95,
	"FE": 1.96,
	"MN": 1.96,
	"CR": 1.97,
	"SI": 2.10,
	"BE": 1.53,
	"F":  1.47,
	"BR": 1.83,
	"I":  1.98,
}

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
//It doubles as the "protein" selection.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"MSE": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

var waterNames = []string{"HOH", "WAT", "SOL", "DOD", "H2O", "TIP", "TIP3"}

//VdWRadius returns the van der Waals radius of the element symbol, and false if
//the element is not in the table.
func VdWRadius(symbol string) (float64, bool) {
	r, ok := symbolVdwrad[strings.ToUpper(strings.TrimSpace(symbol))]
	return r, ok
}

//VdWSum returns the sum of the van der Waals radii of two elements.
func VdWSum(symbol1, symbol2 string) (float64, error) {
	r1, ok1 := VdWRadius(symbol1)
	r2, ok2 := VdWRadius(symbol2)
	if !ok1 || !ok2 {
		return 0, NewError(ErrNotFound, false, "VdWSum: Couldn't find radii for atoms %s-%s", symbol1, symbol2)
	}
	return r1 + r2, nil
}

//OneLetter returns the one-letter code for the residue name, or 0 if it is not an amino acid.
func OneLetter(molname string) byte {
	return three2OneLetter[strings.ToUpper(strings.TrimSpace(molname))]
}
