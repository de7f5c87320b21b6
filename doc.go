/*
 * doc.go, part of cctbx-project.
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

/*Package chem is the main package of the library. It provides the atomic model
that the nonbonded analysis works on: atoms, cartesian coordinates, the covalent
bond table and the crystal unit cell, together with the candidate atom pairs
produced for one configuration of the model.


	**Capabilities**

    Atom flags: hydrogen/deuterium, water and protein selections, residue identity.

    Connectivity: a bond table that implements gonum's graph.Undirected, so
	breadth-first searches and other graph algorithms can be run on it.
	Detects 1-5 hydrogen/heavy atom interactions.

    Geometry: distances, angles and the collinearity of clashing atoms.

    Crystal symmetry: fractionalization and orthogonalization of coordinates,
	parsing, application and inversion of symmetry operators.

The classification of the candidate pairs into clashes and hydrogen bonds is
in the clash subpackage.
*/
package chem
