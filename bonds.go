/*
 * bonds.go, part of cctbx-project.
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

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

//Connectivity is the covalent bond table of a model: for each atom index, the indexes
//of the atoms directly bonded to it, in the order the bonds were added.
//It implements gonum's graph.Undirected, with the atom indexes as node IDs, so
//the gonum graph algorithms can be used on it.
type Connectivity struct {
	bonded [][]int
}

//NewConnectivity returns an empty bond table for natoms atoms.
func NewConnectivity(natoms int) *Connectivity {
	return &Connectivity{bonded: make([][]int, natoms)}
}

//Len returns the number of atoms in the table.
func (C *Connectivity) Len() int {
	return len(C.bonded)
}

func (C *Connectivity) inRange(i int) bool {
	return i >= 0 && i < len(C.bonded)
}

//AddBond adds a bond between atoms i and j. Adding an existing bond does nothing.
func (C *Connectivity) AddBond(i, j int) error {
	if !C.inRange(i) || !C.inRange(j) {
		return NewError(ErrNotFound, true, "AddBond: Bond %d-%d out of range for %d atoms", i, j, len(C.bonded))
	}
	if i == j {
		return NewError(ErrInvalidOption, true, "AddBond: Atom %d can't be bonded to itself", i)
	}
	if isInInt(C.bonded[i], j) {
		return nil
	}
	C.bonded[i] = append(C.bonded[i], j)
	C.bonded[j] = append(C.bonded[j], i)
	return nil
}

//Bonded returns the atoms directly bonded to atom i. The slice
//should not be modified.
func (C *Connectivity) Bonded(i int) []int {
	if !C.inRange(i) {
		return nil
	}
	return C.bonded[i]
}

//AreBonded returns true if there is a covalent bond between i and j.
func (C *Connectivity) AreBonded(i, j int) bool {
	return isInInt(C.Bonded(i), j)
}

//Shell returns all the atoms at most depth bonds away from atom i, excluding i,
//in breadth-first order. Shell(i, 1) is the same set as Bonded(i), and Shell(i, 2)
//spans one additional bonding shell.
func (C *Connectivity) Shell(i, depth int) []int {
	if !C.inRange(i) || depth < 1 {
		return nil
	}
	ret := make([]int, 0, len(C.bonded[i])*depth)
	var bf traverse.BreadthFirst
	bf.Walk(C, simple.Node(i), func(n graph.Node, d int) bool {
		if d > depth {
			return true
		}
		if d > 0 {
			ret = append(ret, int(n.ID()))
		}
		return false
	})
	return ret
}

//BondDistance returns the number of bonds in the shortest path between i and j,
//if that number is not larger than max. Otherwise, or if there is no path at all,
//it returns -1.
func (C *Connectivity) BondDistance(i, j, max int) int {
	if !C.inRange(i) || !C.inRange(j) {
		return -1
	}
	found := -1
	var bf traverse.BreadthFirst
	bf.Walk(C, simple.Node(i), func(n graph.Node, d int) bool {
		if d > max {
			return true
		}
		if n.ID() == int64(j) {
			found = d
			return true
		}
		return false
	})
	return found
}

//Is15Interaction checks whether there is a 1-5 interaction between a hydrogen (H) and
//a heavy atom (X), i.e. whether they are exactly four bonds apart: H-A-A-A-X.
//hd[i] must be true if atom i is a hydrogen. If i and j are both hydrogens, or both
//heavy atoms, the function returns false.
func Is15Interaction(i, j int, hd []bool, conn *Connectivity) bool {
	if i < 0 || j < 0 || i >= len(hd) || j >= len(hd) {
		return false
	}
	if hd[i] == hd[j] {
		return false
	}
	//starting with the hydrogen will make the search shorter
	if !hd[i] {
		i, j = j, i
	}
	return conn.BondDistance(i, j, 4) == 4
}

/**gonum graph.Undirected implementation**/

//Node returns the node with the given ID, or nil if it is not in the table.
func (C *Connectivity) Node(id int64) graph.Node {
	if !C.inRange(int(id)) {
		return nil
	}
	return simple.Node(id)
}

//Nodes returns all the atoms in the table.
func (C *Connectivity) Nodes() graph.Nodes {
	if len(C.bonded) == 0 {
		return graph.Empty
	}
	nodes := make([]graph.Node, len(C.bonded))
	for i := range C.bonded {
		nodes[i] = simple.Node(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

//From returns the atoms bonded to the atom with the given ID, in insertion order.
func (C *Connectivity) From(id int64) graph.Nodes {
	b := C.Bonded(int(id))
	if len(b) == 0 {
		return graph.Empty
	}
	nodes := make([]graph.Node, len(b))
	for k, v := range b {
		nodes[k] = simple.Node(v)
	}
	return iterator.NewOrderedNodes(nodes)
}

//HasEdgeBetween returns whether the atoms with IDs xid and yid are bonded.
func (C *Connectivity) HasEdgeBetween(xid, yid int64) bool {
	return C.AreBonded(int(xid), int(yid))
}

//Edge returns the bond between u and v, or nil if there is none.
func (C *Connectivity) Edge(uid, vid int64) graph.Edge {
	if !C.HasEdgeBetween(uid, vid) {
		return nil
	}
	return simple.Edge{F: simple.Node(uid), T: simple.Node(vid)}
}

//EdgeBetween is the same as Edge, bonds have no direction.
func (C *Connectivity) EdgeBetween(xid, yid int64) graph.Edge {
	return C.Edge(xid, yid)
}

var _ graph.Undirected = (*Connectivity)(nil)
