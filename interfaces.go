/*
 * interfaces.go, part of cctbx-project.
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
	"errors"
	"fmt"
)

//Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

//Error kinds. An *Error wraps one of these, so they can be tested with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvariant     = errors.New("invariant violation")
	ErrUnreachable   = errors.New("unreachable state")
	ErrReadOnly      = errors.New("read-only")
)

//Error is the error type returned by this library. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error struct {
	msg      string
	deco     []string
	critical bool
	kind     error
}

//NewError returns an *Error of the given kind, with a message built from format and a.
func NewError(kind error, critical bool, format string, a ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, a...), critical: critical, kind: kind}
}

//Error returns a string with an error message.
func (E *Error) Error() string {
	if E.kind == nil {
		return E.msg
	}
	return fmt.Sprintf("%s: %s", E.kind, E.msg)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. If dec is empty, it just returns the current slice.
func (E *Error) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

//Critical return whether the error is critical or it can be ignored
func (E *Error) Critical() bool { return E.critical }

//Unwrap returns the error kind.
func (E *Error) Unwrap() error { return E.kind }

//ErrDecorate adds the caller name to the decorations of err, if err is
//an *Error (possibly wrapped), and returns err unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
