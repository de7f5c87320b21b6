package clash

import (
	"fmt"
	"io"
	"strings"

	chem "github.com/JiriCernyJC/cctbx-project"
)

//center pads s with spaces on both sides to width. Extra padding goes right.
func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func subHeader(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n\n", center(title, 78))
	return err
}

//ShowClashes writes the clash summary and one line per clash, in registry order.
func ShowClashes(w io.Writer, C *Clashes, atoms chem.Atomer, res ClashResults, clashscore bool) error {
	if err := subHeader(w, "Nonbonded overlaps"); err != nil {
		return err
	}
	if C.Len() == 0 {
		_, err := fmt.Fprintln(w, "No clashes found")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-34s : %5d\n", " Number of clashes", res.NClashes)
	fmt.Fprintf(&b, "%-34s : %5d\n", " Number of clashes due to symmetry", res.NClashesSym)
	if clashscore {
		fmt.Fprintf(&b, "%-34s : %5.2f\n", " Clashscore", res.Clashscore)
	}
	fmt.Fprintf(&b, "\n%s|%s|%s|%s\n", center("Overlapping residues info", 33), center("model distance", 16), center("overlap", 11), center("symmetry", 15))
	b.WriteString(strings.Repeat("-", 78) + "\n")
	for _, c := range C.Records() {
		fmt.Fprintf(&b, "%16s|%16s|%s|%s|%s|\n",
			atoms.Atom(c.Pair[0]).IDStr(),
			atoms.Atom(c.Pair[1]).IDStr(),
			center(fmt.Sprintf("%.2f", c.ModelDistance), 16),
			center(fmt.Sprintf("%.2f", c.Overlap), 11),
			center(c.SymOpString, 15))
	}
	b.WriteString(strings.Repeat("-", 78) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

//ShowHBonds writes the hydrogen bond summary and one line per X-H...A bond.
func ShowHBonds(w io.Writer, H *HBonds, atoms chem.Atomer, res HBondResults) error {
	if err := subHeader(w, "Hydrogen bonds"); err != nil {
		return err
	}
	if H.Len() == 0 {
		_, err := fmt.Fprintln(w, "No hbonds found")
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-18s : %5d\n", " Number of H bonds", res.NHBonds)
	fmt.Fprintf(&b, "\n%s|%s|%s|%s|\n", center("donor", 33), center("acceptor", 16), center("distance", 21), center("angle", 14))
	fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s|%s|\n", center("X", 16), center("H", 16), center("A", 16),
		center("H...A", 10), center("X...A", 10), center("X-H...A", 14), center("symop", 15))
	b.WriteString(strings.Repeat("-", 99) + "\n")
	for _, h := range H.Records() {
		fmt.Fprintf(&b, "%16s|%16s|%s|%s|%s|%s|%s|\n",
			atoms.Atom(h.Donor()).IDStr(),
			atoms.Atom(h.Hydrogen()).IDStr(),
			center(atoms.Atom(h.Acceptor()).IDStr(), 16),
			center(fmt.Sprintf("%.2f", h.HADistance), 10),
			center(fmt.Sprintf("%.2f", h.XADistance), 10),
			center(fmt.Sprintf("%.2f", h.Angle), 14),
			center(h.SymOpString, 15))
	}
	b.WriteString(strings.Repeat("-", 99) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
