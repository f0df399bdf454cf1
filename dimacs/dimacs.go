// Package dimacs reads and writes the DIMACS CNF exchange format: comment
// lines starting with "c", one "p cnf <vars> <clauses>" header, then
// clause lines of whitespace-separated literals terminated by "0".
// Malformed input is detected here, so the solver core can assume
// well-formed formulas.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/satlab/sat/dpll"
)

// ParseCNF parses a CNF problem from r.
func ParseCNF(r io.Reader) (dpll.Formula, error) {
	var f dpll.Formula
	sawHeader := false
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for num := 1; scanner.Scan(); num++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "c") {
			continue
		}
		if fields[0] == "p" {
			if sawHeader {
				return nil, errors.Errorf("line %d: duplicate header", num)
			}
			if err := parseHeader(fields); err != nil {
				return nil, errors.Wrapf(err, "line %d", num)
			}
			sawHeader = true
			continue
		}
		clause, err := parseClause(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", num)
		}
		f = append(f, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read CNF")
	}
	return f, nil
}

// ParseCNFFile parses the CNF problem stored at the given path.
func ParseCNFFile(path string) (dpll.Formula, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %q", path)
	}
	defer file.Close()
	f, err := ParseCNF(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %q", path)
	}
	return f, nil
}

func parseHeader(fields []string) error {
	if len(fields) != 4 || fields[1] != "cnf" {
		return errors.Errorf("invalid header %q", strings.Join(fields, " "))
	}
	if _, err := strconv.Atoi(fields[2]); err != nil {
		return errors.Errorf("nbvars not an int: %q", fields[2])
	}
	if _, err := strconv.Atoi(fields[3]); err != nil {
		return errors.Errorf("nbclauses not an int: %q", fields[3])
	}
	return nil
}

func parseClause(fields []string) (dpll.Clause, error) {
	clause := make(dpll.Clause, 0, len(fields)-1)
	for i, field := range fields {
		val, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Errorf("invalid literal %q", field)
		}
		if val == 0 {
			if i != len(fields)-1 {
				return nil, errors.Errorf("null literal inside clause %q", strings.Join(fields, " "))
			}
			return clause, nil
		}
		clause = append(clause, dpll.Lit(val))
	}
	return nil, errors.Errorf("clause %q not terminated by 0", strings.Join(fields, " "))
}

// WriteCNF writes f to w in the DIMACS CNF format, header included.
func WriteCNF(w io.Writer, f dpll.Formula) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", f.MaxVar(), len(f))
	for _, clause := range f {
		for _, lit := range clause {
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintln(bw, "0")
	}
	return errors.Wrap(bw.Flush(), "could not write CNF")
}

// WriteSolution writes an assignment as a DIMACS solution line: literals
// separated by spaces, terminated by "0". The assignment is written as
// given; callers wanting the canonical form should pass literals sorted by
// variable id, as Solver.Assignment returns them.
func WriteSolution(w io.Writer, assignment []dpll.Lit) error {
	var sb strings.Builder
	for _, lit := range assignment {
		fmt.Fprintf(&sb, "%d ", lit)
	}
	sb.WriteString("0\n")
	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "could not write solution")
}
