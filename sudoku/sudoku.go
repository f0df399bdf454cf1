// Package sudoku encodes sudoku puzzles as CNF formulas and decodes
// satisfying assignments back into solved boards.
//
// A puzzle is a single string of size*size cells in row-major order, one
// character per cell: "123456789ABCDEFG" for the values (prefix depending
// on board size) and '.' for an empty cell. 4x4, 9x9 and 16x16 boards are
// supported. The encoding uses one variable per (row, column, value)
// triple: cells hold exactly one value and a value appears at most once
// per row, column and box.
package sudoku

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/satlab/sat/dpll"
)

const valueChars = "123456789ABCDEFG"

// Empty is the character marking an unconstrained cell.
const Empty = '.'

func checkSize(size int) (box int, err error) {
	switch size {
	case 4:
		return 2, nil
	case 9:
		return 3, nil
	case 16:
		return 4, nil
	default:
		return 0, errors.Errorf("unsupported board size %d, expected 4, 9 or 16", size)
	}
}

// lit returns the positive literal stating that value n appears at
// position (row, col). Arguments are 0-based, the literal is 1-based.
func lit(size, row, col, n int) dpll.Lit {
	return dpll.Lit(row*size*size + col*size + n + 1)
}

// Encode converts a puzzle into a CNF formula over size^3 variables.
// The formula is satisfiable iff the puzzle has a solution.
func Encode(puzzle string, size int) (dpll.Formula, error) {
	box, err := checkSize(size)
	if err != nil {
		return nil, err
	}
	if len(puzzle) != size*size {
		return nil, errors.Errorf("puzzle has %d cells, expected %d", len(puzzle), size*size)
	}

	var f dpll.Formula

	// Every cell holds at least one value, and no two values at once.
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			atLeast := make(dpll.Clause, size)
			for n := 0; n < size; n++ {
				atLeast[n] = lit(size, row, col, n)
			}
			f = append(f, atLeast)
			for a := 0; a < size; a++ {
				for b := a + 1; b < size; b++ {
					f = append(f, dpll.Clause{
						lit(size, row, col, a).Negation(),
						lit(size, row, col, b).Negation(),
					})
				}
			}
		}
	}

	// A value appears at most once per row and per column.
	for n := 0; n < size; n++ {
		for i := 0; i < size; i++ {
			for a := 0; a < size; a++ {
				for b := a + 1; b < size; b++ {
					f = append(f, dpll.Clause{
						lit(size, i, a, n).Negation(),
						lit(size, i, b, n).Negation(),
					})
					f = append(f, dpll.Clause{
						lit(size, a, i, n).Negation(),
						lit(size, b, i, n).Negation(),
					})
				}
			}
		}
	}

	// A value appears at most once per box.
	for n := 0; n < size; n++ {
		for boxRow := 0; boxRow < size; boxRow += box {
			for boxCol := 0; boxCol < size; boxCol += box {
				cells := make([]dpll.Lit, 0, size)
				for r := boxRow; r < boxRow+box; r++ {
					for c := boxCol; c < boxCol+box; c++ {
						cells = append(cells, lit(size, r, c, n))
					}
				}
				for a := 0; a < len(cells); a++ {
					for b := a + 1; b < len(cells); b++ {
						f = append(f, dpll.Clause{cells[a].Negation(), cells[b].Negation()})
					}
				}
			}
		}
	}

	// Givens become unit clauses.
	for i, ch := range puzzle {
		if ch == Empty {
			continue
		}
		n := strings.IndexRune(valueChars[:size], ch)
		if n < 0 {
			return nil, errors.Errorf("invalid cell %q at index %d", ch, i)
		}
		f = append(f, dpll.Clause{lit(size, i/size, i%size, n)})
	}
	return f, nil
}

// Decode maps a satisfying assignment of an encoded puzzle back to the
// solved board string. It fails if the assignment leaves a cell without a
// value, which cannot happen for assignments produced by solving the
// encoding of the same puzzle.
func Decode(assignment []dpll.Lit, size int) (string, error) {
	if _, err := checkSize(size); err != nil {
		return "", err
	}
	board := make([]byte, size*size)
	for _, l := range assignment {
		if !l.IsPositive() || l.Var() > size*size*size {
			continue
		}
		v := l.Var() - 1
		cell := v / size
		if board[cell] != 0 {
			return "", errors.Errorf("cell %d assigned twice", cell)
		}
		board[cell] = valueChars[v%size]
	}
	for i, b := range board {
		if b == 0 {
			return "", errors.Errorf("cell %d has no value", i)
		}
	}
	return string(board), nil
}

// ReadPuzzles reads one puzzle per non-empty line from r.
func ReadPuzzles(r io.Reader) ([]string, error) {
	var puzzles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			puzzles = append(puzzles, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read puzzles")
	}
	return puzzles, nil
}

// NumVars returns the number of variables the encoding of a board of the
// given size uses.
func NumVars(size int) int {
	return size * size * size
}
