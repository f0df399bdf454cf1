package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/sat/dimacs"
	"github.com/satlab/sat/dpll"
	"github.com/satlab/sat/sudoku"
)

func newEncodeCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "encode puzzles.txt outdir",
		Short: "Encode sudoku puzzles as DIMACS CNF files",
		Long: `encode reads one puzzle per line (row-major cells, '.' for an empty
cell) and writes one CNF file per puzzle into outdir.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args[0], args[1], size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 9, "board size (4, 9 or 16)")
	return cmd
}

func runEncode(path, outDir string, size int) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "could not open %q", path)
	}
	defer file.Close()
	puzzles, err := sudoku.ReadPuzzles(file)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "could not create output dir")
	}
	for i, puzzle := range puzzles {
		f, err := sudoku.Encode(puzzle, size)
		if err != nil {
			return errors.Wrapf(err, "puzzle %d", i+1)
		}
		out := filepath.Join(outDir, fmt.Sprintf("puzzle_%d.cnf", i+1))
		if err := writeCNFFile(out, f); err != nil {
			return err
		}
		log.WithFields(log.Fields{"puzzle": i + 1, "clauses": len(f)}).Debug("encoded")
	}
	log.WithFields(log.Fields{"puzzles": len(puzzles), "dir": outDir}).Info("encoding done")
	return nil
}

func writeCNFFile(path string, f dpll.Formula) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %q", path)
	}
	defer out.Close()
	return dimacs.WriteCNF(out, f)
}
