package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/trace"
)

var algorithmNotes = map[trace.Algorithm]string{
	trace.Bubble: `# Bubble sort

Walks the array in passes. Pass *i* compares every adjacent pair up to
index *n - i - 2* and swaps the pair when the left value is larger, so the
largest remaining value settles at the end of each pass.

## Recorded steps

| Step | Highlight | Array |
|---|---|---|
| compare | yellow pair *(j, j+1)* | unchanged |
| swap | red pair *(j, j+1)* | before the swap |
| settle | none | after the swap |

A trace of *n* values has between *n(n-1)/2* and *3n(n-1)/2* steps.
`,
	trace.Quick: `# Quick sort

Lomuto partition with the last element of the range as pivot. Every element
is compared with the pivot; values not larger than it are swapped into the
growing left block. The pivot is then swapped into place and the left and
right ranges are sorted in turn.

## Recorded steps

| Step | Highlight | Array |
|---|---|---|
| compare | yellow pair *(j, pivot)* | unchanged |
| swap | red pair *(i, j)* | before the swap |
| settle | none | after the swap |

A swap of an element with itself is still recorded, so sorted input shows
a red highlight on a single bar.
`,
}

// renderMarkdown renders md for the terminal.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func explainAlgorithm(cmd *cobra.Command, args []string) error {
	algs := trace.Algorithms()
	if len(args) == 1 {
		alg, err := trace.Parse(args[0])
		if err != nil {
			return err
		}
		algs = []trace.Algorithm{alg}
	}
	for _, alg := range algs {
		out, err := renderMarkdown(algorithmNotes[alg])
		if err != nil {
			return fmt.Errorf("render %s notes: %w", alg, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	}
	return nil
}
