package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"segbake/internal/sevenseg"
)

type segmentView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type patternView struct {
	Digit int      `json:"digit"`
	Lit   []string `json:"lit"`
}

type patternsDocument struct {
	Segments []segmentView `json:"segments"`
	Digits   []patternView `json:"digits"`
}

func newPatternsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "patterns",
		Short:       "Show the digit pattern table for segments A-G",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := sevenseg.AllSegments()

			if ctx.JSONMode() {
				var doc patternsDocument
				for _, seg := range segments {
					doc.Segments = append(doc.Segments, segmentView{Name: seg.String(), Label: seg.Label()})
				}
				for d := 0; d <= 9; d++ {
					pattern := sevenseg.PatternOf(sevenseg.Digit(d))
					view := patternView{Digit: d}
					for _, seg := range segments {
						if pattern.On(seg) {
							view.Lit = append(view.Lit, seg.String())
						}
					}
					doc.Digits = append(doc.Digits, view)
				}
				return writeJSON(cmd, doc)
			}

			headers := []string{"Digit"}
			aligns := []columnAlignment{alignRight}
			for _, seg := range segments {
				headers = append(headers, seg.String())
				aligns = append(aligns, alignCenter)
			}
			headers = append(headers, "Lit")
			aligns = append(aligns, alignRight)

			rows := make([][]string, 0, 10)
			for d := 0; d <= 9; d++ {
				pattern := sevenseg.PatternOf(sevenseg.Digit(d))
				row := []string{fmt.Sprintf("%d", d)}
				for _, seg := range segments {
					mark := "-"
					if pattern.On(seg) {
						mark = "X"
					}
					row = append(row, mark)
				}
				row = append(row, fmt.Sprintf("%d", pattern.LitCount()))
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, aligns))

			legend := make([]string, 0, len(segments))
			for _, seg := range segments {
				legend = append(legend, fmt.Sprintf("%s=%s", seg.String(), seg.Label()))
			}
			fmt.Fprintf(out, "Segments: %s\n", strings.Join(legend, ", "))
			return nil
		},
	}
}
