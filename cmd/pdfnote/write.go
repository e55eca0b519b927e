package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/novvoo/pdfnote/pkg/annot"
)

func newWriteCmd(c *cli) *cobra.Command {
	var (
		from       string
		withReport bool
	)

	cmd := &cobra.Command{
		Use:   "write <file.pdf>",
		Short: "Replace all free-text notes of a PDF with records read as JSON",
		Long: `Reads a JSON array of records and rewrites the annotation list of
every page. Pages without records lose their annotations, so writing
an empty array clears the document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.readRecords(from)
			if err != nil {
				return err
			}
			report, err := c.engine.Write(args[0], records)
			if err != nil {
				return err
			}
			if withReport {
				return c.printJSON(report)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "-", "JSON records file, - for stdin")
	cmd.Flags().BoolVar(&withReport, "report", false, "Print a report of written and skipped records")
	return cmd
}

func (c *cli) readRecords(from string) ([]annot.Record, error) {
	var r io.Reader = c.stdin
	if from != "-" {
		f, err := os.Open(from)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var records []annot.Record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode records: %v", annot.ErrInvalidRecord, err)
	}
	return records, nil
}
