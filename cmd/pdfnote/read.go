package main

import (
	"github.com/spf13/cobra"
)

func newReadCmd(c *cli) *cobra.Command {
	var withReport bool

	cmd := &cobra.Command{
		Use:   "read <file.pdf>",
		Short: "Print the free-text notes of a PDF as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.engine.Read(args[0])
			if err != nil {
				return err
			}
			if withReport {
				return c.printJSON(report)
			}
			return c.printJSON(report.Records)
		},
	}

	cmd.Flags().BoolVar(&withReport, "report", false, "Include skipped annotations in the output")
	return cmd
}
