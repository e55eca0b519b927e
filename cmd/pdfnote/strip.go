package main

import (
	"encoding/base64"
	"os"

	"github.com/spf13/cobra"
)

func newStripCmd(c *cli) *cobra.Command {
	var (
		output  string
		encoded bool
	)

	cmd := &cobra.Command{
		Use:   "strip <file.pdf>",
		Short: "Write a copy of a PDF without annotations for preview rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.engine.StripAnnotations(args[0])
			if err != nil {
				return err
			}
			if encoded {
				data = []byte(base64.StdEncoding.EncodeToString(data))
			}
			if output == "" {
				_, err = c.stdout.Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&encoded, "base64", false, "Base64-encode the output")
	return cmd
}
