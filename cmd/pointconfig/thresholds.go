package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pointconfig/domain/geometry"
	"pointconfig/internal/scoring"
)

func newThresholdsCmd() *cobra.Command {
	var prime int
	var format string

	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Print the stage thresholds for a prime",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := geometry.CheckPrimeDim(prime, scoring.Dimension); err != nil {
				return err
			}
			thresholds := scoring.Thresholds(prime)

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				for _, t := range thresholds {
					fmt.Fprintf(out, "%8d  %s\n", t.Score, t.Label)
				}
				return nil
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(map[string]interface{}{
					"prime":      prime,
					"thresholds": thresholds,
				})
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}

	cmd.Flags().IntVar(&prime, "prime", 11, "Prime p")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")
	return cmd
}
