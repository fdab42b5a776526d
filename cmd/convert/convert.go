// Package convert handles the conversion of Alma export files into
// PeopleSoft voucher files.
package convert

import (
	"calstate/alma-voucher/cmd/root"
	"calstate/alma-voucher/internal/processor"

	"github.com/spf13/cobra"
)

var debug bool

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert Alma export files to PeopleSoft voucher files",
	Long: `Convert the pending Alma invoice export files for one campus (or all
campuses) into PeopleSoft voucher CSV files, deliver them to the
campus financial system, and archive the inputs and outputs.

With --date, archived export files from that day are reprocessed
instead of the pending ones.

Example:
  alma-voucher convert -c chico
  alma-voucher convert -c all
  alma-voucher convert -c chico -d 2026-08-01`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().BoolVar(&debug, "debug", false, "Write output locally without delivering or archiving")
}

func convertFunc(cmd *cobra.Command, args []string) {
	campuses, err := root.Campuses()
	if err != nil {
		root.Log.Fatalf("Failed to list campuses: %v", err)
	}

	failed := 0
	for _, campus := range campuses {
		if err := convertCampus(campus); err != nil {
			root.Log.WithField("campus", campus).WithError(err).Error("Campus run failed")
			failed++
		}
	}

	if failed > 0 {
		root.Log.Fatalf("%d of %d campus runs failed", failed, len(campuses))
	}
}

func convertCampus(campus string) error {
	cfg, err := root.LoadCampus(campus)
	if err != nil {
		return err
	}
	cfg.Dump(root.Log)

	proc := processor.New(cfg, root.Log)
	if root.SharedFlags.Date != "" {
		proc.SetDate(root.SharedFlags.Date)
	}

	return proc.Run(debug)
}
