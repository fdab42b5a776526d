// Package verify regenerates archived voucher output and checks it
// against what was originally delivered.
package verify

import (
	"calstate/alma-voucher/cmd/root"
	"calstate/alma-voucher/internal/processor"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cmd represents the verify command
var Cmd = &cobra.Command{
	Use:   "verify",
	Short: "Reprocess archived export files and compare checksums",
	Long: `Reprocess the archived Alma export files for one campus (or all
campuses) into the campus tmp directory and compare the regenerated
output against the archived output files using md5 checksums.

Nothing is delivered and nothing outside the tmp directory is written.

Example:
  alma-voucher verify -c chico
  alma-voucher verify -c chico -d 2026-08-01`,
	Run: verifyFunc,
}

func verifyFunc(cmd *cobra.Command, args []string) {
	campuses, err := root.Campuses()
	if err != nil {
		root.Log.Fatalf("Failed to list campuses: %v", err)
	}

	mismatches := 0
	for _, campus := range campuses {
		results, err := verifyCampus(campus)
		if err != nil {
			root.Log.WithField("campus", campus).WithError(err).Error("Campus verification failed")
			mismatches++
			continue
		}

		for _, result := range results {
			entry := root.Log.WithFields(logrus.Fields{
				"campus":  campus,
				"file":    result.Filename,
				"test":    result.TestChecksum,
				"archive": result.ArchiveChecksum,
			})
			switch {
			case result.ArchiveChecksum == "":
				entry.Warn("No archived output file to compare against")
				mismatches++
			case result.Match:
				entry.Info("Checksums match")
			default:
				entry.Error("Checksums differ")
				mismatches++
			}
		}
	}

	if mismatches > 0 {
		root.Log.Fatalf("Verification found %d mismatches", mismatches)
	}
}

func verifyCampus(campus string) ([]processor.VerifyResult, error) {
	cfg, err := root.LoadCampus(campus)
	if err != nil {
		return nil, err
	}

	proc := processor.New(cfg, root.Log)
	if root.SharedFlags.Date != "" {
		proc.SetDate(root.SharedFlags.Date)
	}

	return proc.Verify()
}
