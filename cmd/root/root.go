// Package root contains the root command for the application
package root

import (
	"os"
	"path/filepath"

	"calstate/alma-voucher/internal/common"
	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/delivery"
	"calstate/alma-voucher/internal/fileutils"
	"calstate/alma-voucher/internal/logging"
	"calstate/alma-voucher/internal/report"
	"calstate/alma-voucher/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	// Campus is a campus directory name under ConfigDir, or "all".
	Campus string

	// Date reruns archived export files from one day (YYYY-MM-DD).
	Date string

	// ConfigDir holds one subdirectory per campus, each with a config.yaml.
	ConfigDir string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "alma-voucher",
		Short: "Convert Alma invoice exports to PeopleSoft voucher files.",
		Long: `alma-voucher converts acquisitions invoice XML exported from the Alma
library services platform into PeopleSoft AP voucher CSV files, one
campus at a time, and delivers them to the campus financial system.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to alma-voucher!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Log = logging.Configure()

			delivery.SetLogger(Log)
			xmlutils.SetLogger(Log)
			common.SetLogger(Log)
			fileutils.SetLogger(Log)
			report.SetLogger(Log)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags are the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Campus, "campus", "c", "all", "Campus to process, or 'all'")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Date, "date", "d", "", "Rerun archived export files from this date (YYYY-MM-DD)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigDir, "config-dir", "campuses", "Directory holding one configuration subdirectory per campus")
}

// Campuses resolves the --campus flag to the list of campus
// configuration directories to process.
func Campuses() ([]string, error) {
	if SharedFlags.Campus != "all" {
		return []string{SharedFlags.Campus}, nil
	}
	return config.ListCampuses(SharedFlags.ConfigDir)
}

// LoadCampus loads one campus configuration from the config directory.
func LoadCampus(campus string) (*config.Campus, error) {
	return config.LoadCampus(filepath.Join(SharedFlags.ConfigDir, campus))
}
