package fileutils

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"calstate/alma-voucher/internal/dateutils"
)

// Alma export files are named <job id>-<epoch milliseconds>.xml.
var exportFilePattern = regexp.MustCompile(`[0-9]*-([0-9]+)\.xml$`)

// ExportFile is one Alma invoice export file with the timestamp encoded
// in its name.
type ExportFile struct {
	Path      string
	Filename  string
	Timestamp time.Time

	// Date is the export date in YYYY-MM-DD form, used for the {date}
	// placeholder in output file names and for date-filtered reruns.
	Date string
}

// NewExportFile parses an export file path. The second return value is
// false when the name does not match the Alma export naming scheme.
func NewExportFile(path string) (*ExportFile, bool) {
	matches := exportFilePattern.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	millis, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return nil, false
	}

	timestamp := time.UnixMilli(millis)

	return &ExportFile{
		Path:      path,
		Filename:  filepath.Base(path),
		Timestamp: timestamp,
		Date:      dateutils.FormatDate(timestamp, dateutils.DateLayoutISO),
	}, true
}
