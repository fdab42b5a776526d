// Package processor orchestrates a campus run: discovering Alma export
// files, transforming them into voucher output, writing, delivering and
// archiving the results.
package processor

import (
	"fmt"
	"path/filepath"

	"calstate/alma-voucher/internal/almaparser"
	"calstate/alma-voucher/internal/common"
	"calstate/alma-voucher/internal/config"
	"calstate/alma-voucher/internal/delivery"
	"calstate/alma-voucher/internal/fileutils"
	"calstate/alma-voucher/internal/report"

	"github.com/sirupsen/logrus"
)

// Processor runs the conversion pipeline for one campus.
type Processor struct {
	cfg    *config.Campus
	parser *almaparser.Parser
	log    *logrus.Logger

	// date limits a rerun to archived export files from one day
	// (YYYY-MM-DD); empty processes the current export directory.
	date string
}

// New creates a processor for a campus configuration.
func New(cfg *config.Campus, logger *logrus.Logger) *Processor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Processor{
		cfg:    cfg,
		parser: almaparser.New(logger),
		log:    logger,
	}
}

// SetDate restricts processing to archived export files from one date.
func (p *Processor) SetDate(date string) {
	p.date = date
}

// ExportFiles lists the Alma export files to process. With a date set,
// or when allArchived is true, files come from the archive directory.
func (p *Processor) ExportFiles(allArchived bool) ([]*fileutils.ExportFile, error) {
	dir := p.cfg.AlmaExportFilepath
	if p.date != "" || allArchived {
		dir = filepath.Join(dir, "archive")
	}

	paths, err := fileutils.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	var exports []*fileutils.ExportFile
	for _, path := range paths {
		export, ok := fileutils.NewExportFile(path)
		if !ok {
			continue
		}
		if p.date != "" && export.Date != p.date {
			continue
		}
		exports = append(exports, export)
	}

	return exports, nil
}

// HasExportFiles reports whether there is anything to process.
func (p *Processor) HasExportFiles() bool {
	exports, err := p.ExportFiles(false)
	return err == nil && len(exports) > 0
}

// Transform converts export files into grouped voucher output. A
// document that fails to parse or validate is skipped entirely; the
// remaining documents still process.
func (p *Processor) Transform(exports []*fileutils.ExportFile) (*almaparser.Output, []report.Entry) {
	output := almaparser.NewOutput()
	var entries []report.Entry

	for _, export := range exports {
		valid, err := p.parser.ValidateFormat(export.Path)
		if err != nil || !valid {
			p.log.WithField("file", export.Filename).Warn("Skipping export file that is not a valid Alma export")
			continue
		}

		fileOutput, fileEntries, err := p.parser.ParseFile(export, p.cfg)
		if err != nil {
			p.log.WithField("file", export.Filename).WithError(err).Error("Skipping export file")
			continue
		}

		output.Merge(fileOutput)
		entries = append(entries, fileEntries...)
	}

	return output, entries
}

// WriteOutput appends the collected rows to their CSV files.
func (p *Processor) WriteOutput(output *almaparser.Output) error {
	for _, name := range output.Files() {
		if err := common.AppendRowsToCSV(output.Rows(name), name); err != nil {
			return fmt.Errorf("could not write to file: %w", err)
		}
	}
	return nil
}

// WriteSummary writes the run summary when a log directory is configured.
func (p *Processor) WriteSummary(entries []report.Entry) error {
	if p.cfg.ErrorLogFilepath == "" {
		return nil
	}
	path := filepath.Join(p.cfg.ErrorLogFilepath, "run-summary.csv")
	return report.Write(entries, path)
}

// OutputFiles lists the files currently in the output directory.
func (p *Processor) OutputFiles() ([]string, error) {
	return fileutils.ListFiles(p.cfg.OutputFilepath)
}

// Deliver sends output files to every configured destination.
func (p *Processor) Deliver() error {
	files, err := p.OutputFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	if p.cfg.SFTP.Server != "" {
		p.log.WithField("server", p.cfg.SFTP.Server).Info("Sending processed files to CFS via SFTP")
		sender := &delivery.SFTPSender{
			Server:     p.cfg.SFTP.Server,
			Username:   p.cfg.SFTP.Username,
			Password:   p.cfg.SFTP.Password,
			RemotePath: p.cfg.SFTP.Path,
		}
		if err := sender.Send(files); err != nil {
			return err
		}
	}

	if p.cfg.HTTP.URL != "" {
		p.log.WithField("url", p.cfg.HTTP.URL).Info("Posting processed files to CFS via HTTP")
		sender := &delivery.HTTPSender{
			URL:      p.cfg.HTTP.URL,
			Username: p.cfg.HTTP.Username,
			Password: p.cfg.HTTP.Password,
		}
		if err := sender.Send(files); err != nil {
			return err
		}
	}

	if p.cfg.SMTP.Server != "" {
		p.log.WithField("recipients", p.cfg.SMTP.To).Info("Emailing processed files")
		sender := &delivery.EmailSender{
			Server: p.cfg.SMTP.Server,
			From:   p.cfg.SMTP.From,
			To:     p.cfg.SMTP.To,
		}
		if err := sender.Send(files); err != nil {
			return err
		}
	}

	return nil
}

// Archive moves output and export files into their archive directories.
func (p *Processor) Archive() error {
	if err := fileutils.ArchiveFiles(p.cfg.OutputFilepath); err != nil {
		return err
	}

	exportDir := p.cfg.AlmaExportFilepath
	if p.date != "" {
		// Rerun from archive; export files are already archived.
		return nil
	}
	return fileutils.ArchiveFiles(exportDir)
}

// Run executes the full pipeline. In debug mode output stays local:
// nothing is delivered or archived.
func (p *Processor) Run(debug bool) error {
	debug = debug || p.cfg.Debug

	exports, err := p.ExportFiles(false)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		p.log.WithField("campus", p.cfg.Campus).Info("No Alma export files to process")
		return nil
	}

	p.log.WithFields(logrus.Fields{
		"campus": p.cfg.Campus,
		"count":  len(exports),
	}).Info("Converting Alma export files")

	output, entries := p.Transform(exports)

	if err := p.WriteOutput(output); err != nil {
		return err
	}
	if err := p.WriteSummary(entries); err != nil {
		p.log.WithError(err).Warn("Failed to write run summary")
	}

	if debug {
		p.log.Info("Debugging - skipping delivery and archiving")
		return nil
	}

	if err := p.Deliver(); err != nil {
		return err
	}

	return p.Archive()
}
