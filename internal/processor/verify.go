package processor

import (
	"crypto/md5" // #nosec G501
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"calstate/alma-voucher/internal/fileutils"
	"calstate/alma-voucher/internal/parsererror"
)

const verifyPrefix = "test-"

// VerifyResult compares one regenerated output file against the
// archived file produced by the original run.
type VerifyResult struct {
	Filename        string
	TestChecksum    string
	ArchiveChecksum string
	Match           bool
}

// Verify reprocesses the archived export files into the campus tmp
// directory and compares the regenerated output against the archived
// output, using md5 checksums. The live output and export directories
// are left untouched.
func (p *Processor) Verify() ([]VerifyResult, error) {
	tmpDir := p.cfg.TmpFilepath
	if !fileutils.DirectoryExists(tmpDir) {
		return nil, &parsererror.ValidationError{
			FilePath: tmpDir,
			Reason:   "tmp directory does not exist",
		}
	}
	if err := fileutils.DeleteFiles(tmpDir); err != nil {
		return nil, err
	}

	exports, err := p.ExportFiles(true)
	if err != nil {
		return nil, err
	}
	if len(exports) == 0 {
		p.log.WithField("campus", p.cfg.Campus).Info("No archived Alma export files to verify")
		return nil, nil
	}

	// Redirect output into the tmp directory on a copy of the campus
	// configuration so the live run settings stay untouched.
	testCfg := *p.cfg
	testCfg.OutputFilepath = tmpDir
	testCfg.FileName = verifyPrefix + testCfg.FileName

	testProc := New(&testCfg, p.log)
	testProc.date = p.date

	output, _ := testProc.Transform(exports)
	if err := testProc.WriteOutput(output); err != nil {
		return nil, err
	}

	return p.compareAgainstArchive(tmpDir)
}

func (p *Processor) compareAgainstArchive(tmpDir string) ([]VerifyResult, error) {
	testFiles, err := fileutils.ListFiles(tmpDir)
	if err != nil {
		return nil, err
	}

	archiveDir := filepath.Join(p.cfg.OutputFilepath, "archive")

	var results []VerifyResult
	for _, testFile := range testFiles {
		name := strings.TrimPrefix(filepath.Base(testFile), verifyPrefix)

		result := VerifyResult{Filename: name}
		result.TestChecksum, err = checksum(testFile)
		if err != nil {
			return nil, err
		}

		archived := filepath.Join(archiveDir, name)
		if fileutils.FileExists(archived) {
			result.ArchiveChecksum, err = checksum(archived)
			if err != nil {
				return nil, err
			}
			result.Match = result.ArchiveChecksum == result.TestChecksum
		}

		results = append(results, result)
	}

	return results, nil
}

func checksum(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to open file for checksum: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	h := md5.New() // #nosec G401
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to checksum file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
