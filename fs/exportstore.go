package fs

import (
	"os"
	"path/filepath"

	"github.com/mabho/pagecarve"
)

// ExportStore writes scrapes to a directory with atomic update semantics.
// Scrapes are saved to a temporary directory, then moved into place on
// Commit, so a partial export never replaces a previous one.
type ExportStore struct {
	baseDir string
	name    string
	conv    pagecarve.Converter
}

// NewExportStore creates a new ExportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string, conv pagecarve.Converter) *ExportStore {
	return &ExportStore{
		baseDir: baseDir,
		name:    name,
		conv:    conv,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one scrape into the pending export, under a directory
// derived from its page URL.
func (s *ExportStore) Save(scrape *pagecarve.Scrape) error {
	relDir, err := URLToDir(scrape.PageURL)
	if err != nil {
		return err
	}

	w := NewWriter(filepath.Join(s.tempDir(), relDir), s.conv)
	return w.WriteScrape(scrape)
}

// Commit atomically replaces the final directory with the pending export.
func (s *ExportStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the pending export.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
