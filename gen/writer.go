package gen

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// WriteOutputFile streams f into outputDir, creating the directory first.
// It returns the path written. On failure the run is expected to abort; a
// partially written file is left in place.
func WriteOutputFile(outputDir string, f *OutputFile) (string, error) {
	outPath := filepath.Join(outputDir, f.Path)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", errors.Wrapf(err, "creating directory for %s", outPath)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", outPath)
	}

	w := bufio.NewWriter(file)
	if _, err := w.Write(f.Content); err != nil {
		file.Close()
		return "", errors.Wrapf(err, "writing %s", outPath)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return "", errors.Wrapf(err, "flushing %s", outPath)
	}
	if err := file.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", outPath)
	}
	return outPath, nil
}
