package processor

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// writeFile stores data at path through a temporary file in the same directory.
// An existing file at path is replaced only once the data is complete.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	cleanup := func() {
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Error().Err(rmErr).Str("path", tmp).Msg("Failed to remove temporary file")
		}
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		cleanup()
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
