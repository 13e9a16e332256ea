package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Stats struct {
	Directory string
	Engine    string
	Files     int64
	SizeMB    float64
}

// Stats walks the audio directory and counts narration files
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{
		Directory: c.config.AudioDir,
		Engine:    c.engine.Name(),
	}

	var totalSize int64
	err := filepath.WalkDir(c.config.AudioDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == c.config.AudioDir {
				return filepath.SkipDir
			}
			return nil // Continue walking despite errors
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), c.config.Prefix+"_") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.Files++
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return stats, err
	}

	stats.SizeMB = float64(totalSize) / (1024 * 1024)
	return stats, nil
}
