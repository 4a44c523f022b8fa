package packfs

import (
	"io/fs"
	"os"
	"strings"
)

// walkFunc receives every regular file found below the walk root.
type walkFunc func(path string, info fs.FileInfo) error

// walkTree descends the directory rooted at top, calling fn for each
// regular file. Entries are visited in lexicographic order; a directory is
// entered at its position in that order, but only when recursive is set.
// Symlinks and other special entries are skipped.
//
// Paths handed to fn are top + "/" + name, not cleaned: a "./" in the walk
// root stays in the reported path so it can be matched and stripped.
func walkTree(top string, recursive bool, fn walkFunc) error {
	entries, err := os.ReadDir(top)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := joinSlash(top, entry.Name())
		switch {
		case entry.IsDir():
			if recursive {
				if err := walkTree(path, recursive, fn); err != nil {
					return err
				}
			}
		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := fn(path, info); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinSlash(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
