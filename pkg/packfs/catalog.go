package packfs

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/smholvoet/Dump1090/pkg/types"
)

// catalog is the ordered set of files selected for embedding. Insertion
// order is traversal order; the encoder and the table emitter both iterate
// it in that order, so array indices line up with table rows.
type catalog struct {
	entries []*types.Entry

	pattern       string
	strip         string
	caseSensitive bool
	log           *logrus.Logger
}

func newCatalog(cfg types.Config, log *logrus.Logger) *catalog {
	pattern := cfg.Spec
	if !cfg.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return &catalog{
		pattern:       pattern,
		strip:         cfg.Strip,
		caseSensitive: cfg.CaseSensitive,
		log:           log,
	}
}

// add is the walker callback: it decides inclusion and computes the
// logical name.
func (c *catalog) add(path string, info fs.FileInfo) error {
	path = strings.ReplaceAll(path, "\\", "/")

	candidate := path
	if !c.caseSensitive {
		candidate = strings.ToLower(candidate)
	}
	ok, err := doublestar.Match(c.pattern, candidate)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", c.pattern, err)
	}
	if !ok {
		c.log.Infof("File '%s' does not match '%s'", path, c.pattern)
		return nil
	}

	name := path
	if c.strip != "" && strings.HasPrefix(path, c.strip) {
		name = path[len(c.strip):]
	}
	c.entries = append(c.entries, &types.Entry{
		Path:  path,
		Name:  name,
		Size:  info.Size(),
		MTime: info.ModTime(),
	})
	c.log.Debugf("Adding file '%s'", name)
	return nil
}
