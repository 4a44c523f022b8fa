// Package packfs turns a directory tree of static assets into a single C
// source file: one byte array per matched file plus a packed_files[] table
// mapping logical names to content, size and modification time. The
// generated file is compiled into the consuming program, which serves the
// assets through mg_unpack() instead of reading them from disk.
package packfs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/smholvoet/Dump1090/pkg/types"
)

// Option configures a generation run.
type Option func(*genConfig)

type genConfig struct {
	timestamp time.Time
	log       *logrus.Logger
}

// WithTimestamp sets the generation timestamp written into the output
// header. If unset it defaults to time.Now(), which breaks byte-for-byte
// determinism across runs.
func WithTimestamp(t time.Time) Option {
	return func(c *genConfig) {
		c.timestamp = t
	}
}

// WithLogger routes diagnostics to the given logger instead of the
// logrus standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *genConfig) {
		c.log = l
	}
}

// specDir returns the directory component of the spec without cleaning it:
// a "./" or trailing context in the spec must survive into the walked paths
// so they match the pattern and the strip-prefix verbatim.
func specDir(spec string) string {
	i := strings.LastIndexByte(spec, '/')
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	default:
		return spec[:i]
	}
}

// Generate runs the pipeline: walk the spec's directory, catalog the files
// matching the pattern, then write the header, one array per file and the
// lookup table to cfg.OutFile. Any error is terminal; a partially written
// output file is not valid.
func Generate(cfg types.Config, opts ...Option) (*types.Result, error) {
	gc := &genConfig{
		timestamp: time.Now(),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(gc)
	}
	log := gc.log

	cat := newCatalog(cfg, log)
	if err := walkTree(specDir(cfg.Spec), cfg.Recursive, cat.add); err != nil {
		return nil, err
	}
	if len(cat.entries) == 0 {
		return nil, fmt.Errorf("no files matching '%s'", cfg.Spec)
	}

	out, err := os.Create(cfg.OutFile)
	if err != nil {
		return nil, fmt.Errorf("creating '%s': %w", cfg.OutFile, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	if err := writeHeader(w, gc.timestamp); err != nil {
		return nil, err
	}

	enc := &encoder{
		w:          w,
		transforms: newTransforms(),
		minify:     cfg.Minify,
		comments:   !cfg.NoComments,
	}
	res := &types.Result{
		OutFile:   cfg.OutFile,
		FileCount: len(cat.entries),
	}
	for i, entry := range cat.entries {
		size := fmtNumber(entry.Size)
		switch {
		case alreadyMinified(entry.Path):
			res.AlreadyMinified++
			log.Infof("%10s: Generating C-array for '%s' (already minified)", size, entry.Path)
		case !cfg.Minify:
			log.Infof("%10s: Generating C-array for '%s'", size, entry.Path)
		default:
			if _, ok := enc.transforms.lookup(entry.Path); ok {
				log.Infof("%10s: Generating minified C-array for '%s'", size, entry.Path)
			} else {
				log.Infof("%10s: Generating C-array for '%s'", size, entry.Path)
			}
		}

		lenIn, lenOut, err := enc.encode(entry, i)
		if err != nil {
			return nil, err
		}
		res.BytesIn += lenIn
		res.BytesOut += lenOut
	}

	if err := writeTable(w, cat.entries); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("writing '%s': %w", cfg.OutFile, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("writing '%s': %w", cfg.OutFile, err)
	}

	log.Infof("Total %s bytes data to '%s'", fmtNumber(res.BytesOut), cfg.OutFile)
	if cfg.Minify {
		if res.BytesIn > 0 {
			log.Infof("The '--minify' option gave %d%% total savings.", 100-100*res.BytesOut/res.BytesIn)
		}
	} else {
		log.Infof("Found %d files already minified.", res.AlreadyMinified)
	}
	return res, nil
}
