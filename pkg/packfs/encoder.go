package packfs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smholvoet/Dump1090/pkg/types"
)

// bytesPerLine is the number of array elements emitted per output line.
const bytesPerLine = 16

// encoder renders catalogued files as C byte-array literals. Each array is
// terminated by a single zero-valued sentinel element; the lookup table
// reports content size as array length minus one.
type encoder struct {
	w          io.Writer
	transforms transforms
	minify     bool
	comments   bool
}

// encode writes the array literal for entry number idx and returns the
// original and encoded lengths. The decision is ordered: minification off
// or an already-minified marker in the name means pass-through; an
// extension with a registered transform means minified encoding; anything
// else is pass-through.
func (e *encoder) encode(entry *types.Entry, idx int) (lenIn, lenOut int64, err error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return 0, 0, fmt.Errorf("reading '%s': %w", entry.Path, err)
	}
	lenIn = int64(len(data))

	if e.minify && !alreadyMinified(entry.Path) {
		if fn, ok := e.transforms.lookup(entry.Path); ok {
			minified, err := fn(data)
			if err != nil {
				return 0, 0, fmt.Errorf("minifying '%s': %w", entry.Path, err)
			}
			lenOut = int64(len(minified))
			entry.Stored = lenOut

			saving := int64(0)
			if lenIn > 0 {
				saving = 100 - 100*lenOut/lenIn
			}
			fmt.Fprintf(e.w, "//\n// Minified version generated from '%s' (%d%% saving) \n//\n", entry.Path, saving)
			fmt.Fprintf(e.w, "static const unsigned char file%d[] = {\n", idx)
			return lenIn, lenOut, e.dump(minified, e.comments)
		}
	}

	entry.Stored = lenIn
	fmt.Fprintf(e.w, "//\n// Generated from '%s'\n//\n", entry.Path)
	fmt.Fprintf(e.w, "static const unsigned char file%d[] = {\n", idx)
	return lenIn, lenIn, e.dump(data, false)
}

// dump emits the byte values, bytesPerLine per line, then the sentinel and
// the closing brace. With comments enabled every full line is annotated
// with the printable rendering of its bytes; the annotation is cosmetic
// and never changes the parsed content.
func (e *encoder) dump(data []byte, comments bool) error {
	var comment strings.Builder
	for n, b := range data {
		fmt.Fprintf(e.w, " 0x%02X,", b)
		if comments && b >= 0x20 && b < 0x7F {
			comment.WriteByte(b)
		}
		if (n+1)%bytesPerLine == 0 {
			if comments {
				fmt.Fprintf(e.w, " // %s\n", comment.String())
				comment.Reset()
			} else {
				fmt.Fprintln(e.w)
			}
		}
	}
	_, err := fmt.Fprint(e.w, " 0x00\n};\n\n")
	return err
}
