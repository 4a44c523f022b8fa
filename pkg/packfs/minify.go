package packfs

import (
	"path"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// transform rewrites file content before it is encoded.
type transform func(data []byte) ([]byte, error)

// transforms maps a file extension to the minifier for that type.
// Extensions without an entry are embedded as-is.
type transforms map[string]transform

// newTransforms builds the extension table once at startup.
func newTransforms() transforms {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)

	forType := func(mediatype string) transform {
		return func(data []byte) ([]byte, error) {
			return m.Bytes(mediatype, data)
		}
	}
	return transforms{
		".css":  forType("text/css"),
		".html": forType("text/html"),
		".js":   forType("application/javascript"),
	}
}

// lookup resolves the transform for a file path by extension. The boolean
// reports whether a type-specific minifier exists; callers fall back to
// pass-through encoding when it does not.
func (t transforms) lookup(file string) (transform, bool) {
	fn, ok := t[path.Ext(file)]
	return fn, ok
}

// alreadyMinified reports whether the file name carries a minified marker
// for its type. Such files are embedded as-is even when minification is
// requested.
func alreadyMinified(name string) bool {
	return strings.HasSuffix(name, ".min.css") || strings.HasSuffix(name, ".min.js")
}

// MinifySupported reports whether type-specific minifiers are available in
// this build. Requesting --minify without them is a configuration error.
func MinifySupported() bool {
	return len(newTransforms()) > 0
}
