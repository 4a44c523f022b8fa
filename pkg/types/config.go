package types

// Config is the resolved invocation configuration. It is built once by the
// option resolver and read-only for the rest of the run.
//
// The yaml tags mirror the command-line flag names so a --config file can
// supply a default for every option.
type Config struct {
	// OutFile is the path of the generated C file. Overwritten if it exists.
	OutFile string `yaml:"outfile"`

	// Spec is the normalized glob pattern selecting the files to embed.
	// Its directory component is the walk root.
	Spec string `yaml:"spec"`

	// Recursive walks the sub-directories below the spec's directory.
	Recursive bool `yaml:"recursive"`

	// Minify runs .css/.js/.html content through a type-specific minifier
	// before encoding.
	Minify bool `yaml:"minify"`

	// Strip is removed from the start of each stored logical name when it
	// is a literal prefix of the matched path.
	Strip string `yaml:"strip"`

	// NoComments suppresses the printable-character annotations next to
	// the emitted byte values.
	NoComments bool `yaml:"no-comments"`

	// CaseSensitive matches the glob pattern without folding case.
	CaseSensitive bool `yaml:"case"`

	// Verbose raises diagnostic verbosity: 1 logs per-file progress, 2
	// additionally logs every catalogued file.
	Verbose int `yaml:"verbose"`
}
