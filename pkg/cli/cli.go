// Package cli resolves command-line arguments and an optional YAML
// defaults file into a validated types.Config.
package cli

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"

	"github.com/smholvoet/Dump1090/pkg/packfs"
	"github.com/smholvoet/Dump1090/pkg/types"
)

// ValidationError reports a missing or invalid option. The CLI prints it
// with a pointer to --help and exits non-zero.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Parse resolves args into a validated configuration. It returns
// pflag.ErrHelp after printing usage when help was requested. Values from
// a --config file fill in any flag not given on the command line.
func Parse(name string, args []string) (*types.Config, error) {
	var (
		cfg        types.Config
		configPath string
	)

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringVarP(&cfg.OutFile, "outfile", "o", "", "file to generate")
	fs.BoolVarP(&cfg.Minify, "minify", "m", false, "compress the .js/.css/.html files first")
	fs.BoolVar(&cfg.NoComments, "no-comments", false, "suppress the annotations next to the byte values")
	fs.BoolVarP(&cfg.Recursive, "recursive", "r", false, "walk the sub-directories recursively")
	fs.StringVarP(&cfg.Strip, "strip", "s", "", "strip this prefix from the stored names")
	fs.BoolVarP(&cfg.CaseSensitive, "case", "c", false, "be case-sensitive")
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "increase verbose-mode; '-vv' sets level 2")
	fs.StringVar(&configPath, "config", "", "YAML file with option defaults")
	fs.Usage = func() { printUsage(name, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	spec := ""
	if fs.NArg() > 0 {
		spec = fs.Arg(0)
	}

	if configPath != "" {
		fileCfg, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		mergeDefaults(&cfg, fileCfg, fs)
		if spec == "" {
			spec = fileCfg.Spec
		}
	}

	if cfg.OutFile == "" {
		return nil, invalid("missing '--outfile'")
	}
	if spec == "" {
		return nil, invalid("missing '<file-spec>'")
	}
	if cfg.Minify && !packfs.MinifySupported() {
		return nil, invalid("option '--minify' not available")
	}

	switch cfg.Verbose {
	case 0:
		logrus.SetLevel(logrus.WarnLevel)
	case 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.DebugLevel)
	}

	spec = strings.ReplaceAll(spec, "\\", "/")
	if strings.HasSuffix(spec, "/") {
		spec += "*"
	}
	if !strings.Contains(spec, "/") {
		spec = "./" + spec
	}
	cfg.Spec = spec

	dir := path.Dir(spec)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, invalid("directory '%s' not found", dir)
	}
	logrus.Infof("spec: '%s'", cfg.Spec)

	return &cfg, nil
}

func loadConfigFile(file string) (*types.Config, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, invalid("config file '%s' not readable", file)
	}
	var cfg types.Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing '%s': %w", file, err)
	}
	return &cfg, nil
}

// mergeDefaults copies file values into cfg for every flag the user did
// not set explicitly. Command-line flags always win.
func mergeDefaults(cfg *types.Config, file *types.Config, fs *pflag.FlagSet) {
	if !fs.Changed("outfile") && file.OutFile != "" {
		cfg.OutFile = file.OutFile
	}
	if !fs.Changed("minify") {
		cfg.Minify = file.Minify
	}
	if !fs.Changed("no-comments") {
		cfg.NoComments = file.NoComments
	}
	if !fs.Changed("recursive") {
		cfg.Recursive = file.Recursive
	}
	if !fs.Changed("strip") && file.Strip != "" {
		cfg.Strip = file.Strip
	}
	if !fs.Changed("case") {
		cfg.CaseSensitive = file.CaseSensitive
	}
	if !fs.Changed("verbose") {
		cfg.Verbose = file.Verbose
	}
}

func printUsage(name string, fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stdout, `Generate a .c-file with a built-in "Packed FileSystem".

Usage: %s [options] <file-spec>
%s
<file-spec> selects the files to include in '--outfile'; its directory
part is the walk root. A spec ending in '/' means everything below it.
`, name, fs.FlagUsages())
}
