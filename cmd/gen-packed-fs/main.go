// gen-packed-fs generates a C source file with a built-in "Packed
// FileSystem": every file matching a glob pattern is embedded as a byte
// array, with a lookup table mapping logical names to content, size and
// modification time.
//
// Usage:
//
//	gen-packed-fs [options] -o packed_web.c 'web_root/**'
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/smholvoet/Dump1090/pkg/cli"
	"github.com/smholvoet/Dump1090/pkg/packfs"
)

func main() {
	if err := run(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg, err := cli.Parse(args[0], args[1:])
	if err != nil {
		var verr *cli.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%v. Use '%s -h' for usage", err, args[0])
		}
		return err
	}

	_, err = packfs.Generate(*cfg)
	return err
}
