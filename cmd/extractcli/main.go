// Command extractcli is the reference command-line front-end for the
// extraction pipeline: given up to three passwords and an ordered list of carrier
// paths, it recovers the hidden data file (or, failing that, the decoy
// file) and writes it to stdout or a named path.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/halfwave/puffextract/internal/bitselection"
	"github.com/halfwave/puffextract/internal/extract"
	"github.com/halfwave/puffextract/internal/passwords"
	"github.com/halfwave/puffextract/internal/sink"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("extractcli", pflag.ContinueOnError)

	passwordA := flags.StringP("password", "p", "", "Password A (required)")
	passwordB := flags.String("password-b", "", "Password B (requires --password)")
	passwordC := flags.String("password-c", "", "Password C (requires --password-b)")
	output := flags.StringP("output", "o", "-", "Output path, or - for stdout")
	compat := flags.StringP("compatibility", "c", "v4.01", "OpenPuff version compatibility (v4.00 or v4.01); accepted for CLI compatibility, has no effect on decryption")
	bitLevel := flags.String("bit-selection", "medium", "Bit density used by the carriers: minimum, very-low, low, medium, high, very-high, maximum")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	carriers := flags.Args()
	s := sink.Default()

	if *passwordA == "" {
		s.Errorf("--password is required")
		return 1
	}
	if compat != nil && *compat != "v4.00" && *compat != "v4.01" {
		s.Errorf("--compatibility must be v4.00 or v4.01")
		return 1
	}
	if len(carriers) == 0 {
		s.Errorf("at least one carrier path is required")
		return 1
	}

	var pwB, pwC *string
	if flags.Changed("password-b") {
		pwB = passwordB
	}
	if flags.Changed("password-c") {
		pwC = passwordC
	}
	if pwC != nil && pwB == nil {
		s.Errorf("--password-c requires --password-b")
		return 1
	}

	level, err := bitselection.Parse(*bitLevel)
	if err != nil {
		s.Errorf("%v", err)
		return 1
	}

	pw, err := passwords.FromFields(*passwordA, pwB, pwC, s)
	if err != nil {
		s.Errorf("%v", err)
		return 1
	}
	defer pw.Zero()

	result, err := extract.Run(context.Background(), carriers, level, pw, s)
	if err != nil {
		s.Errorf("%v", err)
		return 1
	}

	which := "data"
	if result.FromDecoy {
		which = "decoy"
	}
	s.Infof("successfully extracted %s file: %q", which, result.Filename)

	if err := writeOutput(*output, result.Content); err != nil {
		s.Errorf("writing output: %v", err)
		return 1
	}

	return 0
}

func writeOutput(destination string, content []byte) error {
	if destination == "-" {
		_, err := os.Stdout.Write(content)
		return err
	}
	return os.WriteFile(destination, content, 0o644)
}
