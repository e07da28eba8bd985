package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"itercommit/internal/codec"
)

const (
	flagInput   = "input"
	flagPublic  = "public"
	flagPrivate = "private"
)

// inputFlags selects either one concatenated input file or the two-file layout.
type inputFlags struct {
	input   string
	public  string
	private string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.input, flagInput, "", "concatenated input file (8-byte count + 32-byte secret)")
	cmd.Flags().StringVar(&f.public, flagPublic, "", "public input file (8-byte little-endian count)")
	cmd.Flags().StringVar(&f.private, flagPrivate, "", "private input file (32-byte secret)")
}

func (f *inputFlags) validate() error {
	split := f.public != "" || f.private != ""
	switch {
	case f.input != "" && split:
		return errors.New("use either --input or --public/--private, not both")
	case f.input == "" && !split:
		return errors.New("missing input: pass --input or --public and --private")
	case split && (f.public == "" || f.private == ""):
		return errors.New("--public and --private must be given together")
	}
	return nil
}

// read returns the logical input buffer. The caller wipes it.
func (f *inputFlags) read() ([]byte, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if f.input != "" {
		return codec.ReadInputFile(f.input)
	}
	return codec.ReadInputFiles(f.public, f.private)
}
