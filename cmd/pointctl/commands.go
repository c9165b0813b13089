package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/pointcode"
	"github.com/danmuck/pointcode/internal/pointcode/schema"
	"github.com/danmuck/pointcode/internal/render"
	"github.com/spf13/pflag"
)

const (
	exitOK       = 0
	exitConvert  = 1
	exitUsage    = 2
	defaultWidth = schema.Width14
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	args    string
	summary string
	flags   func(*pflag.FlagSet) func(*env, []string) error
}

// env is what every command runs against.
type env struct {
	conv   *convert.Converter
	format render.Format
	out    io.Writer
}

var commands = []command{
	{"encode", "VALUE", "encode a decimal (or --hex) value under one schema", encodeCmd},
	{"decode", "TEXT", "decode formatted text under one schema", decodeCmd},
	{"convert", "TEXT", "re-encode formatted text from one schema to another", convertCmd},
	{"table", "VALUE", "show a value under every schema of one table width", tableCmd},
	{"radix", "VALUE", "convert between binary, octal, decimal and hex", radixCmd},
	{"schemas", "", "list the schema catalog", schemasCmd},
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}
	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "pointctl: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.StringP("output", "o", "text", "output format: text|json|yaml|cbor")
	exec := cmd.flags(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: pointctl %s [flags] %s\n\n%s\n\nflags:\n", cmd.name, cmd.args, cmd.summary)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	format, err := render.ParseFormat(*output)
	if err != nil {
		fmt.Fprintf(stderr, "pointctl %s: %v\n", cmd.name, err)
		return exitUsage
	}

	err = exec(&env{conv: convert.New(nil), format: format, out: stdout}, fs.Args())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "pointctl %s: %v\n", cmd.name, err)
		fs.Usage()
		return exitUsage
	default:
		if ce, ok := pointcode.AsError(err); ok {
			fmt.Fprintf(stderr, "pointctl %s: %s\n", cmd.name, ce.UserMessage())
			return exitConvert
		}
		fmt.Fprintf(stderr, "pointctl %s: %v\n", cmd.name, err)
		return exitConvert
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: pointctl <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

func oneArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected exactly one argument, got %d", errUsage, len(args))
	}
	return args[0], nil
}

func encodeCmd(fs *pflag.FlagSet) func(*env, []string) error {
	id := fs.StringP("schema", "s", schema.PC77, "target schema id or alias")
	hex := fs.Bool("hex", false, "VALUE is hexadecimal")
	return func(e *env, args []string) error {
		text, err := oneArg(args)
		if err != nil {
			return err
		}
		in := convert.Input{Text: text, Notation: convert.NotationDecimal}
		if *hex {
			in.Notation = convert.NotationHexadecimal
		}
		v, err := e.conv.Convert(in, *id)
		if err != nil {
			return err
		}
		return render.WriteValue(e.out, e.format, v)
	}
}

func decodeCmd(fs *pflag.FlagSet) func(*env, []string) error {
	id := fs.StringP("schema", "s", schema.PC77, "schema id or alias of TEXT")
	return func(e *env, args []string) error {
		text, err := oneArg(args)
		if err != nil {
			return err
		}
		v, err := e.conv.Convert(convert.Input{Text: text, Notation: convert.NotationFormatted, SchemaID: *id}, *id)
		if err != nil {
			return err
		}
		return render.WriteValue(e.out, e.format, v)
	}
}

func convertCmd(fs *pflag.FlagSet) func(*env, []string) error {
	from := fs.String("from", "", "schema of TEXT (required)")
	to := fs.String("to", "", "target schema (required)")
	return func(e *env, args []string) error {
		text, err := oneArg(args)
		if err != nil {
			return err
		}
		if strings.TrimSpace(*from) == "" || strings.TrimSpace(*to) == "" {
			return fmt.Errorf("%w: --from and --to are required", errUsage)
		}
		v, err := e.conv.Convert(convert.Input{Text: text, Notation: convert.NotationFormatted, SchemaID: *from}, *to)
		if err != nil {
			return err
		}
		return render.WriteValue(e.out, e.format, v)
	}
}

func tableCmd(fs *pflag.FlagSet) func(*env, []string) error {
	bits := fs.IntP("bits", "b", defaultWidth, "table width: 14, 16 or 24")
	hex := fs.Bool("hex", false, "VALUE is hexadecimal")
	id := fs.StringP("schema", "s", "", "VALUE is formatted text of this schema")
	return func(e *env, args []string) error {
		text, err := oneArg(args)
		if err != nil {
			return err
		}
		in := convert.Input{Text: text, Notation: convert.NotationDecimal}
		switch {
		case *id != "":
			in.Notation = convert.NotationFormatted
			in.SchemaID = *id
		case *hex:
			in.Notation = convert.NotationHexadecimal
		}
		rows, err := e.conv.Representations(in, *bits)
		if errors.Is(err, convert.ErrUnknownWidth) {
			return fmt.Errorf("%w: %v (have %v)", errUsage, err, e.conv.Widths())
		}
		if err != nil {
			return err
		}
		return render.WriteRepresentations(e.out, e.format, rows)
	}
}

func radixCmd(fs *pflag.FlagSet) func(*env, []string) error {
	from := fs.String("from", "dec", "base of VALUE: bin|oct|dec|hex|2..36")
	to := fs.String("to", "", "optional output base")
	return func(e *env, args []string) error {
		text, err := oneArg(args)
		if err != nil {
			return err
		}
		fb, ok := pointcode.ParseBase(*from)
		if !ok {
			return fmt.Errorf("%w: unknown base %q", errUsage, *from)
		}
		var b convert.Breakdown
		if *to == "" {
			b, err = e.conv.Breakdown(text, fb)
		} else {
			tb, ok := pointcode.ParseBase(*to)
			if !ok {
				return fmt.Errorf("%w: unknown base %q", errUsage, *to)
			}
			b, err = e.conv.ConvertBase(text, fb, tb)
		}
		if err != nil {
			return err
		}
		return render.WriteBreakdown(e.out, e.format, b)
	}
}

func schemasCmd(fs *pflag.FlagSet) func(*env, []string) error {
	bits := fs.IntP("bits", "b", 0, "only schemas of this table width")
	return func(e *env, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("%w: schemas takes no arguments", errUsage)
		}
		list := e.conv.Schemas(*bits)
		if len(list) == 0 {
			return fmt.Errorf("%w: no schemas of width %d (have %v)", errUsage, *bits, e.conv.Widths())
		}
		return render.WriteSchemas(e.out, e.format, list)
	}
}
