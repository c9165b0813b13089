package main

import (
	"fmt"
	"os"

	"github.com/danmuck/pointcode/internal/config"
	"github.com/spf13/pflag"
)

const defaultPath = "cmd/pointd/config.toml"

func main() {
	kind := pflag.String("kind", "pointd", "config kind: pointd")
	output := pflag.String("output", defaultPath, "output path for config template")
	validate := pflag.Bool("validate", false, "validate an existing config file")
	input := pflag.String("input", defaultPath, "config path for validation")
	force := pflag.Bool("force", false, "overwrite existing config file")
	pflag.Parse()

	if *validate {
		if _, err := config.LoadServerConfig(*input); err != nil {
			fail(err)
		}
		fmt.Printf("Validated %s config at %s\n", *kind, *input)
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s config template to %s\n", *kind, *output)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "configgen: %v\n", err)
	os.Exit(1)
}
