package main

import (
	"os"

	"github.com/danmuck/pointcode/internal/logging"
)

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
