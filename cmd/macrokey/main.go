package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/cli"
	"github.com/SmitUplenchwar2687/macrokey/internal/platform"
)

func main() {
	b := cli.Backend{
		NewHook: func(logger *zap.Logger) cli.InputSource { return platform.NewHook(logger) },
		Synth:   platform.Synthesizer{},
		Pointer: platform.Pointer{},
	}
	if err := cli.NewRootCmd(b).Execute(); err != nil {
		os.Exit(1)
	}
}
