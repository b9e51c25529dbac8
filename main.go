package main

import (
	"os"

	"github.com/oakwood-commons/gridfit/cmd"
	"github.com/oakwood-commons/gridfit/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		cmd.PrintError(os.Stderr, err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
