// Command mmrproof builds merkle mountain ranges, proves leaves and verifies
// proofs.
package main

import (
	"fmt"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
)

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if logger.Sugar != nil {
		logger.OnExit()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
