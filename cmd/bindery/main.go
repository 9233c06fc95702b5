package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		var issues errValidationIssues
		if errors.As(err, &issues) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
