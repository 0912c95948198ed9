package main

import (
	"fmt"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal"
	"github.com/de-tools/revenue-atlas/pkg/store/datasource"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Sources:   datasource.NewDefaultRegistry(),
		Output:    os.Stdout,
		LogOutput: os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
