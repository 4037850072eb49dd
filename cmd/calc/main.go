package main

import (
	"os"

	"github.com/MrLobotomist/test-pipeline/cmd/calc/cmd"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	return cmd.Execute(args[1:], os.Stdout, os.Stderr)
}
