package main

import (
	"os"

	"github.com/funvibe/golox/pkg/cli"
)

func main() {
	os.Exit(cli.Entry(os.Args[1:]))
}
