package main

import (
	"os"

	"gold_digger/internal/app/cli"
)

func main() {
	os.Exit(cli.Execute())
}
