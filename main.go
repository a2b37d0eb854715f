package main

import (
	"github.com/bnema/layerkit/internal/adapters/in/cli"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	cli.ExecuteCLI(version, commit, date)
}
