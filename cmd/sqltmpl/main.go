package main

import (
	"os"

	"github.com/spf13/afero"

	"github.com/galatic-association/Dapper/cmd/sqltmpl/commands"
)

func main() {
	if err := commands.NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
