package main

import (
	"os"

	"github.com/jonesrussell/queryvalidator/cmd"
	"github.com/jonesrussell/queryvalidator/cmd/common"
)

func main() {
	if err := cmd.Execute(); err != nil {
		common.PrintErrorf("%v", err)
		os.Exit(1)
	}
}
