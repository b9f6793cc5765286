package main

import (
	"os"

	"github.com/rmacedo/tubecloud/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
