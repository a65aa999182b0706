package main

import (
	"os"

	"github.com/ashishjayamohan/pinpoint/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
