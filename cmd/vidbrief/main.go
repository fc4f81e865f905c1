package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/vidbrief/internal/commands"
)

func main() {
	if err := commands.NewApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
