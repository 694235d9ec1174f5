// Command facewatch is the command line interface for the Facewatch API.
package main

import (
	"fmt"
	"os"

	"github.com/facewatch/facewatch/cmd/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
