// Package main is the psmik command itself.
package main

import (
	"log"
	"os"

	"github.com/lusu8892/cwru-davinci-kinematics/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
