// Package main provides the micrograd CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
)

const version = "v0.1.0"

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"version", "Show version", runVersion},
	{"train", "Train an MLP on moons or a CSV dataset", runTrain},
	{"predict", "Score inputs with a saved model", runPredict},
	{"gradcheck", "Compare backprop gradients with finite differences", runGradcheck},
	{"moons", "Generate a two-moons dataset as CSV", runMoons},
	{"boundary", "Render the decision boundary of a saved model", runBoundary},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("micrograd: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	for _, c := range commands {
		if c.name == os.Args[1] {
			err := c.run(os.Args[2:])
			if errors.Is(err, flag.ErrHelp) {
				os.Exit(2)
			}
			if err != nil {
				log.Fatalf("%s: %v", c.name, err)
			}
			return
		}
	}

	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "micrograd %s - scalar autodiff and tiny neural networks\n\n", version)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
	fmt.Fprintln(os.Stderr, "\nRun 'micrograd <command> -h' for command flags.")
}

func runVersion([]string) error {
	fmt.Printf("micrograd %s\n", version)
	return nil
}
