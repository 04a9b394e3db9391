// Package main is the entry point for the goalvalue CLI tool, which computes
// the empirical goal impact table from historical match data and propagates
// it onto events and season summaries.
package main

import "github.com/nicoh/go-goal-value/cmd"

func main() {
	cmd.Execute()
}
