package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the strategies command.
func (c *StrategiesCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range deps.Strategies.Entries() {
		fmt.Fprintf(w, "%s\t%s\n", e.Matcher, e.Strategy.Name())
	}
	fmt.Fprintf(w, "%s\t%s\n", "*", deps.Strategies.Resolve("").Name())
	return w.Flush()
}
