/*Command haloctl is a thin diagnostic driver over the haloflow library: it
loads a grid configuration file, builds a DisjointBoxLayout from it, and
either describes the resulting partition or runs one exchange and reports
timing. It implements no numerical kernel of its own; a real simulation
driver is an external collaborator that links this library directly, the way
guppy.go links package lib.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/phil-mansfield/haloflow/config"
	"github.com/phil-mansfield/haloflow/diagnostics"
	"github.com/phil-mansfield/haloflow/exchange"
	"github.com/phil-mansfield/haloflow/haloerr"
	"github.com/phil-mansfield/haloflow/layout"
	"github.com/phil-mansfield/haloflow/leveldata"
	"github.com/phil-mansfield/haloflow/transport"
)

func main() {
	if len(os.Args) < 2 {
		haloerr.External(
			"You must specify a mode. The only valid modes are 'layout' and 'exchange'.")
	}
	mode := os.Args[1]
	args := os.Args[2:]

	switch mode {
	case "layout":
		Layout(args)
	case "exchange":
		Exchange(args)
	default:
		haloerr.External(
			"You attempted to run haloctl in the mode '%s', but the only valid "+
				"modes are 'layout' and 'exchange'.", mode)
	}
}

// Layout runs `haloctl layout describe`: it prints the partition a grid
// configuration file produces for one process.
func Layout(args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	numProc := fs.Int("numproc", 1, "number of processes to partition across")
	rank := fs.Int("rank", 0, "process rank to describe")
	fs.Parse(args)
	if fs.NArg() < 2 || fs.Arg(0) != "describe" {
		haloerr.External("Usage: haloctl layout describe <config-file>")
	}

	cfg, err := config.LoadGridConfig(fs.Arg(1))
	if err != nil {
		haloerr.External("Failed to load config file '%s': %v", fs.Arg(1), err)
	}

	dbl, err := layout.New(cfg.Domain(), cfg.MaxBoxSize(), *numProc, *rank)
	if err != nil {
		haloerr.External("Failed to build layout: %v", err)
	}

	fmt.Printf("Domain: %v\n", dbl.Domain())
	fmt.Printf("MaxBoxSize: %v\n", dbl.MaxBoxSize())
	fmt.Printf("NumBoxes: %d\n", dbl.NumBoxes())
	fmt.Printf("NumProc: %d\n", dbl.NumProc())
	fmt.Printf("Rank %d owns %d boxes:\n", dbl.Rank(), dbl.NumLocalBoxes())
	it := dbl.DataIter()
	for it.Next() {
		fmt.Printf("  box %d: %v\n", it.Index().Global, it.Box())
	}
}

// Exchange runs `haloctl exchange bench`: it builds a single-process
// LevelData and Copier from a grid configuration file, runs one exchange,
// and reports how the plan broke down and how long it took.
func Exchange(args []string) {
	fs := flag.NewFlagSet("exchange", flag.ExitOnError)
	report := fs.Bool("report", false, "print per-box summary statistics after the exchange")
	if len(args) < 1 || args[0] != "bench" {
		haloerr.External("Usage: haloctl exchange bench [-report] <config-file>")
	}
	fs.Parse(args[1:])
	if fs.NArg() < 1 {
		haloerr.External("Usage: haloctl exchange bench [-report] <config-file>")
	}

	cfg, err := config.LoadGridConfig(fs.Arg(0))
	if err != nil {
		haloerr.External("Failed to load config file '%s': %v", fs.Arg(0), err)
	}

	dbl, err := layout.New(cfg.Domain(), cfg.MaxBoxSize(), 1, 0)
	if err != nil {
		haloerr.External("Failed to build layout: %v", err)
	}

	ld := leveldata.New[float64](dbl, cfg.Grid.NumComp, cfg.Grid.GhostWidth)
	tr := transport.NewSingleProcess()
	c := exchange.NewCopier[float64](ld, tr, cfg.Periodic(), cfg.Trim())

	stats := c.Stats()
	fmt.Printf("Plan: %d local motions, %d remote motions, %d send bytes, %d recv bytes\n",
		stats.LocalMotions, stats.RemoteMotions, stats.SendBytes, stats.RecvBytes)

	start := time.Now()
	c.Exchange()
	fmt.Printf("Exchange completed in %v\n", time.Since(start))

	if *report {
		for _, b := range diagnostics.PerBoxStats(ld, 0) {
			fmt.Printf("  box %d: %v..%v (center %v): mean=%v stddev=%v n=%d\n",
				b.Global, b.SmallEnd, b.BigEnd, b.Center,
				b.Stats.Mean, b.Stats.Stddev, b.Stats.N)
		}
	}
}
