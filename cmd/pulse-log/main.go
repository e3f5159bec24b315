// Command pulse-log is a tool for viewing and analyzing PULSE event
// trace files.
//
// Trace files are created with the -log-file flag of pulse-monitor, or
// by any application wiring a log.FileLogger into its listeners.
//
// Usage:
//
//	pulse-log <command> [flags] <file.plog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	pulse-log view trace.plog
//
//	# View only delivery events
//	pulse-log view --category delivery trace.plog
//
//	# View one endpoint's events
//	pulse-log view --entity 6e1f... trace.plog
//
//	# Export to JSONL
//	pulse-log export --format jsonl trace.plog
//
//	# Filter by topic and save to new file
//	pulse-log filter --topic robot/odom -o odom.plog trace.plog
//
//	# Show statistics
//	pulse-log stats trace.plog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pulse-protocol/pulse-go/cmd/pulse-log/commands"
	"github.com/pulse-protocol/pulse-go/pkg/log"
)

const usage = `pulse-log - PULSE Event Trace Analyzer

Usage:
  pulse-log <command> [flags] <file.plog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "pulse-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the shared filter flags on fs and returns a
// builder that assembles the log.Filter after parsing.
func filterFlags(fs *flag.FlagSet) func() (log.Filter, error) {
	entity := fs.String("entity", "", "Filter by endpoint GUID")
	role := fs.String("role", "", "Filter by role (subscriber, publisher)")
	category := fs.String("category", "", "Filter by category (status, delivery, state)")
	topic := fs.String("topic", "", "Filter by topic")

	return func() (log.Filter, error) {
		filter := log.Filter{EntityID: *entity, Topic: *topic}

		if *role != "" {
			r, err := commands.ParseRoleFlag(*role)
			if err != nil {
				return log.Filter{}, err
			}
			filter.Role = &r
		}
		if *category != "" {
			c, err := commands.ParseCategoryFlag(*category)
			if err != nil {
				return log.Filter{}, err
			}
			filter.Category = &c
		}
		return filter, nil
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pulse-log view - View trace file in human-readable format

Usage:
  pulse-log view [flags] <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}

	buildFilter := filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pulse-log export - Export trace file to JSONL or CSV format

Usage:
  pulse-log export [flags] <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pulse-log filter - Filter trace file and write to new file

Usage:
  pulse-log filter [flags] -o <out.plog> <file.plog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	buildFilter := filterFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || *output == "" {
		fmt.Fprintln(os.Stderr, "Error: trace file path and -o output required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := buildFilter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n, err := commands.RunFilter(fs.Arg(0), *output, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d event(s) to %s\n", n, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `pulse-log stats - Show statistics about the trace file

Usage:
  pulse-log stats <file.plog>
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
