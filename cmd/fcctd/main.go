/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ClarkeTj/fuprechess-tdbot/internal"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"list":      handleList,
	"standings": handleStandings,
	"rounds":    handleRounds,
	"pairings":  handlePairings,
	"schedule":  handleSchedule,
	"final":     handleFinal,
	"export":    handleExport,
	"commit":    handleCommit,
	"roster":    handleRoster,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// parseSiteFlags parses args for a command reading the club documents.
// Extra flags may be registered through extra before parsing.
func parseSiteFlags(name string, args []string, needTournament bool,
	extra func(fs *flag.FlagSet)) (*siteFlags, *flag.FlagSet) {

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	sf := &siteFlags{}
	sf.register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if needTournament && sf.tournament == "" && fs.NArg() > 0 {
		sf.tournament = fs.Arg(0)
	}

	return sf, fs
}

func printOrDie(cmd string, output string, err error) {
	if err != nil {
		log.Fatalf("fcctd.%v: %v", cmd, err)
	}
	fmt.Print(output)
}

func handleList(ctx context.Context, args []string) {
	sf, _ := parseSiteFlags("list", args, false, nil)
	output, err := runList(ctx, sf)
	printOrDie("list", output, err)
}

func handleStandings(ctx context.Context, args []string) {
	sf, _ := parseSiteFlags("standings", args, true, nil)
	output, err := runStandings(ctx, sf)
	printOrDie("standings", output, err)
}

func handleRounds(ctx context.Context, args []string) {
	sf, _ := parseSiteFlags("rounds", args, true, nil)
	output, err := runRounds(ctx, sf)
	printOrDie("rounds", output, err)
}

func handlePairings(ctx context.Context, args []string) {
	var asJSON bool
	sf, _ := parseSiteFlags("pairings", args, true, func(fs *flag.FlagSet) {
		fs.BoolVar(&asJSON, "json", false, "Print the proposal as JSON")
	})
	output, err := runPairings(ctx, sf, asJSON)
	printOrDie("pairings", output, err)
}

func handleSchedule(ctx context.Context, args []string) {
	sf, _ := parseSiteFlags("schedule", args, true, nil)
	output, err := runSchedule(ctx, sf)
	printOrDie("schedule", output, err)
}

func handleFinal(ctx context.Context, args []string) {
	sf, _ := parseSiteFlags("final", args, true, nil)
	output, err := runFinal(ctx, sf)
	printOrDie("final", output, err)
}

func handleExport(ctx context.Context, args []string) {
	var out string
	var withNext bool
	sf, fs := parseSiteFlags("export", args, true, func(fs *flag.FlagSet) {
		fs.StringVar(&out, "out", "", "Workbook to write (path or s3://bucket/key)")
		fs.BoolVar(&withNext, "next", false,
			"Include the suggested next round")
	})
	if out == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --out location.")
		fs.Usage()
		os.Exit(1)
	}
	output, err := runExport(ctx, sf, out, withNext)
	printOrDie("export", output, err)
}

func handleCommit(ctx context.Context, args []string) {
	var out string
	var creditByes bool
	sf, fs := parseSiteFlags("commit", args, true, func(fs *flag.FlagSet) {
		fs.StringVar(&out, "out", "",
			"Where to write the updated document (default: -active)")
		fs.BoolVar(&creditByes, "creditbyes", false,
			"Count each bye in the committed round as a win")
	})
	if out == "" {
		out = sf.active
	}
	if out == internal.DefaultActiveURL() {
		fmt.Fprintln(os.Stderr,
			"The published document is read-only; please provide --out.")
		fs.Usage()
		os.Exit(1)
	}
	output, err := runCommit(ctx, sf, out, creditByes)
	printOrDie("commit", output, err)
}

func handleRoster(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("roster", flag.ExitOnError)
	in := fs.String("in", "", "HTML page holding the roster table")
	cacheBucket := fs.String("cachebucket", "",
		"S3 bucket used to cache http fetches")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --in location.")
		fs.Usage()
		os.Exit(1)
	}
	output, err := runRoster(ctx, *in, *cacheBucket)
	printOrDie("roster", output, err)
}
