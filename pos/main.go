package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/mrosati/positions/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It must run before
// flag.Parse: when invoked by the shell it prints candidates and exits.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"ledger-file":     predict.Files("*.csv"),
		"securities-file": predict.Files("*.csv"),
		"price-cache":     predict.Dirs("*"),
	},
	Sub: map[string]*complete.Command{
		"positions": {Flags: map[string]complete.Predictor{
			"dust":    predict.Something,
			"offline": predict.Nothing,
			"j":       predict.Something,
			"c":       predict.Something,
		}},
		"fetch": {},
		"history": {Flags: map[string]complete.Predictor{
			"u": predict.Nothing,
		}},
		"assist": {Flags: map[string]complete.Predictor{
			"offline": predict.Nothing,
			"c":       predict.Something,
		}},
	},
}

func main() {
	completion.Complete("pos")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
