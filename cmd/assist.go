package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mrosati/positions"
	"github.com/mrosati/positions/renderer"
	"google.golang.org/genai"
)

// assistModel is the Gemini model used to comment the report.
const assistModel = "gemini-2.5-flash"

// assistCmd holds the flags for the 'assist' subcommand.
type assistCmd struct {
	offline  bool
	currency string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "ask the AI assistant to comment the positions report"
}
func (*assistCmd) Usage() string {
	return `pos assist [-offline] [-c <currency>] [question...]

  Builds the positions report, sends it to Gemini and prints the model's
  commentary. Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "do not fetch quotes, value open positions at their average buy price")
	f.StringVar(&c.currency, "c", positions.DefaultCurrency, "currency of the ledger amounts")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := "Give a short assessment of this portfolio."
	if f.NArg() > 0 {
		question = strings.Join(f.Args(), " ")
	}

	opts := positions.DefaultBuildOptions()
	report, status := buildPortfolio(c.currency, 0.001, opts.Workers, c.offline)
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
		You are a portfolio analyst. The user shares the current positions of
		a small personal brokerage portfolio. The ISINs and descriptions
		identify the securities. Answer the user's question about it, be
		concise and factual, never give buy or sell orders.`}}},
	}
	chat, err := client.Chats.Create(ctx, assistModel, config, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting the assistant chat:", err)
		return subcommands.ExitFailure
	}

	prompt := renderer.PositionsMarkdown(report) + "\n" + question
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error querying the assistant:", err)
		return subcommands.ExitFailure
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		fmt.Fprintln(os.Stderr, "Error: empty response from the assistant")
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Candidates[0].Content.Parts[0].Text)
	return subcommands.ExitSuccess
}
