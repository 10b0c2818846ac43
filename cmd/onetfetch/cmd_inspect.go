package main

import (
	"fmt"
	"io"

	"github.com/raywall/onet-interest-profiler/pkg/config"
	"github.com/raywall/onet-interest-profiler/pkg/rules"
	"github.com/raywall/onet-interest-profiler/schema"
	"github.com/raywall/onet-interest-profiler/store"
	"github.com/spf13/cobra"
)

var inspectFlags struct {
	from  string
	where string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show a saved snapshot, optionally filtering questions with CEL",
	Long: "inspect loads a snapshot from a file or any supported location\n" +
		"(s3://, dynamodb://, redis://, postgres://) and prints its counts per\n" +
		"RIASEC area. --where lists the questions matching a CEL expression over\n" +
		"index, area and text, e.g. --where \"area == 'Social' && index > 30\".",
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFlags.from, "from", "", "Snapshot location (default: configured output)")
	f.StringVar(&inspectFlags.where, "where", "", "CEL filter over index, area and text")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// A expressão é validada antes de qualquer I/O.
	rm, err := rules.NewRuleManager()
	if err != nil {
		return err
	}
	filter, err := rm.Compile(inspectFlags.where)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, configOptions)
	if err != nil {
		return err
	}
	location := inspectFlags.from
	if location == "" {
		location = cfg.Output
	}

	backend, err := store.Open(ctx, location, store.Options{Region: cfg.AWSRegion})
	if err != nil {
		return err
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}
	qs, err := store.LoadFrom(ctx, backend)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Location:       %s\n", backend.Location())
	fmt.Fprintf(out, "Dataset:        %s\n", qs.DatasetID())
	fmt.Fprintf(out, "Total:          %d\n", qs.Total())
	fmt.Fprintf(out, "Questions:      %d\n", qs.Len())
	fmt.Fprintf(out, "Answer options: %d\n", len(qs.AnswerOptions()))
	fmt.Fprintf(out, "Areas:\n")
	counts := qs.CountByArea()
	for _, area := range schema.Areas() {
		fmt.Fprintf(out, "  %-14s %d\n", area, counts[area])
	}

	if inspectFlags.where == "" {
		return nil
	}
	matched, err := filter.Apply(qs.Questions())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Matched %d of %d questions (%s):\n", len(matched), qs.Len(), filter)
	for _, q := range matched {
		fmt.Fprintf(out, "  %2d  %-13s %s\n", q.Index(), q.Area(), q.Text())
	}
	return nil
}
