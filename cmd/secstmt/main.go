package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/service"
)

func main() {
	flags := pflag.NewFlagSet("secstmt-batch", pflag.ExitOnError)
	flags.StringP("output-dir", "o", "", "Output directory (default: same as input file)")
	flags.StringP("lang", "l", "", "Message language")
	flags.String("xlsx", "", "Write balances and movements to this workbook")
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: secstmt-batch [-o output_dir] [-l lang] <directory>\n")
		os.Exit(1)
	}

	cfg, err := config.Build("", flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// The batch tool always writes movement files.
	cfg.Output = config.OutputCSV
	logger := cfg.NewLogger("secstmt")

	processor, err := service.NewProcessor(cfg, logger)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	dir := args[0]
	results, err := processor.ProcessDirectory(dir)
	if err != nil {
		logger.Fatal("processing failed", "error", err)
	}
	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
			logger.Error(res.Message, "file", res.File)
			continue
		}
		logger.Info("processed file successfully", "input", res.File, "output", res.Output)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
