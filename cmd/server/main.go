package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/yurifrl/secstmt/pkg/config"
	"github.com/yurifrl/secstmt/pkg/server"
)

func main() {
	flags := pflag.NewFlagSet("secstmt-server", pflag.ExitOnError)
	var (
		port    = flags.String("port", "3000", "Server port")
		cfgFile = flags.StringP("config", "c", "", "Config file (default is config.yaml)")
	)
	flags.StringP("lang", "l", "", "Default message language")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("messages", "", "YAML file overriding message templates")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Build(*cfgFile, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.NewLogger("secstmt")

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}
	addr := fmt.Sprintf("0.0.0.0:%s", *port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
