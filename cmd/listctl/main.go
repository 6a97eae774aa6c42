// main.go
package main

import (
	"fmt"
	"os"

	"github.com/Marga-Ghale/ora-lists/internal/cli"
	"github.com/Marga-Ghale/ora-lists/internal/config"
	"github.com/Marga-Ghale/ora-lists/pkg/logging"
)

func main() {
	_ = config.LoadEnv()
	cfg := config.Load()
	logging.SetupWithLevel(logging.LevelFromString(cfg.LogLevel))

	if err := cli.NewRootCommand(cli.Options{Config: cfg}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
