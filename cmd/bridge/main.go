package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/souravmenon1999/injective-bridge/internal/bridge"
	"github.com/souravmenon1999/injective-bridge/internal/config"
	"github.com/souravmenon1999/injective-bridge/internal/exchange/injective"
	"github.com/souravmenon1999/injective-bridge/internal/logging"
	"github.com/souravmenon1999/injective-bridge/internal/types"
)

func main() {
	os.Exit(run())
}

// run keeps the exit path single so deferred cleanup fires before the
// process reports its status.
func run() int {
	configPath := flag.String("config", "configs/bridge.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Config failures still honor the one-result contract.
		return emit(types.Failure(err.Error()))
	}

	logger := logging.Init(cfg.Log.Level)

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return emit(types.Failure(fmt.Sprintf("failed to read stdin: %v", err)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	b := bridge.New(cfg, injective.Connect, logger)
	return emit(b.Run(ctx, raw))
}

// emit writes the single newline-terminated result to stdout and maps the
// success flag onto the exit code.
func emit(res types.Result) int {
	if err := json.NewEncoder(os.Stdout).Encode(res); err != nil {
		return 1
	}
	if res.Success {
		return 0
	}
	return 1
}
