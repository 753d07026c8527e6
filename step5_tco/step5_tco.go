package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bshepherdson/mal/config"
	"github.com/bshepherdson/mal/eval"
	"github.com/bshepherdson/mal/printer"
	"github.com/bshepherdson/mal/reader"
	"github.com/bshepherdson/mal/readline"
	"github.com/bshepherdson/mal/types"
)

// rep returns the printed result, or "" for a blank line.
func rep(input string, env *types.Env) (string, error) {
	s, err := eval.Rep(input, env)
	if errors.Is(err, types.ErrEmptyInput) {
		return "", nil
	}
	return s, err
}

// runFile evaluates every form in src, stopping at the first error.
func runFile(src string, env *types.Env) error {
	forms, err := reader.ReadAll(src)
	if err != nil {
		return err
	}
	for _, f := range forms {
		if _, err := eval.Eval(f, env); err != nil {
			return fmt.Errorf("%s: %w", printer.PrintStr(f, true), err)
		}
	}
	return nil
}

func main() {
	configPath := flag.String("config", "mal.yaml", "path to the YAML config file")
	prompt := flag.String("prompt", "", "override the prompt from the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *prompt != "" {
		cfg.Prompt = *prompt
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.Debug("config loaded", "path", *configPath, "history", cfg.HistoryFile)

	replEnv, err := eval.NewRootEnv()
	if err != nil {
		log.Error("bootstrap failed", "err", err)
		os.Exit(1)
	}
	if err := eval.LoadPrelude(replEnv, cfg.Prelude); err != nil {
		log.Error("config prelude failed", "err", err)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		path := flag.Arg(0)
		src, err := os.ReadFile(path)
		if err != nil {
			log.Error("cannot read file", "path", path, "err", err)
			os.Exit(1)
		}
		if err := runFile(string(src), replEnv); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rl := readline.Open(cfg.HistoryFile)
	defer func() {
		if err := rl.Close(); err != nil {
			log.Warn("saving history failed", "path", cfg.HistoryFile, "err", err)
		}
	}()

	for {
		line, err := rl.Readline(cfg.Prompt)
		if errors.Is(err, readline.ErrAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error("read failed", "err", err)
			}
			break
		}
		s, err := rep(line, replEnv)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if s != "" {
			fmt.Println(s)
		}
	}
}
