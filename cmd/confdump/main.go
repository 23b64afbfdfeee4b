// Command confdump assembles a layered configuration view from local files
// and the process environment, then prints every resolved key with the value
// the composite produces for it. Useful for inspecting which source wins for
// a given key.
//
// Usage:
//
//	confdump [file ...]
//
// Files may be JSON, YAML or TOML, chosen by extension. When no files are
// given, default discovery from CONF_DIR/APP_ENV/APP_SCOPE applies for JSON.
// Environment variables prefixed with APP_ are layered below the files.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"configstack/config"
)

const envPrefix = "APP_"

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "confdump: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(context.Background(), log, os.Args[1:]); err != nil {
		log.Fatal("confdump failed", zap.Error(err))
	}
}

func run(ctx context.Context, log *zap.Logger, files []string) error {
	comp := config.NewComposite()

	for _, f := range files {
		src, err := newFileSource(f)
		if err != nil {
			return err
		}
		comp.AddSource(ctx, config.NewLogged(filepath.Base(f), log, src))
	}
	if len(files) == 0 {
		src, err := config.NewJSON()
		if err != nil {
			return err
		}
		comp.AddSource(ctx, config.NewLogged("defaults", log, src))
	}

	comp.AddSource(ctx, config.NewEnv(envPrefix))

	log.Info("composite assembled", zap.Int("sources", comp.SourceCount()))

	for _, k := range comp.Keys(ctx) {
		v, _ := comp.Value(ctx, k)
		fmt.Printf("%s=%v\n", k, v)
	}
	return nil
}

// newFileSource picks a parser from the file extension.
func newFileSource(file string) (*config.FileSource, error) {
	switch filepath.Ext(file) {
	case ".toml":
		return config.NewTOML(config.SetFiles(file))
	case ".yml", ".yaml":
		return config.NewYAML(config.SetFiles(file))
	default:
		return config.NewJSON(config.SetFiles(file))
	}
}
