package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sandeepkv93/taskboard/internal/backup"
	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/update"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "taskboard failed: %v\n", err)
		os.Exit(1)
	}
}

// run parses flags, opens the configured store and either performs a
// one-shot backup operation or starts the TUI. A path of "-" means stdin for
// -import and stdout for -export.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("taskboard", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath(), "TOML config file")
	exportPath := fs.String("export", "", "write a JSON backup to this file and exit")
	importPath := fs.String("import", "", "merge a JSON backup from this file and exit")
	writeConfig := fs.Bool("write-config", false, "write the effective config to -config and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *writeConfig {
		if err := cfg.SaveTo(*configPath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(stdout, "config written to %s\n", *configPath)
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	kv, err := storage.Open(storage.Backend(cfg.Storage.Backend), cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer kv.Close()
	store := storage.NewStore(kv, storage.WithLogger(logger.Logger))
	logger.Info("storage opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	switch {
	case *exportPath != "":
		return exportTo(store, *exportPath, stdout)
	case *importPath != "":
		return importFrom(store, *importPath, stdin, stdout, logger)
	}

	program := tea.NewProgram(update.NewModel(update.Options{
		Store:  store,
		Logger: logger.Logger,
		Theme:  cfg.UI.Theme,
	}), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func exportTo(store *storage.Store, path string, stdout io.Writer) error {
	if path == "-" {
		return backup.Export(store, stdout, time.Now())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	if err := backup.Export(store, f, time.Now()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func importFrom(store *storage.Store, path string, stdin io.Reader, stdout io.Writer, logger *logging.Logger) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open backup: %w", err)
		}
		defer f.Close()
		r = f
	}
	res, err := backup.Import(store, r)
	if err != nil {
		return err
	}
	logger.Info("backup imported", "tasks", res.Tasks, "categories", res.Categories)
	fmt.Fprintf(stdout, "imported %d tasks and %d categories\n", res.Tasks, res.Categories)
	return nil
}
