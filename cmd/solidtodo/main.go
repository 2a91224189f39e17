// Package main implements the solidtodo CLI tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/amonks/solidtodo/internal/config"
	"github.com/amonks/solidtodo/internal/console"
	"github.com/amonks/solidtodo/internal/todoenv"
	"github.com/amonks/solidtodo/internal/ui"
	"github.com/amonks/solidtodo/todo"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "solidtodo",
	Short:        "A pretty solid todo list",
	Long:         "Run without a subcommand to open the interactive menu.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runMenu,
}

var (
	dataPathFlag  string
	configDirFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPathFlag, "data", "", "Todo data file (overrides "+todoenv.DataFileEnvVar+" and config)")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory containing "+config.ProjectFile+" (default: current directory)")
}

// session bundles everything a command needs to work with the todo list.
type session struct {
	cfg     *config.Config
	storage *todo.FileStorage
	repo    *todo.MemoryRepository
}

func openSession(cmd *cobra.Command) (*session, error) {
	dir := configDirFlag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	storage, err := todo.NewFileStorage(resolveDataPath(dataPathFlag, todoenv.DataFile(), cfg.Storage.Path), todo.FileStorageOptions{
		Logger: log.New(cmd.ErrOrStderr(), "solidtodo: ", 0),
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		storage: storage,
		repo:    todo.NewRepository(storage),
	}, nil
}

// resolveDataPath picks the data file: flag, then environment, then config.
func resolveDataPath(flagValue, envValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue != "" {
		return envValue
	}
	return configValue
}

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	c := console.New(s.repo, todo.NewUndoHistory(s.repo, s.cfg.Undo.Limit), console.Options{
		In:         cmd.InOrStdin(),
		Out:        out,
		DateLayout: s.cfg.Display.DateFormat,
		Color:      ui.ColorEnabled(out),
	})
	return c.Run()
}
