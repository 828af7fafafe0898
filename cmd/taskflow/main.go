package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskflow/internal/config"
	"taskflow/internal/state"
	"taskflow/internal/store"
	"taskflow/internal/ui"
)

const debugLogFile = "taskflow-debug.log"

var (
	configPath string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Personal task manager for the terminal",
		RunE:          runUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default $TASKFLOW_CONFIG or the user config dir)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log dispatched actions to "+debugLogFile)

	root.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print task counters for the starting state",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	})
	return root
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if debug && logPath == "" {
		logPath = debugLogFile
	}
	var opts []store.Option
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "taskflow")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		opts = append(opts, store.WithLogger(log.Default()))
	} else {
		log.SetOutput(io.Discard)
	}

	s := store.Bootstrap(cfg, opts...)
	log.Printf("starting with %d tasks, %d categories", len(s.State().Tasks), len(s.State().Categories))
	return ui.Run(s, cfg)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := store.Bootstrap(cfg)
	snap := s.State()
	st := state.ComputeStats(snap.Tasks, state.Today(s.Now()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total:     %d\n", st.Total)
	fmt.Fprintf(out, "Completed: %d\n", st.Completed)
	fmt.Fprintf(out, "Pending:   %d\n", st.Pending)
	fmt.Fprintf(out, "Overdue:   %d\n", st.Overdue)
	fmt.Fprintf(out, "Done:      %.0f%%\n", st.CompletionRate()*100)
	return nil
}
