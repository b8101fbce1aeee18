// Copyright (c) 2026 Librarian Team
// Librarian - terminal library catalogue manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface of Librarian using Cobra: the
// root command that runs the interactive catalogue, its persistent flags
// and the shared startup (configuration, language, logging, storage).

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/toeirei/librarian/buildvars"
	"github.com/toeirei/librarian/internal/auth"
	"github.com/toeirei/librarian/internal/config"
	"github.com/toeirei/librarian/internal/console"
	"github.com/toeirei/librarian/internal/i18n"
	"github.com/toeirei/librarian/internal/library"
	"github.com/toeirei/librarian/internal/logging"
	"github.com/toeirei/librarian/internal/prompt"
	"github.com/toeirei/librarian/internal/store"
)

var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool

var appConfig config.Config
var appStore store.Store

// openTerminal returns the surface used by interactive commands. Tests
// replace it with a scripted screen.
var openTerminal = func() (console.Surface, error) {
	t := console.NewTerminal(os.Stdin, os.Stdout)
	if !t.IsTerminal() {
		return nil, errors.New(i18n.T("cli.error_no_terminal"))
	}
	return t, nil
}

// newPrompter builds the line editor drawing on surface.
var newPrompter = func(surface console.Surface, cfg console.Config) prompt.Prompter {
	return prompt.New(os.Stdin, os.Stdout, surface, cfg)
}

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	if verbose {
		logging.SetDebug(true)
	}

	appConfig, err = config.Load(cmd, configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if configPath == nil {
		writeDefaultConfig()
	}

	i18n.Init(appConfig.Language)

	// A failed command skips the post-run hook; drop its store.
	_ = closeStore(cmd, args)
	s, err := store.Open(appConfig.Storage)
	if err != nil {
		return errors.New(i18n.T("cli.error_open_storage", err))
	}
	appStore = s
	logging.Debugf("cli: %s storage ready", appConfig.Storage.Type)
	return nil
}

// writeDefaultConfig persists the effective settings on first run so users
// have a file to edit.
func writeDefaultConfig() {
	path, err := config.GetConfigPath(false)
	if err != nil {
		return
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return
	}
	if _, err := os.Stat("librarian.yaml"); err == nil {
		return
	}
	if _, err := config.WriteConfigFile(&appConfig, false); err != nil {
		logging.Warnf("could not write default config file: %v", err)
		return
	}
	logging.Infof("wrote default config to %s", path)
}

func closeStore(cmd *cobra.Command, args []string) error {
	if appStore == nil {
		return nil
	}
	err := appStore.Close()
	appStore = nil
	return err
}

// Execute runs the CLI entrypoint. main should call this function and
// handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates the root command with all subcommands. Every call
// returns fresh commands, so tests can run several in one process.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "librarian",
		Short: "Librarian is a terminal library catalogue.",
		Long: `Librarian keeps a catalogue of books and reader accounts.
Readers search the catalogue, take and return books; administrators
maintain books and accounts.

Running without a subcommand starts the interactive catalogue.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setupDefaultServices,
		PersistentPostRunE: closeStore,
		RunE:               runInteractive,
	}

	v, c, d := resolveBuildVersion(nil)
	cmd.Version = compositeVersion(v, c, d)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "ru", `interface language ("ru", "en")`)
	cmd.PersistentFlags().String("storage.type", "json", "Storage type (json, sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("storage.dsn", "", "Database connection string (DSN)")

	cmd.AddCommand(
		newBooksCmd(),
		newUserCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newMigrateCmd(),
		newVersionCmd(),
	)
	return cmd
}

// runInteractive signs in and runs the catalogue menu on the terminal.
func runInteractive(cmd *cobra.Command, args []string) error {
	if appConfig.LogFile != "" {
		closeLog, err := logging.OpenFile(appConfig.LogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}
	surface, err := openTerminal()
	if err != nil {
		return err
	}
	cfg := appConfig.ConsoleConfig()
	c := console.New(surface, cfg)
	app := library.New(appStore, auth.New(appStore), c, newPrompter(surface, cfg))
	err = app.Run()
	surface.Clear()
	if errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	return err
}

func compositeVersion(v, c, d string) string {
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		// No storage is needed to print the version.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/librarian" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
