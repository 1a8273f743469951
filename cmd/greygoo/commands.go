package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cbosoft/greygoo/internal/catalog"
	"github.com/cbosoft/greygoo/internal/config"
	"github.com/cbosoft/greygoo/internal/game"
	"github.com/cbosoft/greygoo/internal/ops"
	staticfiles "github.com/cbosoft/greygoo/static"
)

func newRootCommand(out, errOut io.Writer, clock game.Clock) *cobra.Command {
	a := &app{out: out, errOut: errOut, clock: clock}
	var f playFlags

	root := &cobra.Command{
		Use:   "greygoo",
		Short: "Grow a swarm of self-replicating bots, one check-in at a time",
		Long: `greygoo is an idle game. Research modifiers, then run trials to see whether
your bots consume the world. Time keeps passing between runs: every
invocation first catches the saved game up to now, then saves it again.

  greygoo                   Check research and trial progress
  greygoo --list            List modifiers that can be researched
  greygoo --research NAME   Start researching a modifier
  greygoo --start-trial     Release the bots
  greygoo --stop-trial      Cancel the running trial`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, f)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file (YAML, optional)")
	root.PersistentFlags().StringVar(&a.envPath, "env-file", ".env", "dotenv file read before GREYGOO_* overrides (optional)")

	root.Flags().BoolVar(&f.list, "list", false, "list researchable modifiers")
	root.Flags().BoolVar(&f.check, "check", false, "check research and trial progress (default)")
	root.Flags().StringVar(&f.research, "research", "", "start researching the named modifier")
	root.Flags().BoolVar(&f.startTrial, "start-trial", false, "start a trial")
	root.Flags().BoolVar(&f.stopTrial, "stop-trial", false, "stop the running trial")
	root.MarkFlagsMutuallyExclusive("list", "check", "research", "start-trial", "stop-trial")

	root.AddCommand(
		newInitCommand(a),
		newSchemaCommand(a),
		newBackupCommand(a),
		newRestoreCommand(a),
	)
	return root
}

func newInitCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the example catalog to the configured catalog path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CatalogPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, staticfiles.ExampleCatalog, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(a.out, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing catalog")
	return cmd
}

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of catalog files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := catalog.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(b))
			return err
		},
	}
}

func newBackupCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the saved game and catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				ts := a.clock.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "greygoo-"+ts+".tar.gz")
			}
			skipped, err := ops.BackupFiles(a.savedFiles(), out)
			if err != nil {
				return err
			}
			for _, p := range skipped {
				a.logger.Warn("not found, left out of backup", "path", p)
			}
			fmt.Fprintln(a.out, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output archive path (.tar.gz)")
	return cmd
}

func newRestoreCommand(a *app) *cobra.Command {
	var archive, target string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Extract a backup archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				return fmt.Errorf("--archive is required")
			}
			restored, err := ops.RestoreFiles(archive, target)
			if err != nil {
				return err
			}
			for _, p := range restored {
				fmt.Fprintln(a.out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "input backup archive (.tar.gz)")
	cmd.Flags().StringVar(&target, "target-dir", ".", "restore target directory")
	return cmd
}
