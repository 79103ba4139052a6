// Command guildctl inspects and edits guild command storage without starting
// the bot.
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/GuildCommandBot_Go/internal/command"
	"github.com/osse101/GuildCommandBot_Go/internal/config"
	"github.com/osse101/GuildCommandBot_Go/internal/domain"
	"github.com/osse101/GuildCommandBot_Go/internal/guild"
)

type cliEnv struct {
	GuildsDir string `env:"GUILDS_DIR" envDefault:"guilds"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:          "guildctl",
		Short:        "Manage per-guild command descriptors",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("dir") {
				return nil
			}
			_ = godotenv.Load(config.EnvFile)
			var e cliEnv
			if err := env.Parse(&e); err != nil {
				return fmt.Errorf("parse env: %w", err)
			}
			dir = e.GuildsDir
			return nil
		},
	}
	root.PersistentFlags().StringVar(&dir, "dir", "", "guild storage root (default $GUILDS_DIR or ./guilds)")

	openStore := func() (*guild.Store, error) {
		return guild.NewStore(dir)
	}

	root.AddCommand(
		newInitCmd(openStore),
		newCheckCmd(openStore),
		newListCmd(openStore),
		newFmtCmd(openStore),
		newRemoveCmd(openStore),
	)
	return root
}

type storeOpener func() (*guild.Store, error)

func newInitCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "init <guild-id>...",
		Short: "Create empty storage for guilds (existing files are kept)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := store.EnsureInitialized(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", id)
			}
			return nil
		},
	}
}

func newCheckCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "check [guild-id...]",
		Short: "Validate and compile descriptors; all guilds when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			ids := args
			if len(ids) == 0 {
				if ids, err = store.Guilds(); err != nil {
					return err
				}
			}

			compiler := newCompiler()
			failed := 0
			for _, id := range ids {
				cmds, err := compileGuild(store, compiler, id)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", id, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d commands)\n", id, len(cmds))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d guild(s) failed", failed, len(ids))
			}
			return nil
		},
	}
}

func newListCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list <guild-id>",
		Short: "Show a guild's commands as /help would list them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			cmds, err := compileGuild(store, newCompiler(), args[0])
			if err != nil {
				return err
			}
			if len(cmds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no commands)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), command.FormatHelp(cmds))
			return nil
		},
	}
}

func newFmtCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <guild-id>...",
		Short: "Rewrite descriptor files with canonical indentation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			for _, id := range args {
				descriptors, err := store.ReadDescriptors(id)
				if err != nil {
					return err
				}
				if err := store.WriteDescriptors(id, descriptors); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", id)
			}
			return nil
		},
	}
}

func newRemoveCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <guild-id>...",
		Short: "Delete guild storage",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := store.Destroy(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
			}
			return nil
		},
	}
}

func newCompiler() *command.Compiler {
	return command.NewCompiler(domain.CommandHelp, domain.CommandReload)
}

func compileGuild(store *guild.Store, compiler *command.Compiler, guildID string) ([]domain.CompiledCommand, error) {
	descriptors, err := store.ReadDescriptors(guildID)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(guildID, descriptors)
}
