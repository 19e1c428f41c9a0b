package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dsjohal14/arcadeboard/internal/libs/config"
	"github.com/dsjohal14/arcadeboard/internal/libs/obs"
	"github.com/dsjohal14/arcadeboard/internal/scope/db"
	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	uri     string
	timeout time.Duration
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "leaderboard",
		Short:        "Leaderboard CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if opts.uri == "" {
				opts.uri = cfg.StorageURI
			}
			if opts.uri == "" {
				return errors.New("no storage uri: pass --uri or set MONGO_URI")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.uri, "uri", "", "Storage connection string (default: $MONGO_URI, then $DATABASE_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout for the whole command")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newTopCmd(opts))
	root.AddCommand(newSubmitCmd(opts))

	return root
}

func (o *rootOptions) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), o.timeout)
}

func (o *rootOptions) open(ctx context.Context) (db.Storage, error) {
	return db.Open(ctx, o.uri, db.Options{
		MongoDatabase: o.cfg.MongoDatabase,
		Logger:        obs.Logger("cli"),
	})
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the schema of SQL backends (Postgres, SQLite). Use subcommands 'up', 'down', or 'status'.`,
	}

	// withStore connects without migrating, so the subcommands see the real schema state
	withStore := func(run func(ctx context.Context, cmd *cobra.Command, store *db.SQLStore) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			store, err := db.ConnectSQL(ctx, opts.uri)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return run(ctx, cmd, store)
		}
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Migrate the database to the most recent version",
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *db.SQLStore) error {
			applied, err := db.Migrate(ctx, store.DB(), store.Dialect())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %05d\n", v)
			}
			return nil
		}),
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the database by one version",
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *db.SQLStore) error {
			version, err := db.Rollback(ctx, store.DB(), store.Dialect())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %05d\n", version)
			return nil
		}),
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Dump the migration status for the current DB",
		RunE: withStore(func(ctx context.Context, cmd *cobra.Command, store *db.SQLStore) error {
			statuses, err := db.Status(ctx, store.DB(), store.Dialect())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(tw, "%05d\t%s\t%s\n", s.Version, state, s.Path)
			}
			return tw.Flush()
		}),
	})

	return migrateCmd
}

func newTopCmd(opts *rootOptions) *cobra.Command {
	limit := scores.LeaderboardSize

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := opts.context()
			defer cancel()

			store, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Top(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tPLAYER\tSCORE\tDATE")
			for i, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, e.PlayerName, e.Score, scores.FormatDate(e.DateAchieved))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "Number of entries to print")
	return cmd
}

func newSubmitCmd(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "submit <score>",
		Short: "Store a score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := scores.NewEntry(ulid.Make().String(), name, scores.CoerceScore(args[0]), time.Now())
			if err != nil {
				return err
			}

			ctx, cancel := opts.context()
			defer cancel()

			store, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Insert(ctx, entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s %s %d\n", entry.ID, entry.PlayerName, entry.Score)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (default ANONYMOUS)")
	return cmd
}
