package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/jatstemplate/host"
	"github.com/lehigh-university-libraries/jatstemplate/record"
	"github.com/lehigh-university-libraries/jatstemplate/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the download endpoint for loaded records",
	Long: `Serve the production-ready file download endpoint, the JATS article
endpoint, /healthz and /metrics for the records in --records-dir.

Downloads require a bearer token signed with security.api_key_secret (HS256)
whose user holds the journal manager or subscription manager role.

Configuration keys (flags, JATSTEMPLATE_* environment, or config file):
  records_dir, files_dir, base_url, messages_dir, roles_db, roles_file,
  security.api_key_secret, server.address, server.read_timeout,
  server.write_timeout, server.idle_timeout, server.shutdown_timeout,
  server.trust_user_header`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("records-dir", "records", "Directory of record YAML files")
	serveCmd.Flags().String("roles-db", "", "SQLite role database")
	serveCmd.Flags().String("roles-file", "", "YAML role file, used when no role database is set")
	serveCmd.Flags().String("address", defaultAddress, "Listen address")
	serveCmd.Flags().Bool("trust-user-header", false, "Accept X-User-ID from a trusted proxy")
	mustBind("records_dir", serveCmd.Flags().Lookup("records-dir"))
	mustBind("roles_db", serveCmd.Flags().Lookup("roles-db"))
	mustBind("roles_file", serveCmd.Flags().Lookup("roles-file"))
	mustBind("server.address", serveCmd.Flags().Lookup("address"))
	mustBind("server.trust_user_header", serveCmd.Flags().Lookup("trust-user-header"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	store, err := record.OpenStore(viper.GetString("records_dir"), viper.GetString("files_dir"))
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	slog.Info("loaded records", "count", len(store.Records()))

	roles, closeRoles, err := openRoles()
	if err != nil {
		return err
	}
	defer closeRoles()

	messages, err := loadMessages(viper.GetString("messages_dir"))
	if err != nil {
		return err
	}

	srv := server.NewServer(serverConfig(), server.Deps{
		Journals:    store,
		Roles:       roles,
		Files:       store,
		FileService: store,
		Records:     store,
		Generator:   newGenerator(store, viper.GetString("base_url"), messages),
		Logger:      slog.Default(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

// openRoles opens the configured role source. Without one every download
// is refused.
func openRoles() (host.Roles, func(), error) {
	if path := viper.GetString("roles_db"); path != "" {
		db, err := record.OpenRoles(path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Warn("closing role database", "error", err)
			}
		}, nil
	}

	if path := viper.GetString("roles_file"); path != "" {
		roles, err := record.LoadRoles(path)
		if err != nil {
			return nil, nil, err
		}
		return roles, func() {}, nil
	}

	slog.Warn("no roles_db or roles_file configured, downloads will be refused")
	return record.StaticRoles(nil), func() {}, nil
}
