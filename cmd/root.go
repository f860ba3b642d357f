// Package cmd provides CLI commands for jatstemplate.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// parseLevel maps a LOG_LEVEL value to a slog level. Unknown values are INFO.
func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
	slog.SetDefault(slog.New(handler))
}

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jatstemplate",
	Short: "Render journal articles as JATS XML",
	Long: `jatstemplate renders journal article records as JATS 1.2 Journal Publishing
XML and serves the authenticated download endpoint for production-ready files
linked from that XML.

Records are YAML files holding the journal, section, issue and submission of
one article, plus the submission's stored files.

Examples:
  jatstemplate render article.yaml --pretty
  jatstemplate render -o article.xml --base-url https://journals.example.org/index.php < article.yaml
  jatstemplate serve --records-dir records --files-dir files --roles-db roles.db
  jatstemplate parsers`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./jatstemplate.yaml or ~/.config/jatstemplate/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL of the journal site, used for self-uri and download links")
	rootCmd.PersistentFlags().String("files-dir", ".", "Directory holding the stored files named in records")
	mustBind("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	rootCmd.PersistentFlags().String("messages-dir", "", "Directory of message YAML files merged over the built-in messages")
	mustBind("files_dir", rootCmd.PersistentFlags().Lookup("files-dir"))
	mustBind("messages_dir", rootCmd.PersistentFlags().Lookup("messages-dir"))

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(parsersCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("jatstemplate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "jatstemplate"))
		}
	}

	viper.SetEnvPrefix("JATSTEMPLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		slog.Warn("reading config file", "path", cfgFile, "error", err)
	}
}
