package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"toolbelt/internal/storage"
)

var cfgFile string

// log is the application logger. It is configured in initConfig, which cobra
// runs before any command body.
var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Everyday utilities in one binary",
	Long: `Toolbelt bundles small everyday utilities into one binary:
- password generation and strength scoring
- local, external and remote host information
- media and file downloads (YouTube, HTTP, TFTP)
- image compression, resizing and conversion
- system resource monitoring
- file backup, cleanup and organization with a task history
- text statistics, entities, sentiment and summaries
- QR code generation`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./toolbelt.yaml)")

	rootCmd.PersistentFlags().String("data-dir", "", "data directory for the task history database (default ~/.toolbelt)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "log raw JSON instead of console output")

	// Database flags (PostgreSQL - if not set, SQLite is used)
	rootCmd.PersistentFlags().String("db-host", "", "PostgreSQL host (if empty, uses SQLite)")
	rootCmd.PersistentFlags().Int("db-port", 5432, "PostgreSQL port")
	rootCmd.PersistentFlags().String("db-user", "toolbelt", "PostgreSQL user")
	rootCmd.PersistentFlags().String("db-password", "", "PostgreSQL password")
	rootCmd.PersistentFlags().String("db-name", "toolbelt", "PostgreSQL database name")
	rootCmd.PersistentFlags().String("db-sslmode", "disable", "PostgreSQL SSL mode")

	// Bind flags to viper
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("db.host", rootCmd.PersistentFlags().Lookup("db-host"))
	viper.BindPFlag("db.port", rootCmd.PersistentFlags().Lookup("db-port"))
	viper.BindPFlag("db.user", rootCmd.PersistentFlags().Lookup("db-user"))
	viper.BindPFlag("db.password", rootCmd.PersistentFlags().Lookup("db-password"))
	viper.BindPFlag("db.name", rootCmd.PersistentFlags().Lookup("db-name"))
	viper.BindPFlag("db.sslmode", rootCmd.PersistentFlags().Lookup("db-sslmode"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "toolbelt"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("toolbelt")
	}

	viper.SetEnvPrefix("TOOLBELT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	cfgErr := viper.ReadInConfig()

	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if viper.GetBool("log_json") {
		out = os.Stderr
	}
	log = zerolog.New(out).Level(level).With().Timestamp().Logger()

	if cfgErr == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// dataDir returns the directory holding toolbelt's local state, creating it
// when missing.
func dataDir() (string, error) {
	dir := viper.GetString("data_dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".toolbelt")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// openStorage opens the task history catalog: PostgreSQL when db.host is
// configured, SQLite in the data directory otherwise.
func openStorage() (storage.Storage, error) {
	if host := viper.GetString("db.host"); host != "" {
		return storage.NewPostgresStore(&storage.Config{
			Host:     host,
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		})
	}

	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(dir)
}

// openCatalog opens the history catalog for best-effort recording. History
// is an extra: when the catalog cannot be opened the command still runs.
func openCatalog() storage.Storage {
	store, err := openStorage()
	if err != nil {
		log.Warn().Err(err).Msg("task history unavailable")
		return nil
	}
	return store
}
