package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/mediacache"
)

var rootCmd = &cobra.Command{
	Use:          "mediacache",
	Short:        "Checksum, perceptual hash and location cache for media libraries",
	Long:         "CLI for inspecting and updating the files a media organizer keeps about its library.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/mediacache/config.yaml)")
	rootCmd.PersistentFlags().String("app-dir", "", "application directory (default: ~/.local/share/mediacache)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("app_dir", rootCmd.PersistentFlags().Lookup("app-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MEDIACACHE")
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	viper.ReadInConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_dir", mediacache.DefaultDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("hash_size", mediacache.DefaultHashSize)
	v.SetDefault("block_size", mediacache.DefaultBlockSize)
	v.SetDefault("threshold", 3000.0)
	v.SetDefault("concurrency", 4)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mediacache")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "mediacache")
	}
	return ".mediacache"
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(viper.GetString("log_level")); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithError(err).Warn("unknown log level, using info")
	}
	return logger
}

// openStore opens the configured application directory. The returned close
// function must be deferred by the caller.
func openStore() (*mediacache.Store, func() error, error) {
	s, err := mediacache.Open(viper.GetString("app_dir"), mediacache.WithLogger(newLogger()))
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
