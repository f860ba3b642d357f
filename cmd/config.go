package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/jatstemplate/server"
)

// Defaults for the serve command.
const (
	defaultAddress         = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

func init() {
	viper.SetDefault("server.address", defaultAddress)
	viper.SetDefault("server.read_timeout", defaultReadTimeout)
	viper.SetDefault("server.write_timeout", defaultWriteTimeout)
	viper.SetDefault("server.idle_timeout", defaultIdleTimeout)
	viper.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
}

// mustBind binds a flag to a config key. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// serverConfig reads the server section of the configuration.
func serverConfig() server.Config {
	return server.Config{
		Address:         viper.GetString("server.address"),
		ReadTimeout:     viper.GetDuration("server.read_timeout"),
		WriteTimeout:    viper.GetDuration("server.write_timeout"),
		IdleTimeout:     viper.GetDuration("server.idle_timeout"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		APIKeySecret:    viper.GetString("security.api_key_secret"),
		TrustUserHeader: viper.GetBool("server.trust_user_header"),
	}
}
