// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/study-planner/internal/fetch"
	"github.com/pdiddy/study-planner/internal/httputil"
	"github.com/pdiddy/study-planner/pkg/types"
)

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("study-planner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "study-planner"))
		}
	}

	viper.SetEnvPrefix("STUDY_PLANNER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.timeout", httputil.DefaultTimeout)
	v.SetDefault("fetch.user_agent", httputil.DefaultUserAgent)
	v.SetDefault("fetch.base_url", fetch.DefaultBaseURL)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", defaultHistoryPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("pager", "")
}

// defaultHistoryPath follows the XDG data directory convention.
func defaultHistoryPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "study-planner", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".study-planner", "history.db")
	}
	return filepath.Join(home, ".local", "share", "study-planner", "history.db")
}

// loadConfig decodes the merged flag, env, file and default settings.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}
