package main

import (
	"flag"
	"log"
	"os"
	"strconv"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Addr               string
	DefaultEnvID       string
	CatalogFile        string
	WatchCatalog       bool
	SnapshotDir        string
	SnapshotEverySteps int
	SnapshotSchedule   string
	LogLevel           string
}

// configResolver defines how to resolve a single configuration value from
// CLI flag, environment variable, or default, in that order.
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string)
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{}

	resolvers := []configResolver{
		{
			flagName:    "addr",
			envVarName:  "METABOL_ADDR",
			defaultVal:  ":8080",
			description: "HTTP listen address (e.g. :8080, 0.0.0.0:8080)",
			setter:      func(c *ServerConfig, v string) { c.Addr = v },
		},
		{
			flagName:    "env-id",
			envVarName:  "METABOL_ENV_ID",
			defaultVal:  "default",
			description: "environment ID for the startup catalog",
			setter:      func(c *ServerConfig, v string) { c.DefaultEnvID = v },
		},
		{
			flagName:    "catalog-file",
			envVarName:  "METABOL_CATALOG_FILE",
			defaultVal:  "",
			description: "optional path to a YAML catalog file loaded at startup",
			setter:      func(c *ServerConfig, v string) { c.CatalogFile = v },
		},
		{
			flagName:    "watch-catalog",
			envVarName:  "METABOL_WATCH_CATALOG",
			defaultVal:  "false",
			description: "reload the startup catalog when its file changes",
			setter: func(c *ServerConfig, v string) {
				if b, err := strconv.ParseBool(v); err == nil {
					c.WatchCatalog = b
				} else {
					log.Printf("invalid value for watch-catalog: %s, using false", v)
				}
			},
		},
		{
			flagName:    "snapshot-dir",
			envVarName:  "METABOL_SNAPSHOT_DIR",
			defaultVal:  "./data",
			description: "directory where environment snapshots are stored",
			setter:      func(c *ServerConfig, v string) { c.SnapshotDir = v },
		},
		{
			flagName:    "snapshot-every-steps",
			envVarName:  "METABOL_SNAPSHOT_EVERY_STEPS",
			defaultVal:  "1000",
			description: "write a snapshot every N steps; 0 disables step-based snapshots",
			setter: func(c *ServerConfig, v string) {
				if val, err := strconv.Atoi(v); err == nil {
					c.SnapshotEverySteps = val
				} else {
					log.Printf("invalid value for snapshot-every-steps: %s, using default 1000", v)
					c.SnapshotEverySteps = 1000
				}
			},
		},
		{
			flagName:    "snapshot-schedule",
			envVarName:  "METABOL_SNAPSHOT_SCHEDULE",
			defaultVal:  "",
			description: "cron expression for wall-clock snapshots (e.g. \"0 * * * *\"); empty disables",
			setter:      func(c *ServerConfig, v string) { c.SnapshotSchedule = v },
		},
		{
			flagName:    "log-level",
			envVarName:  "METABOL_LOG_LEVEL",
			defaultVal:  "info",
			description: "log level: debug, info, warn, error",
			setter:      func(c *ServerConfig, v string) { c.LogLevel = v },
		},
	}

	flagVars := make(map[string]*string)
	for _, resolver := range resolvers {
		flagVars[resolver.flagName] = flag.String(resolver.flagName, "", resolver.description)
	}
	flag.Parse()

	for _, resolver := range resolvers {
		var value string
		if *flagVars[resolver.flagName] != "" {
			value = *flagVars[resolver.flagName]
		} else if envValue := os.Getenv(resolver.envVarName); envValue != "" {
			value = envValue
		} else {
			value = resolver.defaultVal
		}
		resolver.setter(&cfg, value)
	}

	return cfg
}
