package main

import (
	"fmt"
	"strings"

	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/node"
	"github.com/NethermindEth/makimono/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const greeting = `
               _    _
 _ __  __ _ __| |__(_)_ __  ___ _ _  ___
| '  \/ _' / /| / /| | '  \/ _ \ ' \/ _ \
|_|_|_\__,_\_\|_\_\|_|_|_|_\___/_||_\___/

Makimono %s is a read-only explorer for Madara Starknet databases.

`

const (
	configF         = "config"
	logLevelF       = "log-level"
	colourF         = "colour"
	dbPathF         = "db-path"
	dbBackendF      = "db-backend"
	dbCacheSizeF    = "db-cache-size"
	dbMaxOpenFilesF = "db-max-open-files"
	blockCacheSizeF = "block-cache-size"
	httpHostF       = "http-host"
	httpPortF       = "http-port"
	corsOriginsF    = "cors-origins"
	metricsF        = "metrics"
	metricsPortF    = "metrics-port"

	defaultConfig         = ""
	defaultColour         = true
	defaultDBPath         = ""
	defaultDBCacheSize    = uint(1024)
	defaultDBMaxOpenFiles = 0
	defaultBlockCacheSize = 1024
	defaultHTTPHost       = "localhost"
	defaultHTTPPort       = uint16(8080)
	defaultMetrics        = false
	defaultMetricsPort    = uint16(9090)

	configFlagUsage     = "The YAML configuration file."
	logLevelFlagUsage   = "Options: debug, info, warn, error, fatal."
	colourUsage         = "Use `--colour=false` command to disable colourized outputs (ANSI Escape Codes)."
	dbPathUsage         = "Location of the node database, or of the node base path holding it under db/."
	dbBackendUsage      = "Storage engine the database was written with. Options: rocksdb, pebble."
	dbCacheSizeUsage    = "Determines the amount of memory (in megabytes) allocated for caching data in the database."
	dbMaxOpenFilesUsage = "Maximum number of files the database keeps open. Zero leaves the engine default."
	blockCacheSizeUsage = "Number of decoded blocks kept in memory. Zero disables the cache."
	httpHostUsage       = "The interface on which the HTTP API and metrics servers listen."
	httpPortUsage       = "The port on which the HTTP API listens for requests."
	corsOriginsUsage    = "Origins allowed to query the HTTP API from a browser. Empty allows any origin."
	metricsUsage        = "Enables the Prometheus metrics endpoint on the metrics port."
	metricsPortUsage    = "The port on which the Prometheus endpoint listens."
)

// envPrefix is the prefix of the environment variables overriding flags, so
// --db-path is also read from MAKIMONO_DB_PATH.
const envPrefix = "MAKIMONO"

func NewCmd(newNodeFn node.NewFn) *cobra.Command {
	var cfgFile string

	makimonoCmd := &cobra.Command{
		Use:     "makimono",
		Short:   "Read-only explorer for Madara Starknet databases.",
		Version: Version,
		Args:    cobra.NoArgs,
	}

	defaultLogLevel := utils.NewLogLevel(utils.INFO)
	defaultDBBackend := db.RocksDB

	makimonoCmd.Flags().StringVar(&cfgFile, configF, defaultConfig, configFlagUsage)
	makimonoCmd.Flags().Var(defaultLogLevel, logLevelF, logLevelFlagUsage)
	makimonoCmd.Flags().Bool(colourF, defaultColour, colourUsage)
	makimonoCmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	makimonoCmd.Flags().Var(&defaultDBBackend, dbBackendF, dbBackendUsage)
	makimonoCmd.Flags().Uint(dbCacheSizeF, defaultDBCacheSize, dbCacheSizeUsage)
	makimonoCmd.Flags().Int(dbMaxOpenFilesF, defaultDBMaxOpenFiles, dbMaxOpenFilesUsage)
	makimonoCmd.Flags().Int(blockCacheSizeF, defaultBlockCacheSize, blockCacheSizeUsage)
	makimonoCmd.Flags().String(httpHostF, defaultHTTPHost, httpHostUsage)
	makimonoCmd.Flags().Uint16(httpPortF, defaultHTTPPort, httpPortUsage)
	makimonoCmd.Flags().StringSlice(corsOriginsF, nil, corsOriginsUsage)
	makimonoCmd.Flags().Bool(metricsF, defaultMetrics, metricsUsage)
	makimonoCmd.Flags().Uint16(metricsPortF, defaultMetricsPort, metricsPortUsage)

	makimonoCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v := viper.New()
		if cfgFile != "" {
			v.SetConfigType("yaml")
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return err
			}
		}

		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		cfg := new(node.Config)
		if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		))); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), greeting, Version); err != nil {
			return err
		}

		n, err := newNodeFn(cfg, Version)
		if err != nil {
			return err
		}
		return n.Run(cmd.Context())
	}

	makimonoCmd.AddCommand(DBCmd())
	return makimonoCmd
}
