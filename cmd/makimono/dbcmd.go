package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/node"
	"github.com/NethermindEth/makimono/reader"
	"github.com/NethermindEth/makimono/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const outputF = "output"

var outputFormats = []string{"table", "json", "yaml"}

func DBCmd() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database related operations",
		Long:  `This command allows you to inspect a database without serving it.`,
	}

	defaultDBBackend := db.RocksDB
	dbCmd.PersistentFlags().String(dbPathF, defaultDBPath, dbPathUsage)
	dbCmd.PersistentFlags().Var(&defaultDBBackend, dbBackendF, dbBackendUsage)
	dbCmd.AddCommand(DBInfoCmd(), DBColumnsCmd())
	return dbCmd
}

func DBInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Retrieve database information",
		Long:  `This subcommand displays the location, latest block, column families and version of the database.`,
		Args:  cobra.NoArgs,
		RunE:  dbInfo,
	}
	cmd.Flags().StringP(outputF, "o", "table", "Output format. Options: table, json, yaml.")
	return cmd
}

func DBColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the column families of the database",
		Args:  cobra.NoArgs,
		RunE:  dbColumns,
	}
}

func dbInfo(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString(outputF)
	if err != nil {
		return err
	}
	if !utils.AnyOf(output, outputFormats...) {
		return fmt.Errorf("unknown output format %q (known: table, json, yaml)", output)
	}

	store, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := reader.New(store, utils.NewNopLogger()).Stats()
	if err != nil {
		return fmt.Errorf("failed to read database stats: %w", err)
	}

	out := cmd.OutOrStdout()
	switch output {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(stats)
	default:
		renderStats(out, stats)
		return nil
	}
}

func renderStats(w io.Writer, stats *reader.Stats) {
	latest := "none"
	if stats.LatestBlock != nil {
		latest = strconv.FormatUint(*stats.LatestBlock, 10)
	}
	version := "unknown"
	if stats.DBVersion != nil {
		version = fmt.Sprintf("%d (%s)", stats.DBVersion.Number, stats.DBVersion.Source)
	}

	size := "unknown"
	if dirSize, err := utils.DirSize(stats.DBPath); err == nil {
		size = dirSize.String()
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Path", stats.DBPath},
		{"Size", size},
		{"Latest block", latest},
		{"Column families", strconv.Itoa(stats.ColumnCount)},
		{"Version", version},
	})
	table.Render()
}

func dbColumns(cmd *cobra.Command, args []string) error {
	store, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Column family", "Decoded"})
	for _, name := range store.ColumnFamilies() {
		decoded := "no"
		if slices.Contains(db.Columns, db.Column(name)) {
			decoded = "yes"
		}
		table.Append([]string{name, decoded})
	}
	table.Render()
	return nil
}

func openDB(cmd *cobra.Command) (db.Store, error) {
	dbPath, err := cmd.Flags().GetString(dbPathF)
	if err != nil {
		return nil, err
	}

	cfg := &node.Config{DatabasePath: dbPath}
	if err = cfg.DatabaseBackend.Set(cmd.Flag(dbBackendF).Value.String()); err != nil {
		return nil, err
	}

	store, err := node.OpenStore(cfg, utils.NewNopLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return store, nil
}
