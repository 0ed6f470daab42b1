package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chop-dbhi/typeprofiler"
	"github.com/chop-dbhi/typeprofiler/profiler"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("typeprofiler failed")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "typeprofiler",
		Short: "Infer column types and load them into Postgres.",
	}

	root.PersistentFlags().Int("sample-size", 20, "Samples to accumulate before locking in a type.")
	root.PersistentFlags().Int("max-cardinality", 500, "Cardinality cap; distinct values beyond it are not tracked.")
	root.PersistentFlags().Int("max-outliers", 50, "Outlier map cap.")
	root.PersistentFlags().String("resolution-mode", "auto", "Ambiguous date/month resolution: auto, day-first, month-first, none.")
	root.PersistentFlags().String("locale", "en-US", "Locale for decimal/grouping symbols and month names.")
	root.PersistentFlags().String("delimiter", ",", "CSV delimiter.")
	root.PersistentFlags().Bool("no-header", false, "Input has no CSV header row.")
	root.PersistentFlags().String("config", "", "Path to a typeprofiler.yaml config file.")

	viper.BindPFlags(root.PersistentFlags())
	viper.SetEnvPrefix("typeprofiler")
	viper.AutomaticEnv()

	root.AddCommand(newProfileCmd(), newValidateCmd(), newLoadCmd())
	return root
}

func initViperConfig() {
	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			log.WithError(err).Warn("could not read config file")
		}
	}
}

func requestFromFlags(path string) *typeprofiler.Request {
	return &typeprofiler.Request{
		Path:      path,
		CSV:       true,
		Delimiter: viper.GetString("delimiter"),
		Header:    !viper.GetBool("no-header"),

		SampleSize:     viper.GetInt("sample-size"),
		MaxCardinality: viper.GetInt("max-cardinality"),
		MaxOutliers:    viper.GetInt("max-outliers"),
		ResolutionMode: resolutionModeFromFlag(viper.GetString("resolution-mode")),
		Locale:         viper.GetString("locale"),
	}
}

func resolutionModeFromFlag(s string) profiler.ResolutionMode {
	switch s {
	case "day-first":
		return profiler.DayFirst
	case "month-first":
		return profiler.MonthFirst
	case "none":
		return profiler.None
	default:
		return profiler.Auto
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile FILE",
		Short: "Profile a CSV file's columns and print the inferred types as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initViperConfig()

			r := requestFromFlags(args[0])
			prof, err := typeprofiler.Profile(r)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(prof)
		},
	}
}

func newValidateCmd() *cobra.Command {
	var minConfidence float64

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Profile a file and fail if any column's confidence falls below a threshold.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initViperConfig()

			r := requestFromFlags(args[0])
			prof, err := typeprofiler.Profile(r)
			if err != nil {
				return err
			}

			var failed []string
			for name, f := range prof.Fields {
				if f.Confidence < minConfidence {
					failed = append(failed, fmt.Sprintf("%s (%s, confidence %.2f)", name, f.SemanticType, f.Confidence))
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("columns below confidence threshold %.2f: %v", minConfidence, failed)
			}

			log.WithField("fields", len(prof.Fields)).Info("validation passed")
			return nil
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.9, "Minimum per-column confidence required.")
	return cmd
}

func newLoadCmd() *cobra.Command {
	var (
		database    string
		schemaName  string
		tableName   string
		appendTable bool
		cstore      bool
	)

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Profile a file and load it into a Postgres table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initViperConfig()

			r := requestFromFlags(args[0])
			r.Database = database
			r.Schema = schemaName
			r.Table = tableName
			r.AppendTable = appendTable
			r.CStore = cstore

			n, err := typeprofiler.Import(r)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{"rows": n, "schema": r.Schema, "table": r.Table}).Info("load complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "Database URL.")
	cmd.Flags().StringVar(&schemaName, "schema", "public", "Schema name.")
	cmd.Flags().StringVar(&tableName, "table", "", "Table name, defaults to the file's base name.")
	cmd.Flags().BoolVar(&appendTable, "append", false, "Append to an existing table instead of replacing it.")
	cmd.Flags().BoolVar(&cstore, "cstore", false, "Create a cstore foreign table instead of a regular table.")
	cmd.MarkFlagRequired("db")

	return cmd
}
