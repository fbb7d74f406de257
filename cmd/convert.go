package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	log2 "log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tracelab/workspaces-go/expr"
	"github.com/tracelab/workspaces-go/filters"
	"github.com/tracelab/workspaces-go/log"
)

// Environment variables prefixed with "WS_FILTERS_" can override settings
// e.g. "WS_FILTERS_PRETTY"
const envVarPrefix = "ws_filters"

var cfgFile string
var logger log.Logger

var rootCmd = &cobra.Command{
	Use:   os.Args[0] + " [parse|render] [OPTIONS]",
	Short: "Convert run filter expressions to and from the wire filter tree",
}

var parseCmd = &cobra.Command{
	Use:   "parse [EXPRESSION]",
	Short: "Parse a filter expression string into the wire filter tree JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tree, err := expr.ToFilters(args[0])
		if err != nil {
			logger.Fatal("unable to parse filter expression",
				"expression", args[0],
				"error", err)
		}

		var out []byte
		if viper.GetBool("pretty") {
			out, err = json.MarshalIndent(tree, "", "  ")
		} else {
			out, err = json.Marshal(tree)
		}
		if err != nil {
			logger.Fatal("unable to encode filter tree", "error", err)
		}
		fmt.Println(string(out))
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [JSON]",
	Short: "Render wire filter tree JSON as a filter expression string ('-' reads stdin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]
		if input == "-" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				logger.Fatal("unable to read stdin", "error", err)
			}
			input = string(raw)
		}

		var tree filters.Filters
		if err := json.Unmarshal([]byte(input), &tree); err != nil {
			logger.Fatal("unable to decode filter tree", "error", err)
		}
		fmt.Println(expr.ToExpr(&tree))
	},
}

// Execute runs the filter conversion CLI.
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)
	expr.SetLogger(logger)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.Bool("pretty", false, "indent the JSON output")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(parseCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func initialize() {
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatal("unable to read config file",
			"file", cfgFile,
			"error", err)
	}
}
