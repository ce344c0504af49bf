package vkbd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/vkbd/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool

	// flags whose value came from the config file or environment
	fromConfig = map[string]bool{}
)

var ctx = logging.PackageCtx("cmd")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vkbd",
	Short: "On-screen keyboard engine",
	Long: `vkbd loads on-screen keyboard layouts, works out where every key sits and
turns taps on the screen into key events for the focused application.
Taps are read as lines of text, key events are written as lines to stdout or
to a serial bridge.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		bindFlags(cmd, args)
		slog.SetDefault(logging.NewLogger(os.Stderr, verbose))
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vkbd.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "If provided, debug output will be shown")

	addKeyboardFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".vkbd" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".vkbd")
	}

	// VKBD_LAYOUT_FILE and friends
	viper.SetEnvPrefix("vkbd")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			createExampleConfig()
		} else {
			slog.ErrorContext(ctx, "Error reading config file", "error", err)
			os.Exit(1)
		}
	}

	slog.DebugContext(ctx, "Config loaded", "file", viper.ConfigFileUsed())
}

func createExampleConfig() {
	exampleConfig := `# vkbd configuration
layout-file = "layouts/us.xml"
width = 800

key-border = 1
key-pad = 2
key-margin = 1
row-spacing = 4
col-spacing = 4

cell-width = 16
cell-height = 24

# momentary, locked or oneshot
modifier-policy = "momentary"

# serial bridge to send key events to; stdout when empty
device = ""
baud = 9600
`
	configPath := "./.vkbd.toml"

	err := os.WriteFile(configPath, []byte(exampleConfig), 0o644)
	if err != nil {
		slog.ErrorContext(ctx, "Error creating example config file", "path", configPath, "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "Example config file created", "path", configPath)
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" {
			return
		}

		// Both "layout-file" and "layoutfile" are accepted; viper does case-insensitive comparisons.
		configName := f.Name
		if !viper.IsSet(configName) {
			configName = strings.ReplaceAll(f.Name, "-", "")
		}

		if !viper.IsSet(configName) {
			return
		}

		val := viper.Get(configName)

		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			slog.ErrorContext(ctx, "Error setting flag from config", "flag", f.Name, "error", err)
			panic(err)
		}

		fromConfig[f.Name] = true

		slog.DebugContext(ctx, "Flag set to config value", "flag", f.Name, "value", val)
	})
}
