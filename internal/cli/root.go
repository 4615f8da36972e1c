// Package cli wires configuration, logging and the API client into the
// factguard commands.
package cli

import (
	"fmt"

	"github.com/abelbrown/factguard/internal/config"
	"github.com/abelbrown/factguard/internal/factcheck"
	"github.com/abelbrown/factguard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = config.NewViper()
	cfg     *config.Config
)

// rootCmd launches the interactive client.
var rootCmd = &cobra.Command{
	Use:   "factguard",
	Short: "FactGuard - AI-powered fact-checking assistant",
	Long: `FactGuard sends text or a URL to a fact-checking service, lets you review
the claims it extracts, and shows the verdict with the sources behind it.

Run without arguments for the interactive client, or use "factguard check"
for a one-shot check from scripts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cfg)
	},
}

// versionCmd prints the client version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Skip config loading so version works with a broken config file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "factguard v%s\n", logging.Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.factguard/config.yaml)")
	flags.String("api-url", factcheck.DefaultBaseURL, "fact-checking service base URL")
	flags.Duration("timeout", 0, "per-request timeout, 0 for none (default from config: 2m)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	bindFlag(v, "api.base_url", rootCmd, "api-url")
	bindFlag(v, "api.timeout", rootCmd, "timeout")
	bindFlag(v, "log.level", rootCmd, "log-level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
}

// bindFlag ties a persistent flag to a config key. Viper only lets the flag
// win when it was set on the command line.
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
}

// newClient builds the API client from config.
func newClient(c *config.Config) *factcheck.Client {
	return factcheck.NewClient(c.API.BaseURL,
		factcheck.WithTimeout(c.API.Timeout),
		factcheck.WithRateLimit(c.API.RateLimit),
	)
}
