// Package cmd implements the cp-zkp-auth CLI: a Cobra root command
// with server, client, and generate subcommands, mirroring the
// single-root-command-plus-one-file-per-subcommand layout.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AINative-studio/ainative-code/internal/logger"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "cp-zkp-auth",
	Short:   "Chaum-Pedersen zero-knowledge password authentication",
	Version: "0.1.0",
	Long: `cp-zkp-auth runs a password-authenticating service based on the
Chaum-Pedersen discrete-logarithm zero-knowledge proof of equality of
exponents: a client proves knowledge of a secret without revealing it,
and the server issues a session identifier on success.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			if err := logger.SetLevel("debug"); err != nil {
				logger.WarnEvent().Err(err).Msg("failed to set debug log level")
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(generateCmd)
}

// initConfig applies the CP env prefix and AutomaticEnv to the global
// viper instance, using the conventional SetEnvPrefix + AutomaticEnv
// initialization idiom. Group parameters are read by config.Loader
// through its own viper instance, which binds the CP_* variables itself.
func initConfig() {
	viper.SetEnvPrefix("CP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// NewRootCmd returns the root command instance, for testing.
func NewRootCmd() *cobra.Command {
	return rootCmd
}
