package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AINative-studio/ainative-code/internal/config"
	"github.com/AINative-studio/ainative-code/internal/group"
	"github.com/AINative-studio/ainative-code/internal/logger"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fresh Chaum-Pedersen group parameters",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output path for the parameter file (stdout if omitted)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, err := group.Generate(group.DefaultGenerationAttempts)
	if err != nil {
		return err
	}

	if err := config.Save(params, generateOut); err != nil {
		return err
	}

	if generateOut != "" {
		logger.InfoWithFields("group parameters written", map[string]interface{}{"path": generateOut})
	}
	return nil
}
