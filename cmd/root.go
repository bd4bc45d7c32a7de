package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fieldgen/pkg/game/locale"
	"fieldgen/pkg/game/renderer"
)

var (
	verbose bool
	lang    string

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "fieldgen",
	Short: "Generate fields for the robot localization exercise",
	Long: `fieldgen builds randomized square fields with racks, internal walls and
a border, all free cells connected, plus a set of robot start poses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := locale.Use(lang); err != nil {
			return err
		}
		renderer.InitColorsForStdout()

		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log generation stages to stderr")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", locale.DefaultLanguage, "Message language (en, ru)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		renderer.Out = os.Stderr
		renderer.PrintLine("ERROR", err)
		os.Exit(1)
	}
}
