package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	scenarioPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "adcn",
	Short: "Avionics Data Communication Network simulator",
	Long: `adcn simulates the redundant AFDX networks of an avionics data communication network.
Each tick it samples the power and failure state of every switch and keeps a routing table of which switches can reach each other.`,
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
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cfg",
		Title: "Configuration Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "network layout, the built-in A380 layout if empty")
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario to play, all buses powered if empty")
}
