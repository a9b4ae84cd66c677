package cmd

import (
	"github.com/encodeous/adcn/core"
	"github.com/encodeous/adcn/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validates the layout and scenario and prints them back",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, scn, err := core.LoadAndValidate(configPath, scenarioPath)
		if err != nil {
			panic(err)
		}

		cfgYaml, err := yaml.Marshal(struct {
			Config   *state.AdcnCfg
			Scenario *state.ScenarioCfg
		}{cfg, scn})
		if err != nil {
			panic(err)
		}

		println("Configuration is valid")
		println(string(cfgYaml))
	},
	GroupID: "cfg",
}

var defaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Prints the built-in A380 network layout",
	Run: func(cmd *cobra.Command, args []string) {
		cfgYaml, err := yaml.Marshal(state.DefaultConfig())
		if err != nil {
			panic(err)
		}
		cmd.Print(string(cfgYaml))
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(defaultCmd)
}
