package cmd

import (
	"log/slog"

	"github.com/encodeous/adcn/core"
	"github.com/encodeous/adcn/state"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the network in real time",
	Long:  `This ticks the network at the scenario's interval until the scenario completes or the process is interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, scn, err := core.LoadAndValidate(configPath, scenarioPath)
		if err != nil {
			panic(err)
		}

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}
		logPath, _ := cmd.Flags().GetString("log")
		logger, err := core.NewLogger(level, logPath)
		if err != nil {
			panic(err)
		}

		err = core.Start(*cfg, *scn, logger, nil)
		if err != nil {
			panic(err)
		}
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().StringP("log", "l", "", "Also write logs to this file")
	runCmd.Flags().BoolVarP(&state.DBG_log_route_table, "ltable", "t", false, "Outputs route table to the console")
	runCmd.Flags().BoolVarP(&state.DBG_log_route_changes, "lrchange", "g", false, "Outputs route changes to the console")
	runCmd.Flags().BoolVarP(&state.DBG_log_signals, "lsignal", "p", false, "Outputs published signals to the console")
	runCmd.Flags().BoolVarP(&state.DBG_debug, "debug", "d", false, "Serves metrics on "+state.DebugAddr)
}
