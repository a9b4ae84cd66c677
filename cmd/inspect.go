package cmd

import (
	"fmt"
	"log/slog"

	"github.com/encodeous/adcn/core"
	"github.com/spf13/cobra"
)

var inspectTicks uint64

var inspectCmd = &cobra.Command{
	Use:     "inspect",
	Aliases: []string{"i"},
	Short:   "Plays the scenario offline and prints the resulting network state",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := offline(inspectTicks)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return
		}
		fmt.Print(core.Inspect(a))
	},
	GroupID: "sim",
}

// offline plays the scenario without waiting between ticks
func offline(ticks uint64) (*core.Adcn, error) {
	cfg, scn, err := core.LoadAndValidate(configPath, scenarioPath)
	if err != nil {
		return nil, err
	}
	if ticks != 0 {
		scn.Ticks = ticks
	}
	if scn.Ticks == 0 {
		scn.Ticks = 1
	}
	logger, err := core.NewLogger(slog.LevelWarn, "")
	if err != nil {
		return nil, err
	}
	a, err := core.NewAdcn(*cfg, *scn, logger)
	if err != nil {
		return nil, err
	}
	a.Run()
	return a, nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Uint64VarP(&inspectTicks, "ticks", "n", 0, "number of ticks to play, overrides the scenario")
}
