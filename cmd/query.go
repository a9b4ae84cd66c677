package cmd

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <addr> <addr>",
	Short: "Checks whether two end systems can exchange data after playing the scenario",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := netip.ParseAddr(args[0])
		if err != nil {
			return err
		}
		b, err := netip.ParseAddr(args[1])
		if err != nil {
			return err
		}
		adcn, err := offline(inspectTicks)
		if err != nil {
			return err
		}
		res, err := adcn.SystemsReachable(a, b)
		if err != nil {
			return err
		}
		for i, n := range adcn.Networks {
			fmt.Printf("network %s: %t\n", n.Id, res[i])
		}
		return nil
	},
	GroupID: "sim",
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Uint64VarP(&inspectTicks, "ticks", "n", 0, "number of ticks to play, overrides the scenario")
}
