package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oriontec/mculink/device"
)

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Ask the device to identify itself",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := device.ClientEncoders()[device.CmdGetIdentifyInfo]

		reply, err := link.sendAndAwait(entry, replyTimeout)
		if err != nil {
			return err
		}
		if len(reply) < 2 || reply[0] != device.RspIdentifyInfo {
			return fmt.Errorf("unexpected reply: % x", reply)
		}
		n := int(reply[1])
		fmt.Fprintln(cmd.OutOrStdout(), string(reply[2:2+n]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}
