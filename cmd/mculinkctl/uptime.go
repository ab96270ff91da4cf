package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oriontec/mculink/device"
	proto "github.com/oriontec/mculink/protocol"
)

var uptimeCmd = &cobra.Command{
	Use:   "uptime",
	Short: "Ask the device how long it has been running",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := device.ClientEncoders()[device.CmdGetUptime]

		reply, err := link.sendAndAwait(entry, replyTimeout)
		if err != nil {
			return err
		}
		if len(reply) < 2 || reply[0] != device.RspUptime {
			return fmt.Errorf("unexpected reply: % x", reply)
		}
		seconds, _, err := proto.DecodeVLQ(reply[1:])
		if err != nil {
			return fmt.Errorf("decoding uptime: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), time.Duration(seconds)*time.Second)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uptimeCmd)
}
