package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oriontec/mculink/device"
	proto "github.com/oriontec/mculink/protocol"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [on|off]",
	Short: "Set the device's demo toggle and print its acknowledged state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var state byte
		switch args[0] {
		case "on":
			state = 1
		case "off":
			state = 0
		default:
			return fmt.Errorf("expected \"on\" or \"off\", got %q", args[0])
		}

		entry := device.ClientEncoders()[device.CmdSetToggle]
		reply, err := link.sendAndAwait(entry, replyTimeout, proto.Byte(state))
		if err != nil {
			return err
		}
		if len(reply) < 2 || reply[0] != device.RspToggleAck {
			return fmt.Errorf("unexpected reply: % x", reply)
		}
		acked, _, err := proto.DecodeVLQ(reply[1:])
		if err != nil {
			return fmt.Errorf("decoding toggle ack: %w", err)
		}
		if acked != 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "on")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "off")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
