package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oriontec/mculink/device"
	proto "github.com/oriontec/mculink/protocol"
)

var echoCmd = &cobra.Command{
	Use:   "echo [words...]",
	Short: "Send an echo command and print the device's reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		entry := device.ClientEncoders()[device.CmdEcho]

		reply, err := link.sendAndAwait(entry, replyTimeout, proto.Buf([]byte(text)))
		if err != nil {
			return err
		}
		if len(reply) < 2 || reply[0] != device.RspEcho {
			return fmt.Errorf("unexpected reply: % x", reply)
		}
		n := int(reply[1])
		fmt.Fprintln(cmd.OutOrStdout(), string(reply[2:2+n]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(echoCmd)
}
