package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDevicesCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List execution backend devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			client, err := buildBackend(cfg, newAppLogger(cfg))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			devices, err := client.Devices(ctx)
			if err != nil {
				return fmt.Errorf("list devices: %w", err)
			}
			if len(devices) == 0 {
				fmt.Println("No devices available.")
				return nil
			}

			header := color.New(color.Bold)
			header.Printf("%-28s %-32s %-12s %-8s %s\n", "ID", "NAME", "PROVIDER", "QUBITS", "STATUS")
			online := color.New(color.FgGreen)
			offline := color.New(color.FgRed)
			for _, device := range devices {
				fmt.Printf("%-28s %-32s %-12s %-8d ", device.ID, device.Name, device.Provider, device.Qubits)
				if device.Status == "ONLINE" {
					online.Println(device.Status)
				} else {
					offline.Println(device.Status)
				}
			}
			return nil
		},
	}
	return cmd
}
