package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/cli/migrate"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "realnext",
		Short: "RealNext - multi-tenant authorization and entitlement service",
		Long:  `RealNext provides tenant-scoped authorization, subscription entitlements, usage metering, and billing for the RealNext CRM platform.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
