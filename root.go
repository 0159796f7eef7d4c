package main

import (
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/spf13/cobra"
)

// The bare command starts the server so the lambda runtime, which
// invokes the binary without arguments, still boots the API.
var rootCmd = &cobra.Command{
	Use:   "solana-voting-sample",
	Short: "Append-only voting ledger API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("command failed: %v", err)
	}
}
