package main

import (
	"fmt"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/spf13/cobra"
)

var (
	deriveKind     string
	derivePollID   uint64
	deriveIdentity string
)

func init() {
	deriveCmd.Flags().StringVar(&deriveKind, "kind", "poll", "record kind: poll, candidate or vote")
	deriveCmd.Flags().Uint64Var(&derivePollID, "poll-id", 0, "numeric poll id")
	deriveCmd.Flags().StringVar(&deriveIdentity, "identity", "", "candidate or voter identity")
	rootCmd.AddCommand(deriveCmd)
}

// derive computes record addresses offline, handy for checking what
// the API would write before calling it.
var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the storage address of a record",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := deriveAddress()
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}

func deriveAddress() (address.Address, error) {
	switch deriveKind {
	case "poll":
		return address.ForPoll(derivePollID)
	case "candidate":
		identity, err := address.ParseIdentity(deriveIdentity)
		if err != nil {
			return "", err
		}
		return address.ForCandidate(derivePollID, identity)
	case "vote":
		identity, err := address.ParseIdentity(deriveIdentity)
		if err != nil {
			return "", err
		}
		return address.ForVote(derivePollID, identity)
	default:
		return "", fmt.Errorf("unknown record kind: %s", deriveKind)
	}
}
