// @title Voting Ledger API
// @version 1.0
// @description Append-only ledger API for polls, candidates and vote records stored at derived addresses

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token

// @securityDefinitions.apikey SignerKey
// @in header
// @name x-signer-key
package main

import (
	_ "github.com/Ham3798/solana-voting-sample/docs"

	"github.com/Ham3798/solana-voting-sample/logging"
)

func main() {
	logging.BoostrapLogger()

	Execute()
}
