package cmd

import (
	"context"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/nft-fraction-go/fraction"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "print a fraction ledger read over RPC",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireFlag("fraction-mint", fractionMintAddress); err != nil {
			return err
		}
		fractionMint, err := solanago.PublicKeyFromBase58(fractionMintAddress)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		client := fraction.NewClient(cfg.RPCClient(), cfg.CommitmentType())
		log.Debug("fetching fraction", zap.String("endpoint", cfg.RPCEndpoint), zap.Stringer("fraction_mint", fractionMint))
		details, err := client.GetFractionDetailsByMint(ctx, fractionMint)
		if err != nil {
			return err
		}
		writeDetails(cmd, details)
		if ownerAddress == "" {
			return nil
		}
		owner, err := solanago.PublicKeyFromBase58(ownerAddress)
		if err != nil {
			return err
		}
		balance, err := client.GetFractionBalance(ctx, owner, fractionMint)
		if err != nil {
			return err
		}
		writeClaim(cmd, owner, balance, details)
		return nil
	},
}
