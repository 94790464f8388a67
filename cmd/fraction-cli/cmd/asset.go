package cmd

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/krazyTry/nft-fraction-go/fraction"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

var (
	holderAddress string

	seedNftCmd = &cobra.Command{
		Use:   "seed-nft",
		Short: "mint a single-unit asset to a holder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			holder := solanago.NewWallet().PublicKey()
			if holderAddress != "" {
				var err error
				if holder, err = solanago.PublicKeyFromBase58(holderAddress); err != nil {
					return err
				}
			}
			nftMint := solanago.NewWallet().PublicKey()
			ixs, holderAccount, err := fraction.SeedNftInstructions(holder, nftMint)
			if err != nil {
				return err
			}
			tx := runtime.NewTransaction([]solanago.PublicKey{holder, nftMint}, ixs...)
			if err := executor.Execute(cmd.Context(), tx); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "holder:          %s\n", holder)
			fmt.Fprintf(out, "nft mint:        %s\n", nftMint)
			fmt.Fprintf(out, "holder account:  %s\n", holderAccount)
			return nil
		},
	}
)

func init() {
	seedNftCmd.Flags().StringVar(&holderAddress, "holder", "", "holder address (generated when empty)")
}
