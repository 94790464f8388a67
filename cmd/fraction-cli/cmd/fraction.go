package cmd

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/krazyTry/nft-fraction-go/fraction"
	nftfraction "github.com/krazyTry/nft-fraction-go/nft_fraction"
	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

var (
	userAddress         string
	nftMintAddress      string
	fractionMintAddress string
	ownerAddress        string
	shares              uint64
	amount              uint64
	name                string
	symbol              string
	uri                 string

	fractionalizeCmd = &cobra.Command{
		Use:   "fractionalize",
		Short: "lock an asset and create its fraction ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("user", userAddress); err != nil {
				return err
			}
			if err := requireFlag("nft-mint", nftMintAddress); err != nil {
				return err
			}
			user, err := solanago.PublicKeyFromBase58(userAddress)
			if err != nil {
				return err
			}
			nftMint, err := solanago.PublicKeyFromBase58(nftMintAddress)
			if err != nil {
				return err
			}
			userNft, err := spltoken.FindAssociatedTokenAddress(user, nftMint, spltoken.ProgramID)
			if err != nil {
				return err
			}
			fractionMint := solanago.NewWallet().PublicKey()
			ix, err := fraction.FractionalizeNftInstruction(user, nftMint, userNft, fractionMint, shares, name, symbol, uri)
			if err != nil {
				return err
			}
			if err := executor.Execute(cmd.Context(), runtime.NewTransaction([]solanago.PublicKey{user, fractionMint}, ix)); err != nil {
				return err
			}
			derived, err := nftfraction.DeriveFractionAccounts(fractionMint)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fraction mint:     %s\n", fractionMint)
			fmt.Fprintf(out, "fraction account:  %s\n", derived.Fraction)
			fmt.Fprintf(out, "nft vault:         %s\n", derived.Vault)
			return nil
		},
	}

	mintCmd = &cobra.Command{
		Use:   "mint",
		Short: "mint fraction shares to a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("user", userAddress); err != nil {
				return err
			}
			if err := requireFlag("fraction-mint", fractionMintAddress); err != nil {
				return err
			}
			user, err := solanago.PublicKeyFromBase58(userAddress)
			if err != nil {
				return err
			}
			fractionMint, err := solanago.PublicKeyFromBase58(fractionMintAddress)
			if err != nil {
				return err
			}
			ix, err := fraction.MintFractionInstruction(user, fractionMint, amount)
			if err != nil {
				return err
			}
			if err := executor.Execute(cmd.Context(), runtime.NewTransaction([]solanago.PublicKey{user}, ix)); err != nil {
				return err
			}
			return printDetails(cmd, fraction.NewLocalState(store), fractionMint, user)
		},
	}

	showCmd = &cobra.Command{
		Use:   "show",
		Short: "print a fraction ledger from the local store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("fraction-mint", fractionMintAddress); err != nil {
				return err
			}
			fractionMint, err := solanago.PublicKeyFromBase58(fractionMintAddress)
			if err != nil {
				return err
			}
			var owner solanago.PublicKey
			if ownerAddress != "" {
				if owner, err = solanago.PublicKeyFromBase58(ownerAddress); err != nil {
					return err
				}
			}
			return printDetails(cmd, fraction.NewLocalState(store), fractionMint, owner)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{fractionalizeCmd, mintCmd} {
		c.Flags().StringVar(&userAddress, "user", "", "caller address, treated as signed by the local runtime")
	}
	fractionalizeCmd.Flags().StringVar(&nftMintAddress, "nft-mint", "", "mint of the asset to lock")
	fractionalizeCmd.Flags().Uint64Var(&shares, "shares", 0, "authorized shares")
	fractionalizeCmd.Flags().StringVar(&name, "name", "", "fraction token name")
	fractionalizeCmd.Flags().StringVar(&symbol, "symbol", "", "fraction token symbol")
	fractionalizeCmd.Flags().StringVar(&uri, "uri", "", "fraction token metadata uri")

	for _, c := range []*cobra.Command{mintCmd, showCmd, fetchCmd} {
		c.Flags().StringVar(&fractionMintAddress, "fraction-mint", "", "fraction mint address")
	}
	mintCmd.Flags().Uint64Var(&amount, "amount", 0, "shares to mint")
	for _, c := range []*cobra.Command{showCmd, fetchCmd} {
		c.Flags().StringVar(&ownerAddress, "owner", "", "print the claim of this holder")
	}
}

func printDetails(cmd *cobra.Command, state *fraction.LocalState, fractionMint, owner solanago.PublicKey) error {
	ctx := cmd.Context()
	details, err := state.GetFractionDetailsByMint(ctx, fractionMint)
	if err != nil {
		return err
	}
	writeDetails(cmd, details)
	if owner.IsZero() {
		return nil
	}
	balance, err := state.GetFractionBalance(ctx, owner, fractionMint)
	if err != nil {
		return err
	}
	writeClaim(cmd, owner, balance, details)
	return nil
}

func writeDetails(cmd *cobra.Command, details *fraction.FractionDetails) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "asset mint:         %s\n", details.AssetMint)
	fmt.Fprintf(out, "vault:              %s\n", details.Vault)
	fmt.Fprintf(out, "fraction mint:      %s\n", details.FractionMint)
	fmt.Fprintf(out, "authorized shares:  %d\n", details.AuthorizedShares)
	fmt.Fprintf(out, "issued shares:      %d (%s%%)\n", details.IssuedShares, fraction.IssuedRatio(details).Shift(2).StringFixed(2))
	fmt.Fprintf(out, "state:              %s\n", nftfraction.StateOf(details))
}

func writeClaim(cmd *cobra.Command, owner solanago.PublicKey, balance uint64, details *fraction.FractionDetails) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "holder:             %s\n", owner)
	fmt.Fprintf(out, "balance:            %d\n", balance)
	fmt.Fprintf(out, "claim:              %s%%\n", fraction.ClaimPercent(balance, details).StringFixed(2))
}
