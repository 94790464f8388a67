package nftfraction

const (
	// FractionSeed prefixes the ledger address, derived from the vault.
	FractionSeed = "fraction"
	// NftVaultSeed prefixes the vault address, derived from the fraction mint.
	NftVaultSeed = "nft_vault"

	FractionDecimals uint8 = 0
	AssetDecimals    uint8 = 0

	// VaultAssetAmount is what the vault holds once the asset is locked.
	VaultAssetAmount uint64 = 1
)
