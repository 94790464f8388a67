package metadata

import (
	"context"
	"strings"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/nft-fraction-go/programs/spltoken"
	"github.com/krazyTry/nft-fraction-go/runtime"
)

func TestCreateMetadata(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	e, err := runtime.NewExecutor(runtime.NewMemStore())
	require.NoError(err)
	e.Register(spltoken.ProgramID, spltoken.NewProcessor())
	e.Register(ProgramID, NewProcessor())

	authority := solanago.NewWallet().PublicKey()
	mint := solanago.NewWallet().PublicKey()
	require.NoError(e.Execute(ctx, runtime.NewTransaction(
		[]solanago.PublicKey{mint},
		spltoken.NewInitializeMint2Instruction(0, authority, nil, mint),
	)))

	metadataKey, _, err := DeriveMetadataAddress(mint)
	require.NoError(err)
	create := func(data Data, metadata, signer solanago.PublicKey) error {
		ix, err := NewCreateMetadataInstruction(data, metadata, mint, signer, signer, signer)
		require.NoError(err)
		return e.Execute(ctx, runtime.NewTransaction([]solanago.PublicKey{signer}, ix))
	}
	data := Data{Name: "Fraction", Symbol: "FRAC", Uri: "https://example.com/f.json"}

	err = create(Data{Name: strings.Repeat("x", MaxNameLength+1)}, metadataKey, authority)
	require.ErrorIs(err, ErrNameTooLong)

	err = create(data, solanago.NewWallet().PublicKey(), authority)
	require.ErrorIs(err, ErrAddressMismatch)

	err = create(data, metadataKey, solanago.NewWallet().PublicKey())
	require.ErrorIs(err, ErrMintAuthority)

	require.NoError(create(data, metadataKey, authority))

	acct, err := e.GetAccount(ctx, metadataKey)
	require.NoError(err)
	require.Equal(ProgramID, acct.Owner)
	record, err := ParseMetadata(acct.Data)
	require.NoError(err)
	require.Equal(mint, record.Mint)
	require.Equal(authority, record.UpdateAuthority)
	require.Equal(data, record.Data)

	err = create(data, metadataKey, authority)
	require.ErrorIs(err, runtime.ErrAccountAlreadyExists)
}
