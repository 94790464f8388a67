package nftfraction

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

var ErrInvalidInstructionData = errors.New("unexpected instruction data")

var (
	Instruction_FractionalizeNft = InstructionDiscriminator("fractionalize_nft")
	Instruction_MintFraction     = InstructionDiscriminator("mint_fraction")
)

func InstructionDiscriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

// FractionalizeNftArgs are the arguments of fractionalize_nft.
type FractionalizeNftArgs struct {
	SharesAmount uint64
	Name         string
	Symbol       string
	Uri          string
}

// MintFractionArgs are the arguments of mint_fraction.
type MintFractionArgs struct {
	ShareAmount uint64
}

// Account indexes of fractionalize_nft.
const (
	FractionalizeNftUser = iota
	FractionalizeNftFractionAccount
	FractionalizeNftNftVault
	FractionalizeNftNftMint
	FractionalizeNftUserNftAccount
	FractionalizeNftFractionMint
	FractionalizeNftFractionMetadata
	FractionalizeNftTokenProgram
	FractionalizeNftTokenMetadataProgram
	FractionalizeNftSystemProgram
	FractionalizeNftAccountsLen
)

// Account indexes of mint_fraction.
const (
	MintFractionUser = iota
	MintFractionFractionAccount
	MintFractionNftVault
	MintFractionFractionMint
	MintFractionUserTokenAccount
	MintFractionTokenProgram
	MintFractionAtaProgram
	MintFractionSystemProgram
	MintFractionAccountsLen
)

func encodeInstruction(discriminator [8]byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator[:])
	if err := binary.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func NewFractionalizeNftInstruction(
	// Params:
	args FractionalizeNftArgs,

	// Accounts:
	user solanago.PublicKey,
	fractionAccount solanago.PublicKey,
	nftVault solanago.PublicKey,
	nftMint solanago.PublicKey,
	userNftAccount solanago.PublicKey,
	fractionMint solanago.PublicKey,
	fractionMetadata solanago.PublicKey,
	tokenProgram solanago.PublicKey,
	tokenMetadataProgram solanago.PublicKey,
	systemProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_FractionalizeNft, args)
	if err != nil {
		return nil, fmt.Errorf("encode fractionalize_nft: %w", err)
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(user, true, true),
		solanago.NewAccountMeta(fractionAccount, true, false),
		solanago.NewAccountMeta(nftVault, true, false),
		solanago.NewAccountMeta(nftMint, false, false),
		solanago.NewAccountMeta(userNftAccount, true, false),
		solanago.NewAccountMeta(fractionMint, true, true),
		solanago.NewAccountMeta(fractionMetadata, true, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(tokenMetadataProgram, false, false),
		solanago.NewAccountMeta(systemProgram, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

func NewMintFractionInstruction(
	// Params:
	shareAmount uint64,

	// Accounts:
	user solanago.PublicKey,
	fractionAccount solanago.PublicKey,
	nftVault solanago.PublicKey,
	fractionMint solanago.PublicKey,
	userTokenAccount solanago.PublicKey,
	tokenProgram solanago.PublicKey,
	ataProgram solanago.PublicKey,
	systemProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_MintFraction, MintFractionArgs{ShareAmount: shareAmount})
	if err != nil {
		return nil, fmt.Errorf("encode mint_fraction: %w", err)
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(user, true, true),
		solanago.NewAccountMeta(fractionAccount, true, false),
		solanago.NewAccountMeta(nftVault, false, false),
		solanago.NewAccountMeta(fractionMint, true, false),
		solanago.NewAccountMeta(userTokenAccount, true, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(ataProgram, false, false),
		solanago.NewAccountMeta(systemProgram, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// DecodeInstruction splits instruction data into its discriminator and the
// decoded arguments (*FractionalizeNftArgs or *MintFractionArgs).
func DecodeInstruction(data []byte) ([8]byte, interface{}, error) {
	var disc [8]byte
	if len(data) < 8 {
		return disc, nil, fmt.Errorf("%w: %d bytes", ErrInvalidInstructionData, len(data))
	}
	copy(disc[:], data[:8])
	dec := binary.NewBorshDecoder(data[8:])
	switch disc {
	case Instruction_FractionalizeNft:
		args := new(FractionalizeNftArgs)
		if err := dec.Decode(args); err != nil {
			return disc, nil, fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
		}
		return disc, args, nil
	case Instruction_MintFraction:
		args := new(MintFractionArgs)
		if err := dec.Decode(args); err != nil {
			return disc, nil, fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
		}
		return disc, args, nil
	default:
		return disc, nil, fmt.Errorf("%w: unknown discriminator %x", ErrInvalidInstructionData, disc)
	}
}
