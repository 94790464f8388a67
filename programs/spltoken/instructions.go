package spltoken

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// SPL token instruction tags.
const (
	InstructionTransfer           uint8 = 3
	InstructionMintTo             uint8 = 7
	InstructionInitializeAccount3 uint8 = 18
	InstructionInitializeMint2    uint8 = 20
)

// Associated token account instruction tags.
const (
	AssociatedCreate           uint8 = 0
	AssociatedCreateIdempotent uint8 = 1
)

var (
	ProgramID           = solanago.TokenProgramID
	AssociatedProgramID = solanago.SPLAssociatedTokenAccountProgramID
)

func encode(tag uint8, write func(enc *binary.Encoder) error) []byte {
	buf := new(bytes.Buffer)
	enc := binary.NewBinEncoder(buf)
	_ = enc.WriteUint8(tag)
	if write != nil {
		// writes into a bytes.Buffer cannot fail
		_ = write(enc)
	}
	return buf.Bytes()
}

// NewInitializeMint2Instruction creates and initializes mint. The mint signs
// its own creation.
func NewInitializeMint2Instruction(decimals uint8, mintAuthority solanago.PublicKey, freezeAuthority *solanago.PublicKey, mint solanago.PublicKey) solanago.Instruction {
	data := encode(InstructionInitializeMint2, func(enc *binary.Encoder) error {
		_ = enc.WriteUint8(decimals)
		_ = enc.WriteBytes(mintAuthority[:], false)
		if freezeAuthority == nil {
			return enc.WriteUint8(0)
		}
		_ = enc.WriteUint8(1)
		return enc.WriteBytes(freezeAuthority[:], false)
	})
	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(mint, true, true),
	}, data)
}

// NewInitializeAccount3Instruction creates a token account for mint held by
// owner. The account signs its own creation.
func NewInitializeAccount3Instruction(account, mint, owner solanago.PublicKey) solanago.Instruction {
	data := encode(InstructionInitializeAccount3, func(enc *binary.Encoder) error {
		return enc.WriteBytes(owner[:], false)
	})
	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(account, true, true),
		solanago.NewAccountMeta(mint, false, false),
	}, data)
}

func NewTransferInstruction(amount uint64, source, destination, owner solanago.PublicKey) solanago.Instruction {
	data := encode(InstructionTransfer, func(enc *binary.Encoder) error {
		return enc.WriteUint64(amount, binary.LE)
	})
	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(source, true, false),
		solanago.NewAccountMeta(destination, true, false),
		solanago.NewAccountMeta(owner, false, true),
	}, data)
}

func NewMintToInstruction(amount uint64, mint, destination, authority solanago.PublicKey) solanago.Instruction {
	data := encode(InstructionMintTo, func(enc *binary.Encoder) error {
		return enc.WriteUint64(amount, binary.LE)
	})
	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(mint, true, false),
		solanago.NewAccountMeta(destination, true, false),
		solanago.NewAccountMeta(authority, false, true),
	}, data)
}

func associatedAccounts(payer, ata, owner, mint, tokenProgram solanago.PublicKey) solanago.AccountMetaSlice {
	return solanago.AccountMetaSlice{
		solanago.NewAccountMeta(payer, true, true),
		solanago.NewAccountMeta(ata, true, false),
		solanago.NewAccountMeta(owner, false, false),
		solanago.NewAccountMeta(mint, false, false),
		solanago.NewAccountMeta(solanago.SystemProgramID, false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
	}
}

// CreateAssociatedTokenAccountInstruction builds an ATA create instruction. It
// fails when the account already exists.
func CreateAssociatedTokenAccountInstruction(payer, ata, owner, mint, tokenProgram solanago.PublicKey) solanago.Instruction {
	return solanago.NewInstruction(AssociatedProgramID, associatedAccounts(payer, ata, owner, mint, tokenProgram), nil)
}

func CreateAssociatedTokenAccountIdempotentInstruction(payer, ata, owner, mint, tokenProgram solanago.PublicKey) solanago.Instruction {
	return solanago.NewInstruction(AssociatedProgramID, associatedAccounts(payer, ata, owner, mint, tokenProgram), []byte{AssociatedCreateIdempotent})
}

func FindAssociatedTokenAddress(wallet, mint, tokenProgram solanago.PublicKey) (solanago.PublicKey, error) {
	ata, _, err := findAssociatedTokenAddress(wallet, mint, tokenProgram)
	return ata, err
}

func findAssociatedTokenAddress(wallet, mint, tokenProgram solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{wallet.Bytes(), tokenProgram.Bytes(), mint.Bytes()}, AssociatedProgramID)
}
