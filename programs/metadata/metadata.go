package metadata

import (
	"bytes"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

const (
	InstructionCreateMetadata uint8 = 0

	keyMetadataV1 uint8 = 4
)

var ProgramID = solanago.TokenMetadataProgramID

var (
	ErrInvalidInstruction = errors.New("invalid metadata instruction")
	ErrInvalidMetadata    = errors.New("invalid metadata account")
	ErrNameTooLong        = errors.New("name too long")
	ErrSymbolTooLong      = errors.New("symbol too long")
	ErrURITooLong         = errors.New("uri too long")
	ErrAddressMismatch    = errors.New("metadata address does not match mint")
	ErrMintAuthority      = errors.New("mint authority must sign")
)

type Data struct {
	Name   string
	Symbol string
	Uri    string
}

func (d Data) Validate() error {
	switch {
	case len(d.Name) > MaxNameLength:
		return fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(d.Name), MaxNameLength)
	case len(d.Symbol) > MaxSymbolLength:
		return fmt.Errorf("%w: %d > %d", ErrSymbolTooLong, len(d.Symbol), MaxSymbolLength)
	case len(d.Uri) > MaxURILength:
		return fmt.Errorf("%w: %d > %d", ErrURITooLong, len(d.Uri), MaxURILength)
	}
	return nil
}

// Metadata is the record stored at the metadata address of a mint.
type Metadata struct {
	Key             uint8
	UpdateAuthority solanago.PublicKey
	Mint            solanago.PublicKey
	Data            Data
}

func (m *Metadata) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.NewBorshEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ParseMetadata(data []byte) (*Metadata, error) {
	m := new(Metadata)
	if err := binary.NewBorshDecoder(data).Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if m.Key != keyMetadataV1 {
		return nil, fmt.Errorf("%w: key %d", ErrInvalidMetadata, m.Key)
	}
	return m, nil
}

func metadataSeeds(mint solanago.PublicKey) [][]byte {
	return [][]byte{[]byte("metadata"), ProgramID.Bytes(), mint.Bytes()}
}

func DeriveMetadataAddress(mint solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress(metadataSeeds(mint), ProgramID)
}

func NewCreateMetadataInstruction(
	data Data,
	metadata solanago.PublicKey,
	mint solanago.PublicKey,
	mintAuthority solanago.PublicKey,
	payer solanago.PublicKey,
	updateAuthority solanago.PublicKey,
) (solanago.Instruction, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte(InstructionCreateMetadata)
	if err := binary.NewBorshEncoder(buf).Encode(data); err != nil {
		return nil, err
	}
	return solanago.NewInstruction(ProgramID, solanago.AccountMetaSlice{
		solanago.NewAccountMeta(metadata, true, false),
		solanago.NewAccountMeta(mint, false, false),
		solanago.NewAccountMeta(mintAuthority, false, true),
		solanago.NewAccountMeta(payer, true, true),
		solanago.NewAccountMeta(updateAuthority, false, false),
	}, buf.Bytes()), nil
}
