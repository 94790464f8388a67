package runtime

import (
	"bytes"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Account is the state kept for one address. Only Owner may change Data.
type Account struct {
	Owner solanago.PublicKey
	Data  []byte
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{Owner: a.Owner, Data: data}
}

func (a *Account) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.NewBorshEncoder(buf).Encode(a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalAccount(raw []byte) (*Account, error) {
	acct := new(Account)
	if err := binary.NewBorshDecoder(raw).Decode(acct); err != nil {
		return nil, err
	}
	return acct, nil
}
