package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccountLen is the size of an SPL token account.
const TokenAccountLen = 165

type Account struct {
	// Mint associated with the account
	Mint solana.PublicKey

	// Owner of the account
	Owner solana.PublicKey

	// Number of tokens the account holds
	Amount uint64

	// Authority that can transfer tokens from the account
	Delegate *solana.PublicKey

	// Number of tokens the delegate is authorized to transfer
	DelegatedAmount uint64

	// True if the account is initialized
	IsInitialized bool

	// True if the account is frozen
	IsFrozen bool

	// If the account is a native token account, it must be rent-exempt.
	// The rent-exempt reserve is the amount that must remain in the balance until the account is closed.
	RentExemptReserve *uint64

	// Optional authority to close the account
	CloseAuthority *solana.PublicKey
}

// TokenAccountLayout https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	if len(data) < TokenAccountLen {
		return nil, fmt.Errorf("token account: %d bytes, want %d", len(data), TokenAccountLen)
	}
	rawAccount := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data).Decode(rawAccount); err != nil {
		return nil, err
	}
	return &Account{
		Mint:            rawAccount.Mint,
		Owner:           rawAccount.Owner,
		Amount:          rawAccount.Amount,
		Delegate:        optionalKey(rawAccount.DelegateOption, rawAccount.Delegate),
		DelegatedAmount: rawAccount.DelegatedAmount,
		IsInitialized:   AccountState(rawAccount.State) != AccountStateUninitialized,
		IsFrozen:        AccountState(rawAccount.State) == AccountStateFrozen,
		RentExemptReserve: func() *uint64 {
			if rawAccount.IsNativeOption > 0 {
				v := rawAccount.IsNative
				return &v
			}
			return nil
		}(),
		CloseAuthority: optionalKey(rawAccount.CloseAuthorityOption, rawAccount.CloseAuthority),
	}, nil
}

func (l *AccountLayout) Encode(account *Account) ([]byte, error) {
	raw := &tokenAccountLayout{
		Mint:            account.Mint,
		Owner:           account.Owner,
		Amount:          account.Amount,
		DelegatedAmount: account.DelegatedAmount,
	}
	switch {
	case account.IsFrozen:
		raw.State = uint8(AccountStateFrozen)
	case account.IsInitialized:
		raw.State = uint8(AccountStateInitialized)
	}
	raw.DelegateOption, raw.Delegate = keyOption(account.Delegate)
	raw.CloseAuthorityOption, raw.CloseAuthority = keyOption(account.CloseAuthority)
	if account.RentExemptReserve != nil {
		raw.IsNativeOption = 1
		raw.IsNative = *account.RentExemptReserve
	}

	buf := new(bytes.Buffer)
	buf.Grow(TokenAccountLen)
	if err := binary.NewBinEncoder(buf).Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalKey(option uint32, key solana.PublicKey) *solana.PublicKey {
	if option == 0 {
		return nil
	}
	return &key
}

func keyOption(key *solana.PublicKey) (uint32, solana.PublicKey) {
	if key == nil {
		return 0, solana.PublicKey{}
	}
	return 1, *key
}
