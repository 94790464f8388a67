package runtime

import (
	"sync"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestLockmapReleasesKeys(t *testing.T) {
	require := require.New(t)
	l := NewLockmap(2)
	key := solanago.NewWallet().PublicKey()

	l.RLock(key)
	l.RLock(key)
	require.Equal(1, l.Locks())
	l.RUnlock(key)
	require.Equal(1, l.Locks())
	l.RUnlock(key)
	require.Equal(0, l.Locks())

	l.Lock(key)
	l.Unlock(key)
	require.Equal(0, l.Locks())
}

func TestLockmapWriteExcludes(t *testing.T) {
	l := NewLockmap(2)
	key := solanago.NewWallet().PublicKey()

	l.Lock(key)
	acquired := make(chan struct{})
	go func() {
		l.Lock(key)
		close(acquired)
		l.Unlock(key)
	}()

	select {
	case <-acquired:
		t.Fatal("second writer acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}
	l.Unlock(key)
	<-acquired
	require.Eventually(t, func() bool { return l.Locks() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLockAccountsNoDeadlock(t *testing.T) {
	l := NewLockmap(4)
	a := solanago.NewWallet().PublicKey()
	b := solanago.NewWallet().PublicKey()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock := l.LockAccounts(map[solanago.PublicKey]bool{a: true, b: true})
			unlock()
		}()
		go func() {
			defer wg.Done()
			unlock := l.LockAccounts(map[solanago.PublicKey]bool{b: true, a: false})
			unlock()
		}()
	}
	wg.Wait()
	require.Equal(t, 0, l.Locks())
}
