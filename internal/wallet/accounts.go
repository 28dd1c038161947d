package wallet

import "strings"

// AccountKind distinguishes accounts whose ledger the admin backend owns
// from accounts that exist only in the gateway cache.
type AccountKind int

const (
	// AccountRemote is backed by the admin backend's ledger
	AccountRemote AccountKind = iota
	// AccountLocal has no server ledger; the cache is all there is
	AccountLocal
)

// Account is the resolved variant. The ID-prefix convention is parsed here,
// once, at the boundary; wallet methods never look at the raw string again.
type Account struct {
	ID   string
	Kind AccountKind
}

var localPrefixes = []string{"ACC-", "local_"}

// ResolveAccount classifies an account ID by the naming convention the
// web client established.
func ResolveAccount(id string) Account {
	for _, prefix := range localPrefixes {
		if strings.HasPrefix(id, prefix) {
			return Account{ID: id, Kind: AccountLocal}
		}
	}
	return Account{ID: id, Kind: AccountRemote}
}

func (a Account) IsLocal() bool {
	return a.Kind == AccountLocal
}
