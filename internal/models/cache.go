package models

import "fmt"

// AccountCacheKey is shared by the balance reader (fill) and the ledger
// applier (invalidate) so both sides agree on the key.
func AccountCacheKey(accountName string) string {
	return fmt.Sprintf("account:%s", accountName)
}
