package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// CAIP-2 blockchain id, see https://github.com/ChainAgnostic/CAIPs/blob/main/CAIPs/caip-2.md
var consumerChainIdRegex = regexp.MustCompile(`^[-a-z0-9]{3,8}:[-_a-zA-Z0-9]{1,32}$`)

// IsValidConsumerChainId checks the id is a `namespace:reference` pair
func IsValidConsumerChainId(chainId string) bool {
	return consumerChainIdRegex.MatchString(chainId)
}

// ValidateAccountId checks the account id is non-empty and free of whitespace.
// Account ids are opaque to the ledger otherwise.
func ValidateAccountId(accountId string) error {
	if accountId == "" {
		return fmt.Errorf("account id is empty")
	}
	if strings.ContainsAny(accountId, " \t\r\n") {
		return fmt.Errorf("account id %q contains whitespace", accountId)
	}
	if len(accountId) > 64 {
		return fmt.Errorf("account id %q is longer than 64 characters", accountId)
	}
	return nil
}
