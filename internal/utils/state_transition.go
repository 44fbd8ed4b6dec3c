package utils

import (
	"github.com/babylonchain/restaking-ledger-service/internal/types"
)

// QualifiedStatesToDeregister returns the qualified existing states to transition to "deregistered".
// Deregistration is terminal, so a deregistered chain never qualifies again.
func QualifiedStatesToDeregister() []types.ConsumerChainStatus {
	return []types.ConsumerChainStatus{types.Registered}
}

// QualifiedStatesToBond returns the chain states in which new bondings are accepted
func QualifiedStatesToBond() []types.ConsumerChainStatus {
	return []types.ConsumerChainStatus{types.Registered}
}

// QualifiedStatesToUpdate returns the chain states in which governance may edit chain info
func QualifiedStatesToUpdate() []types.ConsumerChainStatus {
	return []types.ConsumerChainStatus{types.Registered}
}
