package model

import "time"

// AccountDocument marks an account as registered with the ledger
type AccountDocument struct {
	AccountId    string    `bson:"_id"`
	RegisteredAt time.Time `bson:"registered_at"`
}

func NewAccountDocument(accountId string, registeredAt time.Time) *AccountDocument {
	return &AccountDocument{
		AccountId:    accountId,
		RegisteredAt: registeredAt,
	}
}
