package model

const (
	SequenceCounter              = "sequence"
	WithdrawalCertificateCounter = "withdrawal_certificate"
	SlashIdCounter               = "slash_id"
)

// CounterDocument is a named monotonic counter. The ledger's global event
// sequence and its certificate and slash ids all come from here.
type CounterDocument struct {
	Id    string `bson:"_id"`
	Value uint64 `bson:"value"`
}

func NewCounterDocument(id string, value uint64) *CounterDocument {
	return &CounterDocument{
		Id:    id,
		Value: value,
	}
}
