package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// UnpublishedEventDocument keeps a ledger event the queue refused so it can be replayed
type UnpublishedEventDocument struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	Sequence  uint64             `bson:"sequence"`
	EventBody string             `bson:"event_body"`
}

func NewUnpublishedEventDocument(sequence uint64, eventBody string) *UnpublishedEventDocument {
	return &UnpublishedEventDocument{
		Sequence:  sequence,
		EventBody: eventBody,
	}
}
