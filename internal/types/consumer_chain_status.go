package types

import "fmt"

type ConsumerChainStatus string

const (
	Registered   ConsumerChainStatus = "registered"
	Deregistered ConsumerChainStatus = "deregistered"
)

func (s ConsumerChainStatus) ToString() string {
	return string(s)
}

func FromStringToConsumerChainStatus(s string) (ConsumerChainStatus, error) {
	switch s {
	case "registered":
		return Registered, nil
	case "deregistered":
		return Deregistered, nil
	default:
		return "", fmt.Errorf("invalid consumer chain status: %s", s)
	}
}
