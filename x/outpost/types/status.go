package types

import (
	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

// UserIbcStatus is the cross chain state of a user. A user with a pending message can not send
// another one until the hub acknowledged it or it timed out.
type UserIbcStatus struct {
	PendingMsg *PendingMessage `json:"pending_msg,omitempty"`
	// Error of the last failed message
	Error *IbcError `json:"error,omitempty"`
	// StalePower is set when the voting power changed while a message was in flight. The power
	// is relayed once the message resolved.
	StalePower bool `json:"stale_power,omitempty"`
}

// IsPending returns true while a message of the user is in flight
func (s UserIbcStatus) IsPending() bool {
	return s.PendingMsg != nil
}

// PendingMessage is a message in flight with the block time it was sent at
type PendingMessage struct {
	Msg    emissionstypes.OutpostMsg `json:"msg"`
	SentAt uint64                    `json:"sent_at"`
}

// IbcError is a failed message with the reason reported by the hub
type IbcError struct {
	Msg emissionstypes.OutpostMsg `json:"msg"`
	Err string                    `json:"err"`
}
