package contract

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// IBCControllerExecute messages of the IBC controller contract
type IBCControllerExecute struct {
	IBCExecuteProposal *IBCExecuteProposalMsg `json:"ibc_execute_proposal,omitempty"`
}

type IBCExecuteProposalMsg struct {
	ChannelID  string                  `json:"channel_id"`
	ProposalID uint64                  `json:"proposal_id"`
	Messages   []wasmvmtypes.CosmosMsg `json:"messages"`
}

// IBCControllerContractAdapter relays proposal messages for execution on a remote chain
type IBCControllerContractAdapter struct {
	BaseContractAdapter
}

// NewIBCControllerContractAdapter constructor
func NewIBCControllerContractAdapter(contractAddr sdk.AccAddress, wasmKeeper WasmKeeper, addressLookupErr error) IBCControllerContractAdapter {
	return IBCControllerContractAdapter{
		BaseContractAdapter: NewBaseContractAdapter(
			contractAddr,
			wasmKeeper,
			addressLookupErr,
		),
	}
}

// IBCExecuteProposal sends the proposal messages over the channel
func (a IBCControllerContractAdapter) IBCExecuteProposal(ctx sdk.Context, sender sdk.AccAddress, channelID string, proposalID uint64, messages []wasmvmtypes.CosmosMsg) error {
	msg := IBCControllerExecute{IBCExecuteProposal: &IBCExecuteProposalMsg{
		ChannelID:  channelID,
		ProposalID: proposalID,
		Messages:   messages,
	}}
	return a.doExecute(ctx, msg, sender, nil)
}
