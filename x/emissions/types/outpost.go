package types

import (
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	host "github.com/cosmos/ibc-go/v2/modules/core/24-host"
)

// OutpostParams are set for remote outposts only
type OutpostParams struct {
	// EmissionsController is the address of the outpost controller on the remote chain. It receives
	// the emissions transfer.
	EmissionsController string `json:"emissions_controller"`
	// VotingChannel is the hub channel bound to the outpost controller
	VotingChannel string `json:"voting_channel"`
	// ICS20Channel is the hub transfer channel to the outpost chain
	ICS20Channel string `json:"ics20_channel"`
}

// AstroPoolConfig is a pool that receives a constant emission every epoch, independent of votes
type AstroPoolConfig struct {
	AstroPool string  `json:"astro_pool"`
	Constant  sdk.Int `json:"constant_emissions"`
}

// OutpostInfo is keyed by the bech32 prefix of the outpost chain. Params are nil for the hub itself.
type OutpostInfo struct {
	Prefix          string           `json:"prefix"`
	Params          *OutpostParams   `json:"params,omitempty"`
	AstroDenom      string           `json:"astro_denom"`
	AstroPoolConfig *AstroPoolConfig `json:"astro_pool_config,omitempty"`
	Jailed          bool             `json:"jailed"`
}

// IsLocal returns true for the hub outpost
func (o OutpostInfo) IsLocal() bool {
	return o.Params == nil
}

// ValidateBasic checks the outpost config
func (o OutpostInfo) ValidateBasic() error {
	if o.Prefix == "" || strings.ToLower(o.Prefix) != o.Prefix {
		return sdkerrors.Wrapf(ErrInvalidOutpost, "prefix: %q", o.Prefix)
	}
	if o.AstroDenom == "" {
		return sdkerrors.Wrap(ErrInvalidOutpost, "astro denom")
	}
	if p := o.Params; p != nil {
		if p.EmissionsController == "" {
			return sdkerrors.Wrap(ErrInvalidOutpost, "emissions controller")
		}
		if prefix, err := DeterminePoolPrefix(p.EmissionsController); err != nil || prefix != o.Prefix {
			return sdkerrors.Wrap(ErrInvalidOutpost, "emissions controller must have the outpost prefix")
		}
		if err := host.ChannelIdentifierValidator(p.VotingChannel); err != nil {
			return sdkerrors.Wrap(ErrInvalidOutpost, "voting channel")
		}
		if err := host.ChannelIdentifierValidator(p.ICS20Channel); err != nil {
			return sdkerrors.Wrap(ErrInvalidOutpost, "ics20 channel")
		}
	}
	if c := o.AstroPoolConfig; c != nil {
		if c.Constant.IsNil() || !c.Constant.IsPositive() {
			return sdkerrors.Wrap(ErrInvalidOutpost, "astro pool emissions must be positive")
		}
		if prefix, err := DeterminePoolPrefix(c.AstroPool); err != nil || prefix != o.Prefix {
			return sdkerrors.Wrap(ErrInvalidOutpost, "astro pool must belong to the outpost")
		}
	}
	return nil
}
