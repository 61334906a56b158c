package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/contract"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost/types"
)

// SetEmissions schedules the ASTRO held by the outpost for the local pools. The amounts must add up
// to the given funds.
func (k Keeper) SetEmissions(ctx sdk.Context, funds sdk.Coin, schedules []emissionstypes.PoolAmount) error {
	denom := k.GetParams(ctx).AstroDenom
	if funds.Denom != denom {
		return sdkerrors.Wrapf(types.ErrInvalidFunds, "expected %s, got %s", denom, funds.Denom)
	}
	if len(schedules) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidFunds, "no pools")
	}
	total := sdk.ZeroInt()
	pools := make([]contract.PoolAmount, len(schedules))
	for i, s := range schedules {
		if s.Pool == "" || s.Amount.IsNil() || !s.Amount.IsPositive() {
			return sdkerrors.Wrapf(types.ErrInvalidFunds, "schedule of pool %q", s.Pool)
		}
		total = total.Add(s.Amount)
		pools[i] = contract.PoolAmount{LpToken: s.Pool, Amount: s.Amount}
	}
	if !total.Equal(funds.Amount) {
		return sdkerrors.Wrapf(types.ErrInvalidFunds, "schedules add up to %s, got %s", total, funds.Amount)
	}
	if err := k.incentives.IncentivizeMany(ctx, types.ModuleAddress(), denom, pools); err != nil {
		return sdkerrors.Wrap(err, "incentivize")
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSetEmissions,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(sdk.AttributeKeyAmount, funds.String()),
		sdk.NewAttribute(types.AttributeKeyPools, strconv.Itoa(len(pools))),
	))
	return nil
}

// ExecuteSetEmissions schedules the ASTRO sent along by the sender
func (k Keeper) ExecuteSetEmissions(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, schedules []emissionstypes.PoolAmount) error {
	if len(funds) != 1 {
		return sdkerrors.Wrap(types.ErrInvalidFunds, "exactly one coin required")
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, funds); err != nil {
		return sdkerrors.Wrap(err, "deposit")
	}
	return k.SetEmissions(ctx, funds[0], schedules)
}

// SetVotingChannel binds the open channel to the hub. Only the owner can do this.
func (k Keeper) SetVotingChannel(ctx sdk.Context, sender sdk.AccAddress, channelID string) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if !k.endpoint.IsOpen(ctx, channelID) {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "%s is not open", channelID)
	}
	cp, _ := k.endpoint.Counterparty(ctx, channelID)
	if cp.PortId != types.HubPortID {
		return sdkerrors.Wrapf(types.ErrInvalidChannel, "counterparty port %s", cp.PortId)
	}
	k.setVotingChannel(ctx, channelID)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSetChannel,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyChannel, channelID),
	))
	return nil
}
