package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/emissions/types"
)

// UpdateOutpost adds or replaces an outpost. The jail status of an existing outpost is kept. Only the
// owner can do this.
func (k Keeper) UpdateOutpost(ctx sdk.Context, sender sdk.AccAddress, outpost types.OutpostInfo) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	if err := outpost.ValidateBasic(); err != nil {
		return err
	}
	store := ctx.KVStore(k.storeKey)
	existing, exists := k.GetOutpost(ctx, outpost.Prefix)
	if exists {
		outpost.Jailed = existing.Jailed
		if existing.Params != nil {
			store.Delete(types.GetChannelOutpostKey(existing.Params.VotingChannel))
		}
	}
	if outpost.Params != nil {
		if other, bound := k.GetOutpostByChannel(ctx, outpost.Params.VotingChannel); bound && other.Prefix != outpost.Prefix {
			return sdkerrors.Wrapf(types.ErrChannelAlreadyBound, "%s used by %s", outpost.Params.VotingChannel, other.Prefix)
		}
		store.Set(types.GetChannelOutpostKey(outpost.Params.VotingChannel), []byte(outpost.Prefix))
	}
	if c := outpost.AstroPoolConfig; c != nil && k.IsWhitelisted(ctx, c.AstroPool) {
		k.removeWhitelisted(ctx, c.AstroPool)
	}
	k.setOutpost(ctx, outpost)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateOutpost,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyOutpost, outpost.Prefix),
	))
	return nil
}

// RemoveOutpost removes the outpost and all its pools from the whitelist. Only the owner can do this.
func (k Keeper) RemoveOutpost(ctx sdk.Context, sender sdk.AccAddress, prefix string) error {
	if err := k.requireOwner(ctx, sender); err != nil {
		return err
	}
	outpost, found := k.GetOutpost(ctx, prefix)
	if !found {
		return sdkerrors.Wrap(types.ErrOutpostNotFound, prefix)
	}
	store := ctx.KVStore(k.storeKey)
	if outpost.Params != nil {
		store.Delete(types.GetChannelOutpostKey(outpost.Params.VotingChannel))
	}
	store.Delete(types.GetOutpostKey(prefix))
	k.removeOutpostPools(ctx, prefix)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRemoveOutpost,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyOutpost, prefix),
	))
	return nil
}

// JailOutpost stops all emissions to a remote outpost and removes its pools from the whitelist.
// Packets from a jailed outpost are rejected. Only the owner can do this.
func (k Keeper) JailOutpost(ctx sdk.Context, sender sdk.AccAddress, prefix string) error {
	outpost, err := k.ownedRemoteOutpost(ctx, sender, prefix)
	if err != nil {
		return err
	}
	if outpost.Jailed {
		return sdkerrors.Wrap(types.ErrJailedOutpost, prefix)
	}
	outpost.Jailed = true
	k.setOutpost(ctx, outpost)
	k.removeOutpostPools(ctx, prefix)
	ModuleLogger(ctx).Info("outpost jailed", "prefix", prefix)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeJailOutpost,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyOutpost, prefix),
	))
	return nil
}

// UnjailOutpost reactivates a jailed outpost. Its pools need to be whitelisted again.
func (k Keeper) UnjailOutpost(ctx sdk.Context, sender sdk.AccAddress, prefix string) error {
	outpost, err := k.ownedRemoteOutpost(ctx, sender, prefix)
	if err != nil {
		return err
	}
	if !outpost.Jailed {
		return sdkerrors.Wrapf(types.ErrInvalidOutpost, "%s is not jailed", prefix)
	}
	outpost.Jailed = false
	k.setOutpost(ctx, outpost)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnjailOutpost,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyOutpost, prefix),
	))
	return nil
}

func (k Keeper) ownedRemoteOutpost(ctx sdk.Context, sender sdk.AccAddress, prefix string) (types.OutpostInfo, error) {
	if err := k.requireOwner(ctx, sender); err != nil {
		return types.OutpostInfo{}, err
	}
	outpost, found := k.GetOutpost(ctx, prefix)
	if !found {
		return types.OutpostInfo{}, sdkerrors.Wrap(types.ErrOutpostNotFound, prefix)
	}
	if outpost.IsLocal() {
		return types.OutpostInfo{}, sdkerrors.Wrap(types.ErrInvalidOutpost, "the hub can not be jailed")
	}
	return outpost, nil
}

// ActiveOutposts returns all outposts that are not jailed, ordered by prefix
func (k Keeper) ActiveOutposts(ctx sdk.Context) []types.OutpostInfo {
	var r []types.OutpostInfo
	k.IterateOutposts(ctx, func(o types.OutpostInfo) bool {
		if !o.Jailed {
			r = append(r, o)
		}
		return false
	})
	return r
}
