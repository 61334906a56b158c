package keeper

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/astroport/governance/x/assembly/types"
)

// SubmitProposal creates a new active proposal. The deposit must be attached in the deposit denom and is
// held by the assembly until the proposal ends.
func (k Keeper) SubmitProposal(ctx sdk.Context, submitter sdk.AccAddress, deposit sdk.Coins, msg types.SubmitProposalMsg) (uint64, error) {
	config := k.GetConfig(ctx)
	if len(deposit) != 1 || deposit[0].Denom != config.DepositDenom {
		return 0, sdkerrors.Wrapf(types.ErrInsufficientDeposit, "deposit must be paid in %s", config.DepositDenom)
	}
	if deposit[0].Amount.LT(config.ProposalRequiredDeposit) {
		return 0, sdkerrors.Wrapf(types.ErrInsufficientDeposit, "required %s", config.ProposalRequiredDeposit)
	}
	if err := types.ValidateProposalText(msg.Title, msg.Description, msg.Link, config.WhitelistedLinks); err != nil {
		return 0, err
	}
	if msg.IBCChannel != "" && (config.IBCController == "" || k.ibcController == nil) {
		return 0, types.ErrMissingIbcController
	}
	if err := validateMessages(msg.Messages); err != nil {
		return 0, err
	}
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, submitter, types.ModuleName, deposit); err != nil {
		return 0, sdkerrors.Wrap(err, "deposit")
	}

	now := uint64(ctx.BlockTime().Unix())
	height := ctx.BlockHeight()
	endBlock := height + int64(config.ProposalVotingPeriod)
	delayedEndBlock := endBlock + int64(config.ProposalEffectiveDelay)
	p := types.Proposal{
		ID:                  k.nextProposalID(ctx),
		Submitter:           submitter.String(),
		Status:              types.ProposalStatusActive,
		Title:               msg.Title,
		Description:         msg.Description,
		Link:                msg.Link,
		Messages:            msg.Messages,
		IBCChannel:          msg.IBCChannel,
		ForPower:            sdk.ZeroInt(),
		AgainstPower:        sdk.ZeroInt(),
		OutpostForPower:     sdk.ZeroInt(),
		OutpostAgainstPower: sdk.ZeroInt(),
		StartBlock:          height,
		StartTime:           now,
		EndBlock:            endBlock,
		DelayedEndBlock:     delayedEndBlock,
		ExpirationBlock:     delayedEndBlock + int64(config.ProposalExpirationPeriod),
		Deposit:             deposit[0],
	}
	total, err := k.totalVotingPowerAt(ctx, p.SnapshotTime())
	if err != nil {
		return 0, err
	}
	p.TotalVotingPower = total
	k.setProposal(ctx, p)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeSubmitProposal,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeySubmitter, p.Submitter),
	))
	return p.ID, nil
}

// CastVote records the vote of a local voter with the voting power at the proposal start
func (k Keeper) CastVote(ctx sdk.Context, voter sdk.AccAddress, proposalID uint64, vote types.VoteOption) (sdk.Int, error) {
	p, err := k.loadVotable(ctx, proposalID, voter.String(), vote)
	if err != nil {
		return sdk.Int{}, err
	}
	power, err := k.UserVotingPower(ctx, voter.String(), p)
	if err != nil {
		return sdk.Int{}, err
	}
	if !power.IsPositive() {
		return sdk.Int{}, types.ErrNoVotingPower
	}
	k.applyVote(ctx, p, voter.String(), vote, power, false)
	return power, nil
}

// CastOutpostVote records a vote relayed from an outpost. The voting power was computed on the outpost
// and checked against the channel balance by the caller.
func (k Keeper) CastOutpostVote(ctx sdk.Context, voter string, proposalID uint64, vote types.VoteOption, votingPower sdk.Int) error {
	p, err := k.loadVotable(ctx, proposalID, voter, vote)
	if err != nil {
		return err
	}
	if votingPower.IsNil() || !votingPower.IsPositive() {
		return types.ErrNoVotingPower
	}
	k.applyVote(ctx, p, voter, vote, votingPower, true)
	return nil
}

func (k Keeper) loadVotable(ctx sdk.Context, proposalID uint64, voter string, vote types.VoteOption) (types.Proposal, error) {
	if err := vote.ValidateBasic(); err != nil {
		return types.Proposal{}, err
	}
	p, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return types.Proposal{}, err
	}
	if p.Status != types.ProposalStatusActive {
		return types.Proposal{}, types.ErrProposalNotActive
	}
	if ctx.BlockHeight() > p.EndBlock {
		return types.Proposal{}, types.ErrVotingPeriodEnded
	}
	if _, voted := k.GetVote(ctx, proposalID, voter); voted {
		return types.Proposal{}, types.ErrUserAlreadyVoted
	}
	return p, nil
}

func (k Keeper) applyVote(ctx sdk.Context, p types.Proposal, voter string, vote types.VoteOption, power sdk.Int, fromOutpost bool) {
	switch vote {
	case types.VoteOptionFor:
		p.ForPower = p.ForPower.Add(power)
		if fromOutpost {
			p.OutpostForPower = p.OutpostForPower.Add(power)
		}
	case types.VoteOptionAgainst:
		p.AgainstPower = p.AgainstPower.Add(power)
		if fromOutpost {
			p.OutpostAgainstPower = p.OutpostAgainstPower.Add(power)
		}
	}
	k.setProposal(ctx, p)
	k.setVote(ctx, p.ID, voter, vote)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeCastVote,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyVoter, voter),
		sdk.NewAttribute(types.AttributeKeyVote, string(vote)),
		sdk.NewAttribute(types.AttributeKeyVotingPower, power.String()),
		sdk.NewAttribute(types.AttributeKeyOutpost, strconv.FormatBool(fromOutpost)),
	))
}

// EndProposal tallies the votes once the voting period is over and refunds the deposit to the
// submitter, independent of the outcome.
func (k Keeper) EndProposal(ctx sdk.Context, proposalID uint64) (types.ProposalStatus, error) {
	p, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return "", err
	}
	if p.Status != types.ProposalStatusActive {
		return "", types.ErrProposalNotActive
	}
	if ctx.BlockHeight() <= p.EndBlock {
		return "", types.ErrVotingPeriodNotEnded
	}
	config := k.GetConfig(ctx)
	quorum, threshold := p.Tally()
	if quorum.GTE(config.ProposalRequiredQuorum) && threshold.GT(config.ProposalRequiredThreshold) {
		p.Status = types.ProposalStatusPassed
	} else {
		p.Status = types.ProposalStatusRejected
	}
	k.setProposal(ctx, p)

	submitter, err := sdk.AccAddressFromBech32(p.Submitter)
	if err != nil {
		return "", sdkerrors.Wrap(err, "submitter")
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, submitter, sdk.NewCoins(p.Deposit)); err != nil {
		return "", sdkerrors.Wrap(err, "refund deposit")
	}

	k.Logger(ctx).Info("proposal ended", "proposal_id", p.ID, "status", p.Status, "quorum", quorum, "threshold", threshold)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeEndProposal,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyStatus, string(p.Status)),
	))
	return p.Status, nil
}

// ExecuteProposal executes a passed proposal after the delay. A passed proposal that is executed after
// its expiration block is moved to the expired status instead; any later attempt fails.
func (k Keeper) ExecuteProposal(ctx sdk.Context, proposalID uint64) (types.ProposalStatus, error) {
	p, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return "", err
	}
	switch p.Status {
	case types.ProposalStatusPassed:
	case types.ProposalStatusExpired:
		return "", types.ErrExecuteProposalExpired
	default:
		return "", types.ErrProposalNotPassed
	}
	height := ctx.BlockHeight()
	if height < p.DelayedEndBlock {
		return "", types.ErrProposalDelayNotEnded
	}
	if height > p.ExpirationBlock {
		p.Status = types.ProposalStatusExpired
		k.setProposal(ctx, p)
		k.Logger(ctx).Info("proposal expired", "proposal_id", p.ID)
		ctx.EventManager().EmitEvent(sdk.NewEvent(
			types.EventTypeExpireProposal,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
			sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		))
		return p.Status, nil
	}

	if p.IBCChannel != "" && len(p.Messages) != 0 {
		if k.ibcController == nil {
			return "", types.ErrMissingIbcController
		}
		p.Status = types.ProposalStatusInProgress
		k.setProposal(ctx, p)
		if err := k.ibcController.IBCExecuteProposal(ctx, types.ModuleAddress(), p.IBCChannel, p.ID, p.Messages); err != nil {
			return "", sdkerrors.Wrap(err, "ibc controller")
		}
	} else {
		p.Status = types.ProposalStatusExecuted
		k.setProposal(ctx, p)
		cacheCtx, commit := ctx.CacheContext()
		if err := k.dispatchMessages(cacheCtx, p.Messages); err != nil {
			return "", err
		}
		commit()
		ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	}

	k.Logger(ctx).Info("proposal executed", "proposal_id", p.ID, "status", p.Status)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeExecuteProposal,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyStatus, string(p.Status)),
	))
	return p.Status, nil
}

// IBCProposalCompleted finalizes a proposal that was executed over IBC
func (k Keeper) IBCProposalCompleted(ctx sdk.Context, sender sdk.AccAddress, proposalID uint64, status types.ProposalStatus) error {
	config := k.GetConfig(ctx)
	if config.IBCController == "" || sender.String() != config.IBCController {
		return sdkerrors.Wrap(sdkerrors.ErrUnauthorized, "ibc controller only")
	}
	p, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if p.Status != types.ProposalStatusInProgress {
		return types.ErrProposalNotInProgress
	}
	switch status {
	case types.ProposalStatusExecuted, types.ProposalStatusFailed:
	default:
		return sdkerrors.Wrapf(types.ErrWrongIbcStatus, "got %q", status)
	}
	p.Status = status
	k.setProposal(ctx, p)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeIBCProposalCompleted,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		sdk.NewAttribute(types.AttributeKeyProposalID, strconv.FormatUint(p.ID, 10)),
		sdk.NewAttribute(types.AttributeKeyStatus, string(p.Status)),
	))
	return nil
}

// UpdateConfig changes the config. Only the assembly itself, by executing a proposal, can do this.
func (k Keeper) UpdateConfig(ctx sdk.Context, sender sdk.AccAddress, update types.ConfigUpdate) error {
	if !sender.Equals(types.ModuleAddress()) {
		return sdkerrors.Wrap(sdkerrors.ErrUnauthorized, "assembly only")
	}
	config, err := update.Apply(k.GetConfig(ctx))
	if err != nil {
		return err
	}
	k.setConfig(ctx, config)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateConfig,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
	))
	return nil
}
