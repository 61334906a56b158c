package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NextEmissionsState computes the emissions of the next epoch from the ASTRO collected by xASTRO
// stakers since the last tuning. The collected amount is derived from the growth of the xASTRO
// exchange rate applied to all shares. The emissions follow either the last collection or the
// moving average, whichever is larger, both capped at maxAstro.
func NextEmissionsState(prev EmissionsState, totalShares sdk.Int, rate sdk.Dec, multiple sdk.Dec, maxAstro sdk.Int) EmissionsState {
	collected := sdk.ZeroInt()
	if !prev.XAstroRate.IsNil() && rate.GT(prev.XAstroRate) {
		collected = totalShares.ToDec().Mul(rate.Sub(prev.XAstroRate)).TruncateInt()
	}
	prevEma, prevCollected := sdk.ZeroInt(), sdk.ZeroInt()
	if !prev.Ema.IsNil() {
		prevEma = prev.Ema
	}
	if !prev.CollectedAstro.IsNil() {
		prevCollected = prev.CollectedAstro
	}
	ema := collected.MulRaw(2).QuoRaw(3).Add(prevEma.QuoRaw(3))

	fromCollected := sdk.MinInt(prevCollected.ToDec().Mul(multiple).TruncateInt(), maxAstro)
	fromEma := sdk.MinInt(ema.ToDec().Mul(multiple).TruncateInt(), maxAstro)
	return EmissionsState{
		XAstroRate:      rate,
		CollectedAstro:  collected,
		Ema:             ema,
		EmissionsAmount: sdk.MaxInt(fromCollected, fromEma),
	}
}

// XAstroRate is the amount of ASTRO one xASTRO share is worth
func XAstroRate(totalDeposit, totalShares sdk.Int) sdk.Dec {
	if !totalShares.IsPositive() {
		return sdk.OneDec()
	}
	return totalDeposit.ToDec().QuoInt(totalShares)
}
