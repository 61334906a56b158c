package types

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
)

func TestNextEmissionsState(t *testing.T) {
	multiple := sdk.NewDecWithPrec(8, 1)
	specs := map[string]struct {
		prev     EmissionsState
		shares   int64
		rate     sdk.Dec
		maxAstro int64
		expState EmissionsState
	}{
		"first tuning": {
			shares:   1000,
			rate:     sdk.OneDec(),
			maxAstro: 1_000_000,
			expState: EmissionsState{XAstroRate: sdk.OneDec(), CollectedAstro: sdk.ZeroInt(), Ema: sdk.ZeroInt(), EmissionsAmount: sdk.ZeroInt()},
		},
		"rate growth": {
			prev:     EmissionsState{XAstroRate: sdk.OneDec(), CollectedAstro: sdk.ZeroInt(), Ema: sdk.ZeroInt(), EmissionsAmount: sdk.ZeroInt()},
			shares:   1000,
			rate:     sdk.NewDecWithPrec(15, 1),
			maxAstro: 1_000_000,
			expState: EmissionsState{XAstroRate: sdk.NewDecWithPrec(15, 1), CollectedAstro: sdk.NewInt(500), Ema: sdk.NewInt(333), EmissionsAmount: sdk.NewInt(266)},
		},
		"last collection above ema": {
			prev:     EmissionsState{XAstroRate: sdk.NewDecWithPrec(15, 1), CollectedAstro: sdk.NewInt(900), Ema: sdk.NewInt(300), EmissionsAmount: sdk.ZeroInt()},
			shares:   1000,
			rate:     sdk.NewDecWithPrec(16, 1),
			maxAstro: 1_000_000,
			// collected 100, ema 66 + 100, last 900 * 0.8
			expState: EmissionsState{XAstroRate: sdk.NewDecWithPrec(16, 1), CollectedAstro: sdk.NewInt(100), Ema: sdk.NewInt(166), EmissionsAmount: sdk.NewInt(720)},
		},
		"rate drop collects nothing": {
			prev:     EmissionsState{XAstroRate: sdk.NewDecWithPrec(15, 1), CollectedAstro: sdk.ZeroInt(), Ema: sdk.NewInt(300), EmissionsAmount: sdk.ZeroInt()},
			shares:   1000,
			rate:     sdk.NewDecWithPrec(14, 1),
			maxAstro: 1_000_000,
			expState: EmissionsState{XAstroRate: sdk.NewDecWithPrec(14, 1), CollectedAstro: sdk.ZeroInt(), Ema: sdk.NewInt(100), EmissionsAmount: sdk.NewInt(80)},
		},
		"capped": {
			prev:     EmissionsState{XAstroRate: sdk.OneDec(), CollectedAstro: sdk.NewInt(10_000), Ema: sdk.ZeroInt(), EmissionsAmount: sdk.ZeroInt()},
			shares:   1000,
			rate:     sdk.NewDec(2),
			maxAstro: 500,
			expState: EmissionsState{XAstroRate: sdk.NewDec(2), CollectedAstro: sdk.NewInt(1000), Ema: sdk.NewInt(666), EmissionsAmount: sdk.NewInt(500)},
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			got := NextEmissionsState(spec.prev, sdk.NewInt(spec.shares), spec.rate, multiple, sdk.NewInt(spec.maxAstro))
			assert.JSONEq(t, string(MustMarshalJSON(spec.expState)), string(MustMarshalJSON(got)))
		})
	}
}

func TestXAstroRate(t *testing.T) {
	assert.Equal(t, sdk.OneDec().String(), XAstroRate(sdk.NewInt(100), sdk.ZeroInt()).String())
	assert.Equal(t, sdk.NewDecWithPrec(15, 1).String(), XAstroRate(sdk.NewInt(1500), sdk.NewInt(1000)).String())
}
