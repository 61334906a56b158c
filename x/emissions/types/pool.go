package types

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// DeterminePoolPrefix returns the bech32 prefix of the chain a pool lives on. Pools are identified by
// their LP token: either a token factory denom "factory/<creator>/<subdenom>" or a contract address.
func DeterminePoolPrefix(pool string) (string, error) {
	addr := pool
	if strings.HasPrefix(pool, "factory/") {
		parts := strings.SplitN(pool, "/", 3)
		if len(parts) != 3 || parts[2] == "" {
			return "", sdkerrors.Wrapf(ErrInvalidPool, "malformed denom: %s", pool)
		}
		addr = parts[1]
	}
	hrp, _, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return "", sdkerrors.Wrapf(ErrInvalidPool, "%s: %s", pool, err)
	}
	return hrp, nil
}
