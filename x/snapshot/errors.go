package snapshot

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

// Codespace is the error codespace of the snapshot store
const Codespace = "snapshot"

var (
	ErrNonMonotonic = sdkerrors.Register(Codespace, 2, "timestamp before latest point")
	ErrEmptySubject = sdkerrors.Register(Codespace, 3, "empty subject")
)
