package channel

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	channeltypes "github.com/cosmos/ibc-go/v2/modules/core/04-channel/types"
)

// NewResultAck returns a successful acknowledgement with the given payload
func NewResultAck(result []byte) channeltypes.Acknowledgement {
	if len(result) == 0 {
		result = []byte{0x01}
	}
	return channeltypes.NewResultAcknowledgement(result)
}

// NewErrorAck returns an error acknowledgement carrying the error message
func NewErrorAck(err error) channeltypes.Acknowledgement {
	return channeltypes.NewErrorAcknowledgement(err.Error())
}

// ParseAck decodes an acknowledgement. For error acknowledgements the error message is returned as
// ackErr with a nil error.
func ParseAck(bz []byte) (result []byte, ackErr string, err error) {
	var ack channeltypes.Acknowledgement
	if err := channeltypes.SubModuleCdc.UnmarshalJSON(bz, &ack); err != nil {
		return nil, "", sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "cannot unmarshal acknowledgement: %s", err)
	}
	switch resp := ack.Response.(type) {
	case *channeltypes.Acknowledgement_Result:
		return resp.Result, "", nil
	case *channeltypes.Acknowledgement_Error:
		if resp.Error == "" {
			return nil, "unknown error", nil
		}
		return nil, resp.Error, nil
	default:
		return nil, "", sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unknown acknowledgement response: %T", resp)
	}
}
