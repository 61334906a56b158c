package types

const (
	EventTypeAddTribute    = "add_tribute"
	EventTypeRemoveTribute = "remove_tribute"
	EventTypeClaim         = "claim_tributes"

	AttributeKeyLpToken    = "lp_token"
	AttributeKeyEpoch      = "epoch"
	AttributeKeyFee        = "fee"
	AttributeKeyUser       = "user"
	AttributeKeyReceiver   = "receiver"
	AttributeValueCategory = ModuleName
)
