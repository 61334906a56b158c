package types

const (
	EventTypeLock            = "lock"
	EventTypeUnlock          = "unlock"
	EventTypeRelock          = "relock"
	EventTypeWithdraw        = "withdraw"
	EventTypeUpdateBlacklist = "update_blacklist"

	AttributeKeyUser        = "user"
	AttributeKeyVotingPower = "voting_power"
	AttributeKeyUnlockTime  = "unlock_time"
	AttributeKeyAdded       = "added"
	AttributeKeyRemoved     = "removed"
	AttributeValueCategory  = ModuleName
)
