package types

const (
	EventTypeVote              = "emissions_vote"
	EventTypeRefreshVotes      = "refresh_user_votes"
	EventTypeWhitelistPool     = "whitelist_pool"
	EventTypeRemovePool        = "remove_pool"
	EventTypeUpdateOutpost     = "update_outpost"
	EventTypeRemoveOutpost     = "remove_outpost"
	EventTypeJailOutpost       = "jail_outpost"
	EventTypeUnjailOutpost     = "unjail_outpost"
	EventTypeTunePools         = "tune_pools"
	EventTypeRetryOutpost      = "retry_outpost"
	EventTypeEmissionsFinished = "emissions_finished"
	EventTypeRegisterProposal  = "register_proposal"
	EventTypePacket            = "emissions_packet"

	AttributeKeyVoter       = "voter"
	AttributeKeyVotingPower = "voting_power"
	AttributeKeyPool        = "pool"
	AttributeKeyOutpost     = "outpost"
	AttributeKeyTuneTs      = "tune_ts"
	AttributeKeyEmissions   = "emissions"
	AttributeKeyStatus      = "status"
	AttributeKeyProposalID  = "proposal_id"
	AttributeKeyChannel     = "channel"
	AttributeKeyAckSuccess  = "success"
	AttributeKeyAckError    = "error"
	AttributeValueCategory  = ModuleName
)
