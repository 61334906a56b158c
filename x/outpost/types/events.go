package types

const (
	EventTypeVote             = "outpost_vote"
	EventTypeCastVote         = "outpost_cast_vote"
	EventTypeUpdateUserVotes  = "outpost_update_user_votes"
	EventTypeRegisterProposal = "outpost_register_proposal"
	EventTypeSetEmissions     = "outpost_set_emissions"
	EventTypeAck              = "outpost_ack"
	EventTypeSetChannel       = "set_voting_channel"

	AttributeKeyVoter       = "voter"
	AttributeKeyVotingPower = "voting_power"
	AttributeKeyProposalID  = "proposal_id"
	AttributeKeyChannel     = "channel"
	AttributeKeySequence    = "sequence"
	AttributeKeyAckSuccess  = "success"
	AttributeKeyAckError    = "error"
	AttributeKeyPools       = "pools"
	AttributeValueCategory  = ModuleName
)
