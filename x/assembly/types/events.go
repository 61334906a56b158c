package types

const (
	EventTypeSubmitProposal       = "submit_proposal"
	EventTypeCastVote             = "cast_vote"
	EventTypeEndProposal          = "end_proposal"
	EventTypeExecuteProposal      = "execute_proposal"
	EventTypeExpireProposal       = "expire_proposal"
	EventTypeIBCProposalCompleted = "ibc_proposal_completed"
	EventTypeUpdateConfig         = "update_config"

	AttributeKeyProposalID  = "proposal_id"
	AttributeKeySubmitter   = "submitter"
	AttributeKeyVoter       = "voter"
	AttributeKeyVote        = "vote"
	AttributeKeyVotingPower = "voting_power"
	AttributeKeyStatus      = "status"
	AttributeKeyOutpost     = "outpost"
	AttributeValueCategory  = ModuleName
)
