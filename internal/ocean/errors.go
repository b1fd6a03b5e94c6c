package ocean

import (
	"errors"

	"ocean-server/internal/game"
)

// Rule violations. Each one is reported to a single connection through its
// own outbound action and leaves the ocean unchanged.
var (
	ErrOceanNotFound   = errors.New("ocean does not exist")
	ErrOceanExists     = errors.New("ocean id already in use")
	ErrInProgress      = errors.New("ocean already in progress")
	ErrDuplicateName   = errors.New("player name already taken")
	ErrTeamFull        = errors.New("team is full")
	ErrTooClose        = game.ErrTooClose
	ErrNotAttached     = game.ErrNotAttached
	ErrNotAllCommitted = errors.New("not all teams have committed a carrier")
)

// Malformed or inconsistent requests, answered with ActionInvalidRequest.
var (
	ErrTeamNotFound   = errors.New("team does not exist")
	ErrPlayerNotFound = errors.New("player does not exist")
	ErrTeamIndex      = errors.New("team index out of range")
	ErrRoundRegressed = errors.New("round cannot go backwards")
	ErrReopened       = errors.New("started game or committed team cannot be reopened")
	ErrBadPayload     = errors.New("invalid payload")
)

// Outbound actions.
const (
	ActionConnected        = "connected"
	ActionOceanCreated     = "oceanCreated"
	ActionOceanExists      = "oceanExists"
	ActionPlayerCreated    = "playerCreated"
	ActionOceanDne         = "oceanDne"
	ActionInProgress       = "inProgress"
	ActionSameName         = "errSameName"
	ActionTeamFull         = "teamFull"
	ActionPlacedCarrier    = "placedCarrier"
	ActionTooClose         = "tooClose"
	ActionNotAttached      = "notAttached"
	ActionRemovedCarrier   = "removedCarrier"
	ActionCarrierCommitted = "carrierCommitted"
	ActionNotAllCommitted  = "notAllCommitted"
	ActionInitiateGame     = "initiateGame"
	ActionFlightControl    = "flightControl"
	ActionRoundUpdated     = "roundUpdated"
	ActionOceanUpdated     = "oceanUpdated"
	ActionNewPlayerInfo    = "newPlayerInfo"
	ActionInvalidRequest   = "invalidRequest"
)
