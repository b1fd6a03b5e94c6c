package shared

import (
	"encoding/json"

	"ocean-server/internal/game"
)

// Inbound payloads. Key names follow the board and client protocol, which is
// not consistent about casing (oId vs oid).

// Board-originated.

type CreateOcean struct {
	OceanID game.LooseID     `json:"oId"`
	Config  game.OceanConfig `json:"config"`
}

type RoundUpdate struct {
	OceanID game.LooseID `json:"oId"`
	Round   int          `json:"round"`
}

// PlayerInfo is relayed verbatim; only the target connection is read.
type PlayerInfo struct {
	TargetConnID string          `json:"pSid"`
	Raw          json.RawMessage `json:"-"`
}

func (p *PlayerInfo) UnmarshalJSON(b []byte) error {
	var target struct {
		TargetConnID string `json:"pSid"`
	}
	if err := json.Unmarshal(b, &target); err != nil {
		return err
	}
	p.TargetConnID = target.TargetConnID
	p.Raw = append(json.RawMessage(nil), b...)
	return nil
}

type FlightControl struct {
	OceanID     game.LooseID `json:"oid"`
	TeamColor   string       `json:"clr"`
	PlayerID    int          `json:"pid"`
	BoardConnID string       `json:"bsid"`
	DirCmd      string       `json:"dirCmd"`
	MvmCmd      string       `json:"mvmCmd"`
}

// Participant-originated.

type CreatePlayer struct {
	OceanID   game.LooseID `json:"ocean"`
	Name      string       `json:"name"`
	TeamColor string       `json:"team"`
}

type PlaceCarrier struct {
	OceanID   game.LooseID `json:"oid"`
	TeamColor string       `json:"teamClr"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
}

type RemoveCarrier struct {
	OceanID   game.LooseID `json:"oid"`
	TeamColor string       `json:"teamClr"`
}

type CommitCarrier struct {
	OceanID   game.LooseID `json:"oid"`
	TeamIndex int          `json:"tIdx"`
}

type EveryonesReady struct {
	OceanID game.LooseID `json:"oid"`
}
