package game

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The JSON shapes below are the protocol spoken by the board and the
// participant clients; key names must not change.

// LooseID accepts identifiers sent either as JSON strings or numbers; boards
// are free to pick numeric ocean ids. Numbers are stored in canonical form,
// so 1, 1.0 and 1e0 all name ocean "1".
type LooseID string

func (id *LooseID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = LooseID(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = LooseID(canonicalNumber(n))
	return nil
}

func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type oceanWire struct {
	ID          LooseID     `json:"oId"`
	Round       int         `json:"round"`
	Ready       bool        `json:"ready"`
	BoardConnID string      `json:"boardSocketId"`
	Config      OceanConfig `json:"config"`
	Teams       []Team      `json:"tms"`
}

func (o Ocean) MarshalJSON() ([]byte, error) {
	teams := o.Teams
	if teams == nil {
		teams = []Team{}
	}
	return json.Marshal(oceanWire{
		ID:          LooseID(o.ID),
		Round:       o.Round,
		Ready:       o.Ready,
		BoardConnID: o.BoardConnID,
		Config:      o.Config,
		Teams:       teams,
	})
}

func (o *Ocean) UnmarshalJSON(b []byte) error {
	var w oceanWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Teams == nil {
		w.Teams = []Team{}
	}
	*o = Ocean{
		ID:          string(w.ID),
		Round:       w.Round,
		Ready:       w.Ready,
		BoardConnID: w.BoardConnID,
		Config:      w.Config,
		Teams:       w.Teams,
	}
	return nil
}

func (c OceanConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		m[k] = v
	}
	m["carrierMinDist"] = c.CarrierMinDist
	m["fighterFuel"] = c.FighterFuel
	return json.Marshal(m)
}

func (c *OceanConfig) UnmarshalJSON(b []byte) error {
	var known struct {
		CarrierMinDist int `json:"carrierMinDist"`
		FighterFuel    int `json:"fighterFuel"`
	}
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}
	var rest map[string]any
	if err := json.Unmarshal(b, &rest); err != nil {
		return err
	}
	delete(rest, "carrierMinDist")
	delete(rest, "fighterFuel")

	c.CarrierMinDist = known.CarrierMinDist
	c.FighterFuel = known.FighterFuel
	c.Extra = nil
	if len(rest) > 0 {
		c.Extra = rest
	}
	return nil
}

type teamWire struct {
	Committed bool      `json:"commit"`
	Color     string    `json:"clr"`
	C1X       int       `json:"c1x"`
	C1Y       int       `json:"c1y"`
	C2X       int       `json:"c2x"`
	C2Y       int       `json:"c2y"`
	Dir1      Direction `json:"dir1,omitempty"`
	Dir2      Direction `json:"dir2,omitempty"`
	Damage    int       `json:"dmg"`
	Players   []Player  `json:"plrs"`
}

func (t Team) MarshalJSON() ([]byte, error) {
	players := t.Players
	if players == nil {
		players = []Player{}
	}
	return json.Marshal(teamWire{
		Committed: t.Committed,
		Color:     t.Color,
		C1X:       t.CarrierA.X,
		C1Y:       t.CarrierA.Y,
		C2X:       t.CarrierB.X,
		C2Y:       t.CarrierB.Y,
		Dir1:      t.FacingA,
		Dir2:      t.FacingB,
		Damage:    t.Damage,
		Players:   players,
	})
}

func (t *Team) UnmarshalJSON(b []byte) error {
	w := teamWire{C1X: Unset.X, C1Y: Unset.Y, C2X: Unset.X, C2Y: Unset.Y}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Team{
		Color:     w.Color,
		Committed: w.Committed,
		CarrierA:  Point{X: w.C1X, Y: w.C1Y},
		CarrierB:  Point{X: w.C2X, Y: w.C2Y},
		FacingA:   w.Dir1,
		FacingB:   w.Dir2,
		Damage:    w.Damage,
		Players:   w.Players,
	}
	return nil
}

type playerWire struct {
	ID       int    `json:"id"`
	ConnID   string `json:"pSid"`
	Name     string `json:"nm"`
	Role     string `json:"rl"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Heading  string `json:"dir"`
	Altitude int    `json:"alt"`
	Fuel     int    `json:"fuel"`
	Damage   int    `json:"dmg"`
	Drone    string `json:"drn"`
	DiedX    int    `json:"diedX"`
	DiedY    int    `json:"diedY"`
	Status   string `json:"status"`
	DirCmd   string `json:"dirCmd"`
	MvmCmd   string `json:"mvmCmd"`
}

func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerWire{
		ID:       p.ID,
		ConnID:   p.ConnID,
		Name:     p.Name,
		Role:     p.Role,
		X:        p.Position.X,
		Y:        p.Position.Y,
		Heading:  p.Heading,
		Altitude: p.Altitude,
		Fuel:     p.Fuel,
		Damage:   p.Damage,
		Drone:    p.Drone,
		DiedX:    p.Died.X,
		DiedY:    p.Died.Y,
		Status:   p.Status,
		DirCmd:   p.DirCmd,
		MvmCmd:   p.MvmCmd,
	})
}

func (p *Player) UnmarshalJSON(b []byte) error {
	w := playerWire{X: Unset.X, Y: Unset.Y, DiedX: Unset.X, DiedY: Unset.Y}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*p = Player{
		ID:       w.ID,
		ConnID:   w.ConnID,
		Name:     w.Name,
		Role:     w.Role,
		Position: Point{X: w.X, Y: w.Y},
		Heading:  w.Heading,
		Altitude: w.Altitude,
		Fuel:     w.Fuel,
		Damage:   w.Damage,
		Drone:    w.Drone,
		Died:     Point{X: w.DiedX, Y: w.DiedY},
		Status:   w.Status,
		DirCmd:   w.DirCmd,
		MvmCmd:   w.MvmCmd,
	}
	return nil
}
