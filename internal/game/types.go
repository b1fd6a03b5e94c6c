package game

// MaxTeamSize is the largest number of players a single team can hold.
const MaxTeamSize = 6

const (
	RoleCaptain = "C"

	StatusAlive = "alive"

	// DefaultMovement is the movement command every fighter starts with (straight ascend).
	DefaultMovement = "strAsc"
)

type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Unset marks a grid position that has not been assigned yet.
var Unset = Point{X: -10, Y: -10}

func (p Point) IsSet() bool {
	return p != Unset
}

type OceanConfig struct {
	CarrierMinDist int `json:"carrierMinDist"`
	FighterFuel    int `json:"fighterFuel"`

	// Extra carries board settings the coordinator stores but never reads.
	Extra map[string]any `json:"-"`
}

type Player struct {
	ID       int
	ConnID   string
	Name     string
	Role     string
	Position Point
	Heading  string
	Altitude int
	Fuel     int
	Damage   int
	Drone    string
	Died     Point
	Status   string
	DirCmd   string
	MvmCmd   string
}

// NewPlayer builds a player record with fresh gameplay fields.
func NewPlayer(cfg OceanConfig, id int, name, connID string) Player {
	role := ""
	if id == 1 {
		role = RoleCaptain
	}
	return Player{
		ID:       id,
		ConnID:   connID,
		Name:     name,
		Role:     role,
		Position: Unset,
		Fuel:     cfg.FighterFuel,
		Died:     Unset,
		Status:   StatusAlive,
		MvmCmd:   DefaultMovement,
	}
}

func (p Player) IsCaptain() bool {
	return p.ID == 1
}

type Team struct {
	Color     string
	Committed bool
	CarrierA  Point
	CarrierB  Point
	FacingA   Direction
	FacingB   Direction
	Damage    int
	Players   []Player
}

// NewTeam creates a team whose only member is its captain.
func NewTeam(color string, captain Player) Team {
	return Team{
		Color:    color,
		CarrierA: Unset,
		CarrierB: Unset,
		Players:  []Player{captain},
	}
}

// Captain returns the first player of the team, if any.
func (t *Team) Captain() (*Player, bool) {
	if len(t.Players) == 0 {
		return nil, false
	}
	return &t.Players[0], true
}

func (t *Team) FindPlayer(id int) (*Player, bool) {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i], true
		}
	}
	return nil, false
}

// NextPlayerID is the 1-based position a new member would take.
func (t *Team) NextPlayerID() int {
	return len(t.Players) + 1
}

type Ocean struct {
	ID          string
	Round       int
	Ready       bool
	BoardConnID string
	Config      OceanConfig
	Teams       []Team
}

func NewOcean(id, boardConnID string, cfg OceanConfig) *Ocean {
	return &Ocean{
		ID:          id,
		BoardConnID: boardConnID,
		Config:      cfg,
		Teams:       []Team{},
	}
}

// FindTeam looks a team up by color. The index is only meaningful when found.
func (o *Ocean) FindTeam(color string) (*Team, int, bool) {
	for i := range o.Teams {
		if o.Teams[i].Color == color {
			return &o.Teams[i], i, true
		}
	}
	return nil, -1, false
}

func (o *Ocean) HasPlayerNamed(name string) bool {
	for _, t := range o.Teams {
		for _, p := range t.Players {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}

func (o *Ocean) PlayerCount() int {
	n := 0
	for _, t := range o.Teams {
		n += len(t.Players)
	}
	return n
}

// Clone returns a deep copy safe to hand to readers outside the dispatcher.
func (o *Ocean) Clone() *Ocean {
	c := *o
	if o.Config.Extra != nil {
		c.Config.Extra = make(map[string]any, len(o.Config.Extra))
		for k, v := range o.Config.Extra {
			c.Config.Extra[k] = v
		}
	}
	c.Teams = make([]Team, len(o.Teams))
	for i, t := range o.Teams {
		c.Teams[i] = t.Clone()
	}
	return &c
}

func (t Team) Clone() Team {
	players := make([]Player, len(t.Players))
	copy(players, t.Players)
	t.Players = players
	return t
}
