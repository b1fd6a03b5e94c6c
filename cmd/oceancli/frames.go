package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"ocean-server/internal/game"
)

// parseCommand turns "action {json}" into a websocket frame. The payload is
// optional.
func parseCommand(line string) ([]byte, error) {
	line = strings.TrimSpace(line)
	action, payload, _ := strings.Cut(line, " ")
	if action == "" {
		return nil, errors.New("missing action")
	}

	data := json.RawMessage("{}")
	if payload = strings.TrimSpace(payload); payload != "" {
		if !json.Valid([]byte(payload)) {
			return nil, fmt.Errorf("payload for %s is not valid JSON", action)
		}
		data = json.RawMessage(payload)
	}

	return json.Marshal(struct {
		Action string          `json:"action"`
		Data   json.RawMessage `json:"data"`
	}{Action: action, Data: data})
}

func printFrame(w io.Writer, message []byte, raw bool) {
	var frame struct {
		Action string          `json:"action"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(message, &frame); err != nil {
		fmt.Fprintf(w, "\n<< %s\n", message)
		return
	}

	fmt.Fprintf(w, "\n<< %s\n", frame.Action)
	if !raw {
		if o, ok := oceanIn(frame.Data); ok {
			printOcean(w, o)
			return
		}
	}
	js, err := json.MarshalIndent(frame.Data, "", "  ")
	if err != nil {
		js = frame.Data
	}
	fmt.Fprintln(w, string(js))
}

// oceanIn finds an ocean either as the payload itself or under an "ocean" key.
func oceanIn(data json.RawMessage) (game.Ocean, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return game.Ocean{}, false
	}
	if inner, ok := fields["ocean"]; ok {
		return oceanIn(inner)
	}
	if _, ok := fields["tms"]; !ok {
		return game.Ocean{}, false
	}
	var o game.Ocean
	if err := json.Unmarshal(data, &o); err != nil {
		return game.Ocean{}, false
	}
	return o, true
}

// maxGrid bounds the drawn grid; tiles beyond it are left out.
const maxGrid = 64

// printOcean draws the carriers on a grid. Each tile shows the first letter
// of its team color.
func printOcean(w io.Writer, o game.Ocean) {
	fmt.Fprintf(w, "Ocean %s  round %d  ready %t  board %s\n", o.ID, o.Round, o.Ready, o.BoardConnID)

	size := 10
	tiles := map[game.Point]byte{}
	for _, t := range o.Teams {
		mark := byte('?')
		if t.Color != "" {
			mark = t.Color[0]
		}
		for _, p := range []game.Point{t.CarrierA, t.CarrierB} {
			if !p.IsSet() || p.X < 0 || p.Y < 0 || p.X >= maxGrid || p.Y >= maxGrid {
				continue
			}
			tiles[p] = mark
			size = max(size, p.X+1, p.Y+1)
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if mark, ok := tiles[game.Point{X: x, Y: y}]; ok {
				fmt.Fprintf(w, "%c ", mark)
			} else {
				fmt.Fprint(w, ". ")
			}
		}
		fmt.Fprintln(w)
	}

	for i, t := range o.Teams {
		committed := ""
		if t.Committed {
			committed = " (committed)"
		}
		fmt.Fprintf(w, "Team %d %s%s:", i, t.Color, committed)
		for _, p := range t.Players {
			fmt.Fprintf(w, " %d:%s", p.ID, p.Name)
		}
		fmt.Fprintln(w)
	}
}
