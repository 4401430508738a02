package server

import "barswing/internal/game"

// Wire types for the websocket play channel. The client sends key events,
// the server streams state snapshots once per frame.

const (
	MsgKey   = "key"
	MsgState = "state"
	MsgHello = "hello"
)

const (
	KeyLeft    = "left"
	KeyRight   = "right"
	KeyRelease = "release"
)

type KeyMsg struct {
	Type string `json:"type"`
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

type vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type barMsg struct {
	Pos    vec3    `json:"pos"`
	Radius float64 `json:"radius"`
}

type matMsg struct {
	Pos vec3 `json:"pos"`
}

// HelloMsg describes the fixed arena once, on connect.
type HelloMsg struct {
	Type string   `json:"type"`
	Bars []barMsg `json:"bars"`
	Mats []matMsg `json:"mats"`
}

// StateMsg is the per-frame snapshot.
type StateMsg struct {
	Type      string  `json:"type"`
	Time      float64 `json:"t"`
	Mode      string  `json:"mode"`
	Pos       vec3    `json:"pos"`
	Rot       float64 `json:"rot"`
	Score     int     `json:"score"`
	Fire      bool    `json:"fire"`
	Particles []vec3  `json:"particles,omitempty"`
}

func toVec3(v [3]float64) vec3 { return vec3{X: v[0], Y: v[1], Z: v[2]} }

func helloMsg(arena game.Arena) HelloMsg {
	msg := HelloMsg{Type: MsgHello}
	for _, b := range arena.Bars {
		msg.Bars = append(msg.Bars, barMsg{Pos: toVec3(b.Pos), Radius: b.Radius})
	}
	for _, m := range arena.Mats {
		msg.Mats = append(msg.Mats, matMsg{Pos: toVec3(m.Pos)})
	}
	return msg
}

func stateMsg(snap game.Snapshot) StateMsg {
	msg := StateMsg{
		Type:  MsgState,
		Time:  snap.Time,
		Mode:  snap.Mode.String(),
		Pos:   toVec3(snap.Pos),
		Rot:   snap.Rot,
		Score: snap.Score,
		Fire:  snap.FireActive,
	}
	for _, p := range snap.Particles {
		msg.Particles = append(msg.Particles, toVec3(p))
	}
	return msg
}

// sessionKey maps a wire key name onto the core's key type.
func sessionKey(name string) (game.Key, bool) {
	switch name {
	case KeyLeft:
		return game.KeyLeft, true
	case KeyRight:
		return game.KeyRight, true
	case KeyRelease:
		return game.KeyRelease, true
	}
	return 0, false
}
