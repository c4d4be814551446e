/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PlayerID identifies a player for the lifetime of a tournament. The empty
// id stands for "no player" and is used for the open side of a bye.
type PlayerID string

const NoPlayer PlayerID = ""

// UnmarshalJSON accepts numeric or string ids; null maps to NoPlayer.
func (id *PlayerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = NoPlayer
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid player id %s: %w", b, err)
		}
		*id = PlayerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid player id %s: %w", b, err)
	}
	*id = PlayerID(n.String())

	return nil
}

// MarshalJSON writes integer-looking ids back as numbers so documents
// round-trip in the shape they were authored.
func (id PlayerID) MarshalJSON() ([]byte, error) {
	if id == NoPlayer {
		return []byte("null"), nil
	}
	if n, err := strconv.Atoi(string(id)); err == nil &&
		strconv.Itoa(n) == string(id) {
		return []byte(string(id)), nil
	}

	return json.Marshal(string(id))
}

type SystemID string

const (
	SystemSwiss      SystemID = "swiss"
	SystemRoundRobin SystemID = "roundrobin"
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "W"
	}
	return "B"
}

// Player is one roster entry along with their cumulative results.
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Rating int      `json:"rating"`
	Wins   int      `json:"wins"`
	Draws  int      `json:"draws"`
	Losses int      `json:"losses"`
}

// Pairing is a single board. A pairing with only one side set is a bye.
type Pairing struct {
	White  PlayerID `json:"white"`
	Black  PlayerID `json:"black"`
	Result string   `json:"result,omitempty"`
	Note   string   `json:"note,omitempty"`
}

func (p Pairing) IsBye() bool {
	return (p.White == NoPlayer) != (p.Black == NoPlayer)
}

// ByePlayer returns the player receiving the bye, or NoPlayer when p is a
// regular game.
func (p Pairing) ByePlayer() PlayerID {
	if !p.IsBye() {
		return NoPlayer
	}
	if p.White != NoPlayer {
		return p.White
	}
	return p.Black
}

type Round struct {
	Number   int       `json:"round"`
	Pairings []Pairing `json:"pairings"`
}

type Rules struct {
	AvoidRematches bool `json:"avoidRematches" yaml:"avoidRematches"`
	DoubleRound    bool `json:"doubleRound" yaml:"doubleRound"`
	PairHighVsLow  bool `json:"pairHighVsLow" yaml:"pairHighVsLow"`
}

// Tournament is the whole document a consumer hands to the engine.
type Tournament struct {
	Name            string   `json:"name,omitempty"`
	TimeControl     string   `json:"timeControl,omitempty"`
	StartDate       string   `json:"startDate,omitempty"`
	EndDate         string   `json:"endDate,omitempty"`
	Players         []Player `json:"players"`
	Rounds          []Round  `json:"rounds"`
	PairingSystemID SystemID `json:"pairingSystemId"`
	Rules           *Rules   `json:"rules,omitempty"`
}

// EffectiveRules returns the tournament rules, or the zero Rules when none
// were supplied.
func (t *Tournament) EffectiveRules() Rules {
	if t.Rules == nil {
		return Rules{}
	}
	return *t.Rules
}

// PlayerByID returns the roster entry for id.
func (t *Tournament) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Proposal is a computed, not yet recorded, round.
type Proposal struct {
	Round    int       `json:"round"`
	Pairings []Pairing `json:"pairings"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Boards returns the non-bye pairings of the proposal.
func (p *Proposal) Boards() []Pairing {
	var ret []Pairing
	for _, pr := range p.Pairings {
		if !pr.IsBye() {
			ret = append(ret, pr)
		}
	}
	return ret
}

// Byes returns the players receiving a bye in the proposal.
func (p *Proposal) Byes() []PlayerID {
	var ret []PlayerID
	for _, pr := range p.Pairings {
		if pr.IsBye() {
			ret = append(ret, pr.ByePlayer())
		}
	}
	return ret
}
