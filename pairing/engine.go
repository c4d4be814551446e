/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTournament = errors.New("invalid tournament")
	ErrScheduleComplete  = errors.New("round robin schedule complete")
	ErrUnsupportedSystem = errors.New("pairing system not supported")
)

// System proposes the next round of a tournament.
type System interface {
	Name() string
	NextRound(t *Tournament) (*Proposal, error)
}

var systems = map[SystemID]System{
	SystemSwiss:      swiss{},
	SystemRoundRobin: roundRobin{},
}

// GetSystem returns the pairing system registered under id.
func GetSystem(id SystemID) (System, error) {
	sys, ok := systems[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSystem, id)
	}
	return sys, nil
}

// NextRound validates t and asks its pairing system for the next round.
// A finished round robin yields ErrScheduleComplete.
func NextRound(t *Tournament) (*Proposal, error) {
	sys, err := GetSystem(t.PairingSystemID)
	if err != nil {
		return nil, err
	}
	if err := Validate(t); err != nil {
		return nil, err
	}

	return sys.NextRound(t)
}
