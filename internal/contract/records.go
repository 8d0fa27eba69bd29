package contract

import "math/big"

// Campaign is one voting event record, decoded from the contract's
// getVotingEvent accessor at the boundary.
type Campaign struct {
	ID            *big.Int
	Name          string
	Purpose       string
	Key           string
	StartTime     *big.Int
	Duration      *big.Int
	MaxCandidates *big.Int
}

// Candidate is one entry of the contract's getCandidates accessor.
// The abi tags bind the fields to the tuple components.
type Candidate struct {
	Name       string `abi:"name"`
	Key        string `abi:"key"`
	Registered bool   `abi:"registered"`
}

// CampaignParams are the arguments of createVotingEvent.
type CampaignParams struct {
	Name          string
	Purpose       string
	Key           string
	StartTime     *big.Int
	Duration      *big.Int
	MaxCandidates *big.Int
}
