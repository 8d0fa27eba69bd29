package contract

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// votingABI is the fixed method schema of the on-chain voting contract.
const votingABI = `[
  {
    "type": "function",
    "name": "eventCount",
    "stateMutability": "view",
    "inputs": [],
    "outputs": [{"name": "", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "getVotingEvent",
    "stateMutability": "view",
    "inputs": [{"name": "index", "type": "uint256"}],
    "outputs": [
      {"name": "id", "type": "uint256"},
      {"name": "name", "type": "string"},
      {"name": "purpose", "type": "string"},
      {"name": "key", "type": "string"},
      {"name": "startTime", "type": "uint256"},
      {"name": "duration", "type": "uint256"},
      {"name": "maxCandidates", "type": "uint256"}
    ]
  },
  {
    "type": "function",
    "name": "createVotingEvent",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "name", "type": "string"},
      {"name": "purpose", "type": "string"},
      {"name": "key", "type": "string"},
      {"name": "startTime", "type": "uint256"},
      {"name": "duration", "type": "uint256"},
      {"name": "maxCandidates", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "registerVoter",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "eventId", "type": "uint256"},
      {"name": "key", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "registerCandidate",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "eventId", "type": "uint256"},
      {"name": "name", "type": "string"},
      {"name": "key", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getCandidates",
    "stateMutability": "view",
    "inputs": [{"name": "eventId", "type": "uint256"}],
    "outputs": [
      {
        "name": "",
        "type": "tuple[]",
        "components": [
          {"name": "name", "type": "string"},
          {"name": "key", "type": "string"},
          {"name": "registered", "type": "bool"}
        ]
      }
    ]
  }
]`

var (
	votingABIOnce   sync.Once
	votingABIParsed abi.ABI
	votingABIErr    error
)

// VotingABI returns the parsed voting contract schema.
func VotingABI() (abi.ABI, error) {
	votingABIOnce.Do(func() {
		votingABIParsed, votingABIErr = abi.JSON(strings.NewReader(votingABI))
	})
	return votingABIParsed, votingABIErr
}
