package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/voteflow/votecli/internal/chain"
	"github.com/voteflow/votecli/internal/wallet"
)

// gasFallback is used when eth_estimateGas fails.
const gasFallback = 300000

// waitTimeout bounds how long WaitMined polls for a receipt.
const waitTimeout = 3 * time.Minute

// Handle is a typed binding of the voting contract address and schema to
// one backing provider. A handle is bound to exactly one provider kind for
// its lifetime; signing operations build a fresh handle per call.
type Handle struct {
	address common.Address
	abi     abi.ABI
	client  *chain.EVMClient
	signer  *wallet.Signer
	chainID *big.Int
}

// NewReadHandle binds the contract to a read-only endpoint.
// Pure construction; no network I/O happens until the first call.
func NewReadHandle(addr string, client *chain.EVMClient) (*Handle, error) {
	parsed, err := VotingABI()
	if err != nil {
		return nil, fmt.Errorf("parsing voting ABI: %w", err)
	}
	if !common.IsHexAddress(addr) {
		return nil, fmt.Errorf("invalid contract address: %q", addr)
	}
	return &Handle{
		address: common.HexToAddress(addr),
		abi:     parsed,
		client:  client,
	}, nil
}

// NewSigningHandle binds the contract to a signer for read+write use.
func NewSigningHandle(addr string, client *chain.EVMClient, signer *wallet.Signer, chainID *big.Int) (*Handle, error) {
	h, err := NewReadHandle(addr, client)
	if err != nil {
		return nil, err
	}
	h.signer = signer
	h.chainID = chainID
	return h, nil
}

// CanSign reports whether the handle is bound to a signer.
func (h *Handle) CanSign() bool { return h.signer != nil }

// Address returns the bound contract address.
func (h *Handle) Address() common.Address { return h.address }

// EventCount returns the total number of voting events.
func (h *Handle) EventCount(ctx context.Context) (*big.Int, error) {
	out, err := h.call(ctx, "eventCount")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// VotingEvent fetches one voting event by its contract-assigned index.
func (h *Handle) VotingEvent(ctx context.Context, index *big.Int) (Campaign, error) {
	out, err := h.call(ctx, "getVotingEvent", index)
	if err != nil {
		return Campaign{}, err
	}
	return Campaign{
		ID:            *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Name:          *abi.ConvertType(out[1], new(string)).(*string),
		Purpose:       *abi.ConvertType(out[2], new(string)).(*string),
		Key:           *abi.ConvertType(out[3], new(string)).(*string),
		StartTime:     *abi.ConvertType(out[4], new(*big.Int)).(**big.Int),
		Duration:      *abi.ConvertType(out[5], new(*big.Int)).(**big.Int),
		MaxCandidates: *abi.ConvertType(out[6], new(*big.Int)).(**big.Int),
	}, nil
}

// Candidates fetches all candidate records for a voting event, in
// contract-returned order.
func (h *Handle) Candidates(ctx context.Context, eventID *big.Int) ([]Candidate, error) {
	out, err := h.call(ctx, "getCandidates", eventID)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]Candidate)).(*[]Candidate), nil
}

// CreateVotingEvent submits a campaign creation and returns the tx hash.
func (h *Handle) CreateVotingEvent(ctx context.Context, p CampaignParams) (string, error) {
	return h.send(ctx, "createVotingEvent",
		p.Name, p.Purpose, p.Key, p.StartTime, p.Duration, p.MaxCandidates)
}

// RegisterVoter submits a voter registration and returns the tx hash.
func (h *Handle) RegisterVoter(ctx context.Context, eventID *big.Int, key string) (string, error) {
	return h.send(ctx, "registerVoter", eventID, key)
}

// RegisterCandidate submits a candidate registration and returns the tx hash.
func (h *Handle) RegisterCandidate(ctx context.Context, eventID *big.Int, name, key string) (string, error) {
	return h.send(ctx, "registerCandidate", eventID, name, key)
}

// WaitMined blocks until the transaction is confirmed or the wait times out.
func (h *Handle) WaitMined(ctx context.Context, txHash string) (*chain.TxReceipt, error) {
	return h.client.WaitForReceipt(ctx, txHash, waitTimeout)
}

// call invokes a view function and returns the unpacked outputs.
func (h *Handle) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	calldata, err := h.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s call: %w", method, err)
	}

	result, err := h.client.CallContract(ctx, h.address.Hex(), "0x"+hex.EncodeToString(calldata))
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}

	data, err := hex.DecodeString(strings.TrimPrefix(result, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", method, err)
	}

	out, err := h.abi.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s result: %w", method, err)
	}
	return out, nil
}

// send signs and broadcasts a write call, returning the tx hash.
func (h *Handle) send(ctx context.Context, method string, args ...interface{}) (string, error) {
	if h.signer == nil {
		return "", fmt.Errorf("handle is read-only: %s needs a signer", method)
	}

	calldata, err := h.abi.Pack(method, args...)
	if err != nil {
		return "", fmt.Errorf("encoding %s call: %w", method, err)
	}
	hexData := "0x" + hex.EncodeToString(calldata)

	from := h.signer.Address()

	gas, err := h.client.EstimateGas(ctx, from, h.address.Hex(), hexData, nil)
	if err != nil {
		gas = gasFallback
	}

	gasPrice, err := h.client.GasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := h.client.GetPendingNonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   h.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &h.address,
		Value:     big.NewInt(0),
		Data:      calldata,
	})

	raw, err := h.signer.SignTx(tx, h.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := h.client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}
