package provider

import (
	"context"
	"encoding/json"
	"math/big"
	"strconv"

	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

// Names of the methods of the API.
const (
	MethodGetBalance                          = "GetBalance"
	MethodGetTransaction                      = "GetTransaction"
	MethodCreateTransaction                   = "CreateTransaction"
	MethodGetSmartContractState               = "GetSmartContractState"
	MethodGetSmartContractSubState            = "GetSmartContractSubState"
	MethodGetSmartContractInit                = "GetSmartContractInit"
	MethodGetSmartContractCode                = "GetSmartContractCode"
	MethodGetSmartContracts                   = "GetSmartContracts"
	MethodGetContractAddressFromTransactionID = "GetContractAddressFromTransactionID"
	MethodGetNetworkID                        = "GetNetworkId"
	MethodGetBlockchainInfo                   = "GetBlockchainInfo"
	MethodGetMinimumGasPrice                  = "GetMinimumGasPrice"
	MethodGetNumTxBlocks                      = "GetNumTxBlocks"
)

// Balance is the balance and the nonce of an account.
type Balance struct {
	Balance string `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

// Amount returns the balance in Qa.
func (b Balance) Amount() (*big.Int, error) {
	return parseBig(b.Balance)
}

// BlockchainInfo is a summary of the state of the chain.
type BlockchainInfo struct {
	NumPeers          int      `json:"NumPeers"`
	NumTxBlocks       string   `json:"NumTxBlocks"`
	NumDSBlocks       string   `json:"NumDSBlocks"`
	NumTransactions   string   `json:"NumTransactions"`
	TransactionRate   float64  `json:"TransactionRate"`
	TxBlockRate       float64  `json:"TxBlockRate"`
	DSBlockRate       float64  `json:"DSBlockRate"`
	CurrentMiniEpoch  string   `json:"CurrentMiniEpoch"`
	CurrentDSEpoch    string   `json:"CurrentDSEpoch"`
	NumTxnsDSEpoch    string   `json:"NumTxnsDSEpoch"`
	NumTxnsTxEpoch    string   `json:"NumTxnsTxEpoch"`
	ShardingStructure Sharding `json:"ShardingStructure"`
}

// Sharding is the number of peers per shard.
type Sharding struct {
	NumPeers []int `json:"NumPeers"`
}

// GetBalance returns the balance and the nonce of the account.
func (p *Provider) GetBalance(ctx context.Context, addr scilla.Address) (Balance, error) {
	var balance Balance

	err := p.Call(ctx, MethodGetBalance, &balance, addr.Hex())
	if err != nil {
		return balance, xerrors.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// GetTransaction implements transaction.Fetcher. It returns the transaction if
// it is included in a block.
func (p *Provider) GetTransaction(ctx context.Context, id string) (*transaction.Response, error) {
	resp := new(transaction.Response)

	err := p.Call(ctx, MethodGetTransaction, resp, id)
	if err != nil {
		return nil, xerrors.Errorf("failed to get transaction: %w", err)
	}

	return resp, nil
}

// CreateTransaction submits a signed transaction.
func (p *Provider) CreateTransaction(ctx context.Context,
	req transaction.Request) (transaction.CreateResponse, error) {

	var resp transaction.CreateResponse

	err := p.Call(ctx, MethodCreateTransaction, &resp, req)
	if err != nil {
		return resp, xerrors.Errorf("failed to create transaction: %w", err)
	}

	return resp, nil
}

// GetSmartContractState returns the JSON object of the state of the contract.
func (p *Provider) GetSmartContractState(ctx context.Context, addr scilla.Address) (json.RawMessage, error) {
	var state json.RawMessage

	err := p.Call(ctx, MethodGetSmartContractState, &state, addr.Hex())
	if err != nil {
		return nil, xerrors.Errorf("failed to get state: %w", err)
	}

	return state, nil
}

// GetSmartContractSubState returns the JSON object of a field of the contract,
// optionally narrowed to the entries of the map indices.
func (p *Provider) GetSmartContractSubState(ctx context.Context, addr scilla.Address,
	field string, indices ...string) (json.RawMessage, error) {

	if indices == nil {
		indices = []string{}
	}

	var state json.RawMessage

	err := p.Call(ctx, MethodGetSmartContractSubState, &state, addr.Hex(), field, indices)
	if err != nil {
		return nil, xerrors.Errorf("failed to get sub state: %w", err)
	}

	return state, nil
}

// GetSmartContractInit returns the initialization parameters of the contract.
func (p *Provider) GetSmartContractInit(ctx context.Context, addr scilla.Address) (scilla.NamedValues, error) {
	var init scilla.NamedValues

	err := p.Call(ctx, MethodGetSmartContractInit, &init, addr.Hex())
	if err != nil {
		return nil, xerrors.Errorf("failed to get init: %w", err)
	}

	return init, nil
}

// GetSmartContractCode returns the source of the contract.
func (p *Provider) GetSmartContractCode(ctx context.Context, addr scilla.Address) (string, error) {
	var resp struct {
		Code string `json:"code"`
	}

	err := p.Call(ctx, MethodGetSmartContractCode, &resp, addr.Hex())
	if err != nil {
		return "", xerrors.Errorf("failed to get code: %w", err)
	}

	return resp.Code, nil
}

// GetSmartContracts returns the addresses of the contracts deployed by the
// account.
func (p *Provider) GetSmartContracts(ctx context.Context, owner scilla.Address) ([]scilla.Address, error) {
	var resp []struct {
		Address scilla.Address `json:"address"`
	}

	err := p.Call(ctx, MethodGetSmartContracts, &resp, owner.Hex())
	if err != nil {
		return nil, xerrors.Errorf("failed to get contracts: %w", err)
	}

	addrs := make([]scilla.Address, len(resp))
	for i, c := range resp {
		addrs[i] = c.Address
	}

	return addrs, nil
}

// GetContractAddressFromTransactionID returns the address of the contract
// deployed by the transaction.
func (p *Provider) GetContractAddressFromTransactionID(ctx context.Context, id string) (scilla.Address, error) {
	var addr scilla.Address

	err := p.Call(ctx, MethodGetContractAddressFromTransactionID, &addr, id)
	if err != nil {
		return addr, xerrors.Errorf("failed to get contract address: %w", err)
	}

	return addr, nil
}

// GetNetworkID returns the chain identifier of the network.
func (p *Provider) GetNetworkID(ctx context.Context) (uint16, error) {
	var resp string

	err := p.Call(ctx, MethodGetNetworkID, &resp)
	if err != nil {
		return 0, xerrors.Errorf("failed to get network id: %w", err)
	}

	id, err := strconv.ParseUint(resp, 10, 16)
	if err != nil {
		return 0, xerrors.Errorf("invalid network id '%s': %v", resp, err)
	}

	return uint16(id), nil
}

// GetBlockchainInfo returns the summary of the chain.
func (p *Provider) GetBlockchainInfo(ctx context.Context) (BlockchainInfo, error) {
	var info BlockchainInfo

	err := p.Call(ctx, MethodGetBlockchainInfo, &info)
	if err != nil {
		return info, xerrors.Errorf("failed to get blockchain info: %w", err)
	}

	return info, nil
}

// GetMinimumGasPrice returns the minimum gas price in Qa.
func (p *Provider) GetMinimumGasPrice(ctx context.Context) (*big.Int, error) {
	var resp string

	err := p.Call(ctx, MethodGetMinimumGasPrice, &resp)
	if err != nil {
		return nil, xerrors.Errorf("failed to get minimum gas price: %w", err)
	}

	return parseBig(resp)
}

// GetNumTxBlocks returns the number of transaction blocks.
func (p *Provider) GetNumTxBlocks(ctx context.Context) (uint64, error) {
	var resp string

	err := p.Call(ctx, MethodGetNumTxBlocks, &resp)
	if err != nil {
		return 0, xerrors.Errorf("failed to get number of blocks: %w", err)
	}

	num, err := strconv.ParseUint(resp, 10, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid number of blocks '%s': %v", resp, err)
	}

	return num, nil
}

func parseBig(str string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return nil, xerrors.Errorf("invalid amount '%s'", str)
	}

	return n, nil
}
