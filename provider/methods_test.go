package provider

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/scilla"
	"go.dedis.ch/zilliqa/transaction"
	"golang.org/x/xerrors"
)

const testAddr = "381f4008505e940ad7681ec3468a719060caf796"

func TestProvider_GetBalance(t *testing.T) {
	p, done := newProvider(t, func(req request) (interface{}, *RPCError) {
		require.Equal(t, MethodGetBalance, req.Method)
		require.Equal(t, []interface{}{testAddr}, req.Params)

		return map[string]interface{}{"balance": "1000000000000", "nonce": 3}, nil
	})
	defer done()

	balance, err := p.GetBalance(context.Background(), mustAddr(t))
	require.NoError(t, err)
	require.Equal(t, uint64(3), balance.Nonce)

	amount, err := balance.Amount()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1_000_000_000_000), amount)

	_, err = Balance{Balance: "abc"}.Amount()
	require.EqualError(t, err, "invalid amount 'abc'")
}

func TestProvider_CreateTransaction(t *testing.T) {
	p, done := newProvider(t, func(req request) (interface{}, *RPCError) {
		require.Equal(t, MethodCreateTransaction, req.Method)
		require.Len(t, req.Params, 1)

		body := req.Params[0].(map[string]interface{})
		require.Equal(t, "0x381f4008505e940AD7681EC3468a719060caF796", body["toAddr"])
		require.Equal(t, "10000", body["gasLimit"])
		require.Equal(t, float64(65537), body["version"])

		return map[string]interface{}{
			"Info":            "Contract Creation txn, sent to shard",
			"TranID":          "abc",
			"ContractAddress": testAddr,
		}, nil
	})
	defer done()

	params := transaction.NewBuilder().
		ChainID(transaction.MainnetChainID).
		ToAddr(mustAddr(t)).
		GasLimit(transaction.DefaultGasLimit).
		Build()

	resp, err := p.CreateTransaction(context.Background(), params.Request())
	require.NoError(t, err)
	require.Equal(t, "abc", resp.TranID)
	require.Equal(t, mustAddr(t), resp.ContractAddress)
}

func TestProvider_GetTransaction(t *testing.T) {
	p, done := newProvider(t, func(req request) (interface{}, *RPCError) {
		require.Equal(t, []interface{}{"abc"}, req.Params)

		return map[string]interface{}{
			"ID":      "abc",
			"receipt": map[string]interface{}{"success": true, "cumulative_gas": "10"},
		}, nil
	})
	defer done()

	var fetcher transaction.Fetcher = p

	resp, err := fetcher.GetTransaction(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", resp.ID)
	require.True(t, resp.Receipt.Success)
}

func TestProvider_ContractReads(t *testing.T) {
	p, done := newProvider(t, func(req request) (interface{}, *RPCError) {
		switch req.Method {
		case MethodGetSmartContractState:
			return map[string]interface{}{"welcome_msg": "hello"}, nil
		case MethodGetSmartContractSubState:
			require.Equal(t, []interface{}{testAddr, "balances", []interface{}{"0xabc"}}, req.Params)
			return map[string]interface{}{"balances": map[string]interface{}{"0xabc": "1"}}, nil
		case MethodGetSmartContractInit:
			return []interface{}{
				map[string]interface{}{"vname": "owner", "type": "ByStr20", "value": "0x" + testAddr},
			}, nil
		case MethodGetSmartContractCode:
			return map[string]interface{}{"code": "scilla_version 0"}, nil
		case MethodGetSmartContracts:
			return []interface{}{map[string]interface{}{"address": testAddr}}, nil
		case MethodGetContractAddressFromTransactionID:
			return testAddr, nil
		}

		return nil, &RPCError{Code: -32601, Message: "method not found"}
	})
	defer done()

	ctx := context.Background()

	state, err := p.GetSmartContractState(ctx, mustAddr(t))
	require.NoError(t, err)
	require.JSONEq(t, `{"welcome_msg":"hello"}`, string(state))

	state, err = p.GetSmartContractSubState(ctx, mustAddr(t), "balances", "0xabc")
	require.NoError(t, err)
	require.JSONEq(t, `{"balances":{"0xabc":"1"}}`, string(state))

	init, err := p.GetSmartContractInit(ctx, mustAddr(t))
	require.NoError(t, err)
	require.Equal(t, scilla.Primitive("0x"+testAddr), init.Get("owner"))

	code, err := p.GetSmartContractCode(ctx, mustAddr(t))
	require.NoError(t, err)
	require.Equal(t, "scilla_version 0", code)

	addrs, err := p.GetSmartContracts(ctx, mustAddr(t))
	require.NoError(t, err)
	require.Equal(t, []scilla.Address{mustAddr(t)}, addrs)

	addr, err := p.GetContractAddressFromTransactionID(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, mustAddr(t), addr)

	_, err = p.GetNetworkID(ctx)
	require.EqualError(t, err, "failed to get network id: rpc error -32601: method not found")

	var rpcErr *RPCError
	require.True(t, xerrors.As(err, &rpcErr))
	require.Equal(t, -32601, rpcErr.Code)
}

func TestProvider_ChainInfo(t *testing.T) {
	p, done := newProvider(t, func(req request) (interface{}, *RPCError) {
		require.Empty(t, req.Params)

		switch req.Method {
		case MethodGetNetworkID:
			return "333", nil
		case MethodGetMinimumGasPrice:
			return "2000000000", nil
		case MethodGetNumTxBlocks:
			return "42", nil
		case MethodGetBlockchainInfo:
			return json.RawMessage(`{"NumPeers":5,"NumTxBlocks":"42",
				"ShardingStructure":{"NumPeers":[2,3]}}`), nil
		}

		return "not a number", nil
	})
	defer done()

	ctx := context.Background()

	id, err := p.GetNetworkID(ctx)
	require.NoError(t, err)
	require.Equal(t, transaction.TestnetChainID, id)

	price, err := p.GetMinimumGasPrice(ctx)
	require.NoError(t, err)
	require.Equal(t, transaction.DefaultGasPrice, price)

	num, err := p.GetNumTxBlocks(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(42), num)

	info, err := p.GetBlockchainInfo(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, info.NumPeers)
	require.Equal(t, []int{2, 3}, info.ShardingStructure.NumPeers)
}

func mustAddr(t *testing.T) scilla.Address {
	addr, err := scilla.ParseAddress(testAddr)
	require.NoError(t, err)

	return addr
}
