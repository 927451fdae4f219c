package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/zilliqa/scilla"
)

const testResponse = `{
  "ID": "52605cee6955b3d0c3ea6a8a9ba6dcfdd07fe1d3cbee3ab5b8d2a29f75e4b1c4",
  "amount": "0",
  "gasLimit": "10000",
  "gasPrice": "2000000000",
  "nonce": "2",
  "receipt": {
    "accepted": false,
    "cumulative_gas": "678",
    "epoch_num": "584",
    "event_logs": [
      {
        "_eventname": "setHello",
        "address": "0x9fa6ec2f1f6c3b1d1f3f1a36bf04ac7a5ea79b0e",
        "params": [
          {"type": "Int32", "value": "2", "vname": "code"}
        ]
      }
    ],
    "success": true,
    "errors": {"0": [7]}
  },
  "senderPubKey": "0x03bfad0f0b53cff5213b5947f3ddd66acee8906aba3610c111915aecc84092e052",
  "signature": "0xabcd",
  "toAddr": "9fa6ec2f1f6c3b1d1f3f1a36bf04ac7a5ea79b0e",
  "version": "21823489"
}`

func TestResponse_Decode(t *testing.T) {
	var resp Response

	err := json.Unmarshal([]byte(testResponse), &resp)
	require.NoError(t, err)

	require.True(t, resp.Receipt.Success)
	require.Equal(t, "678", resp.Receipt.CumulativeGas)
	require.Equal(t, []int{7}, resp.Receipt.Errors["0"])

	event, found := resp.Receipt.Event("setHello")
	require.True(t, found)
	require.Equal(t, scilla.Primitive("2"), event.Params.Get("code"))

	_, found = resp.Receipt.Event("unknown")
	require.False(t, found)
}

func TestCreateResponse_Decode(t *testing.T) {
	var resp CreateResponse

	err := json.Unmarshal([]byte(`{"Info":"Contract Creation txn, sent to shard",
		"TranID":"abc","ContractAddress":"9fa6ec2f1f6c3b1d1f3f1a36bf04ac7a5ea79b0e"}`), &resp)
	require.NoError(t, err)
	require.Equal(t, "0x9fa6ec2f1f6c3b1d1f3f1a36bf04ac7a5ea79b0e", resp.ContractAddress.String())

	resp = CreateResponse{}
	err = json.Unmarshal([]byte(`{"Info":"Non-contract txn, sent to shard","TranID":"abc"}`), &resp)
	require.NoError(t, err)
	require.True(t, resp.ContractAddress.IsZero())
}
