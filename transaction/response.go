package transaction

import (
	"go.dedis.ch/zilliqa/scilla"
)

// Response is a transaction read from the chain.
type Response struct {
	ID           string  `json:"ID"`
	Version      string  `json:"version"`
	Nonce        string  `json:"nonce"`
	ToAddr       string  `json:"toAddr"`
	SenderPubKey string  `json:"senderPubKey"`
	Amount       string  `json:"amount"`
	GasPrice     string  `json:"gasPrice"`
	GasLimit     string  `json:"gasLimit"`
	Code         string  `json:"code,omitempty"`
	Data         string  `json:"data,omitempty"`
	Signature    string  `json:"signature"`
	Receipt      Receipt `json:"receipt"`
}

// Receipt is the outcome of the execution of a transaction.
type Receipt struct {
	Accepted      bool              `json:"accepted"`
	CumulativeGas string            `json:"cumulative_gas"`
	EpochNum      string            `json:"epoch_num"`
	Success       bool              `json:"success"`
	EventLogs     []EventLog        `json:"event_logs"`
	Exceptions    []Exception       `json:"exceptions"`
	Transitions   []TransitionEntry `json:"transitions"`
	// Errors are the error codes indexed by the call depth.
	Errors map[string][]int `json:"errors"`
}

// Event returns the first event with the given name.
func (r Receipt) Event(name string) (EventLog, bool) {
	for _, e := range r.EventLogs {
		if e.EventName == name {
			return e, true
		}
	}

	return EventLog{}, false
}

// EventLog is an event emitted by a contract.
type EventLog struct {
	Address   string             `json:"address"`
	EventName string             `json:"_eventname"`
	Params    scilla.NamedValues `json:"params"`
}

// Exception is an exception thrown by a contract.
type Exception struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// TransitionEntry is a message sent between contracts during the execution.
type TransitionEntry struct {
	Accepted bool              `json:"accepted"`
	Addr     string            `json:"addr"`
	Depth    int               `json:"depth"`
	Msg      TransitionMessage `json:"msg"`
}

// TransitionMessage is the message of an internal transition.
type TransitionMessage struct {
	Amount    string             `json:"_amount"`
	Recipient string             `json:"_recipient"`
	Tag       string             `json:"_tag"`
	Params    scilla.NamedValues `json:"params"`
}
