package transaction

// MsgVersion is the version of the transaction format.
const MsgVersion = 1

// Known chain identifiers.
const (
	MainnetChainID  uint16 = 1
	TestnetChainID  uint16 = 333
	IsolatedChainID uint16 = 222
)

// Version returns the packed version of a transaction for the chain, which is
// the chain identifier in the upper 16 bits and the message version in the
// lower ones.
func Version(chainID uint16) uint32 {
	return uint32(chainID)<<16 | MsgVersion
}

// ChainID returns the chain identifier of a packed version.
func ChainID(version uint32) uint16 {
	return uint16(version >> 16)
}
