// Package solabi implements the Solidity contract ABI: the binary encoding
// used to call contract functions, decode their return values and decode
// event logs, driven purely by an ABI description.
//
// # Basic Usage
//
// Parse a description, pick an entry and encode or decode:
//
//	token := solabi.MustParseABI(erc20ABIJSON)
//
//	transfer := token.MustFunction("transfer")
//	calldata, err := transfer.Encode(recipient, big.NewInt(1000))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... send calldata, receive ret ...
//	result, err := transfer.DecodeResult(ret)
//
//	// Decode a Transfer log
//	values, err := token.MustEvent("Transfer").Decode(logData, logTopics)
//
// # Types
//
// Type describes a Solidity type: intN, uintN, bool, address, bytesN, bytes,
// string, fixed arrays T[k], dynamic arrays T[] and tuples. Types are built
// with the constructors (UintType, SliceType, TupleType, ...) or parsed from
// their canonical names with ParseType.
//
// Decoded values use *big.Int for all integers, common.Address for
// addresses, []byte for bytesN and bytes, string, bool and []any for arrays
// and tuples. Encoding additionally accepts Go integers, *uint256.Int,
// common.Hash, byte arrays, typed Go slices and structs.
//
// # Encoding
//
// A parameter list is encoded as heads followed by tails. Static values are
// written in place in the head; dynamic values (bytes, string, T[], and
// arrays or tuples containing them) put a 32-byte offset in the head and
// their payload in the tail, in parameter order. Arrays and tuples apply the
// same layout recursively to their elements.
//
// # Events
//
// Indexed event inputs are carried in log topics, the rest in log data.
// Non-anonymous events emit the signature hash as their first topic. Indexed
// strings, bytes, arrays and tuples are stored as the hash of their value, so
// they decode to the common.Hash found in the topic.
//
// # Concurrency
//
// ABI, Entry, Parameter and Type values are immutable after construction and
// may be shared between goroutines.
//
// # References
//
//   - https://docs.soliditylang.org/en/latest/abi-spec.html
package solabi
