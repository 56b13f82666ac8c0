// Package protocol pins the byte-level conventions shared by claim creators,
// witnesses and verifiers.
//
// Every value here is consensus critical: changing a delimiter, a field order
// or a prefix produces different identifiers and signatures, and therefore
// requires a new EncodingVersion.
package protocol

const (
	// EncodingVersion names the current canonical encoding. Bump it on any
	// change to the constants below or to the field order of the canonical
	// strings built in package inter.
	EncodingVersion uint8 = 1

	// FieldDelimiter joins fields of every canonical string.
	FieldDelimiter = "\n"

	// HexPrefix is prepended to identifiers and owners in the signed payload
	// and to recovered addresses.
	HexPrefix = "0x"

	// PersonalSignPrefix starts the EIP-191 "personal sign" envelope. It is
	// followed by the decimal message length and the message itself.
	PersonalSignPrefix = "\x19Ethereum Signed Message:\n"

	// SignatureLength is r(32) || s(32) || v(1).
	SignatureLength = 65

	// RecoveryMarkerIndex is the position of v within a signature.
	RecoveryMarkerIndex = 64

	// AddressLength is the size of an account address in bytes.
	AddressLength = 20

	// SeedTimestamp is the timestamp mixed into the witness selection seed.
	// The field is reserved and always zero in the current protocol.
	SeedTimestamp uint64 = 0
)
