// Package inter defines the claim and epoch records exchanged between claim
// creators, witnesses and the verifier, together with their canonical
// encodings.
//
// The canonical strings built here are part of the protocol: the field order
// and the delimiter are fixed by protocol.EncodingVersion.
package inter

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-reclaim/protocol"
)

// ClaimInfo describes the attested fact. Its identifier is a pure function of
// the three fields.
type ClaimInfo struct {
	Provider   string `json:"provider"`
	Parameters string `json:"parameters"`
	Context    string `json:"context"`
}

// CompleteClaimData is the claim as the witnesses signed it.
type CompleteClaimData struct {
	// Identifier is ClaimInfo.Hash() of the attested fact: lowercase hex, no prefix.
	Identifier string `json:"identifier"`
	// Owner is the hex account the claim belongs to, no prefix.
	Owner      string `json:"owner"`
	Epoch      uint64 `json:"epoch"`
	TimestampS uint64 `json:"timestampS"`
}

// SignedClaim carries a claim and one hex signature per sampled witness, in
// the order the witnesses were sampled.
type SignedClaim struct {
	Claim      CompleteClaimData `json:"claim"`
	Signatures []string          `json:"signatures"`
}

// Proof is the unit submitted for verification.
type Proof struct {
	ClaimInfo   ClaimInfo   `json:"claimInfo"`
	SignedClaim SignedClaim `json:"signedClaim"`
}

// CanonicalBytes joins provider, parameters and context with the field
// delimiter. Values are used verbatim, no escaping.
func (c ClaimInfo) CanonicalBytes() []byte {
	return []byte(strings.Join([]string{c.Provider, c.Parameters, c.Context}, protocol.FieldDelimiter))
}

// Hash returns the claim identifier: Keccak-256 of CanonicalBytes, lowercase
// hex without prefix.
func (c ClaimInfo) Hash() string {
	return hex.EncodeToString(crypto.Keccak256(c.CanonicalBytes()))
}

// Serialise renders the payload witnesses sign:
//
//	0x<identifier>\n0x<owner>\n<timestampS>\n<epoch>
//
// The timestamp precedes the epoch.
func (c CompleteClaimData) Serialise() string {
	return strings.Join([]string{
		protocol.HexPrefix + c.Identifier,
		protocol.HexPrefix + c.Owner,
		strconv.FormatUint(c.TimestampS, 10),
		strconv.FormatUint(c.Epoch, 10),
	}, protocol.FieldDelimiter)
}
