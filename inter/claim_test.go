package inter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// steamClaim is the reference claim attested by witness 0x2448…9072.
var steamClaim = ClaimInfo{
	Provider:   "http",
	Parameters: `{"body":"","geoLocation":"in","method":"GET","responseMatches":[{"type":"contains","value":"_steamid\">Steam ID: 76561199632643233</div>"}],"responseRedactions":[{"jsonPath":"","regex":"_steamid\">Steam ID: (.*)</div>","xPath":"id(\"responsive_page_template_content\")/div[@class=\"page_header_ctn\"]/div[@class=\"page_content\"]/div[@class=\"youraccount_steamid\"]"}],"url":"https://store.steampowered.com/account/"}`,
	Context:    `{"contextAddress":"user's address","contextMessage":"for acmecorp.com on 1st january"}`,
}

func TestClaimInfoHash(t *testing.T) {
	require := require.New(t)

	id := steamClaim.Hash()
	require.Equal("531322a6c34e5a71296a5ee07af13f0c27b5b1e50616f816374aff6064daaf55", id)
	require.Equal(id, steamClaim.Hash(), "hash must be stable across calls")

	// Field order matters.
	swapped := ClaimInfo{Provider: steamClaim.Parameters, Parameters: steamClaim.Provider, Context: steamClaim.Context}
	require.NotEqual(id, swapped.Hash())

	// Field values are not escaped, so a delimiter inside a value collides
	// with the same delimiter between fields.
	a := ClaimInfo{Provider: "a", Parameters: "b\nc", Context: ""}
	b := ClaimInfo{Provider: "a\nb", Parameters: "c", Context: ""}
	require.Equal(a.CanonicalBytes(), b.CanonicalBytes())
	require.Equal(a.Hash(), b.Hash())

	require.Equal([]byte("\n\n"), ClaimInfo{}.CanonicalBytes())
	require.Len(ClaimInfo{}.Hash(), 64)
}

func TestCompleteClaimDataSerialise(t *testing.T) {
	c := CompleteClaimData{
		Identifier: "531322a6c34e5a71296a5ee07af13f0c27b5b1e50616f816374aff6064daaf55",
		Owner:      "e4c20c9f558160ec08106de300326f7e9c73fb7f",
		Epoch:      1,
		TimestampS: 1710157447,
	}
	require.Equal(t,
		"0x531322a6c34e5a71296a5ee07af13f0c27b5b1e50616f816374aff6064daaf55\n"+
			"0xe4c20c9f558160ec08106de300326f7e9c73fb7f\n"+
			"1710157447\n"+
			"1",
		c.Serialise())
}

func TestProofJSONFieldNames(t *testing.T) {
	require := require.New(t)

	raw := `{
		"claimInfo": {"provider": "http", "parameters": "{}", "context": ""},
		"signedClaim": {
			"claim": {"identifier": "ab", "owner": "cd", "epoch": 3, "timestampS": 99},
			"signatures": ["00", "11"]
		}
	}`
	var p Proof
	require.NoError(json.Unmarshal([]byte(raw), &p))
	require.Equal("http", p.ClaimInfo.Provider)
	require.Equal("{}", p.ClaimInfo.Parameters)
	require.Equal(uint64(3), p.SignedClaim.Claim.Epoch)
	require.Equal(uint64(99), p.SignedClaim.Claim.TimestampS)
	require.Equal([]string{"00", "11"}, p.SignedClaim.Signatures)
}
