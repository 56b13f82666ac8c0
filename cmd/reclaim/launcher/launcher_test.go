package launcher_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-reclaim/cmd/reclaim/launcher"
	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/registry"
	"github.com/rony4d/go-reclaim/verifier"
)

const (
	owner      = "e4c20c9f558160ec08106de300326f7e9c73fb7f"
	refWitness = "244897572368eadf65bfbc5aec98d8e5443a9072"
	refID      = "531322a6c34e5a71296a5ee07af13f0c27b5b1e50616f816374aff6064daaf55"
	parameters = `{"body":"","geoLocation":"in","method":"GET","responseMatches":[{"type":"contains","value":"_steamid\">Steam ID: 76561199632643233</div>"}],"responseRedactions":[{"jsonPath":"","regex":"_steamid\">Steam ID: (.*)</div>","xPath":"id(\"responsive_page_template_content\")/div[@class=\"page_header_ctn\"]/div[@class=\"page_content\"]/div[@class=\"youraccount_steamid\"]"}],"url":"https://store.steampowered.com/account/"}`
	claimCtx   = `{"contextAddress":"user's address","contextMessage":"for acmecorp.com on 1st january"}`
)

// cliRunner runs the reclaim app against a pebble registry in dataDir.
type cliRunner struct {
	t       *testing.T
	dataDir string
}

func (c cliRunner) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	app := launcher.NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	argv := append([]string{"reclaim", "--datadir", c.dataDir, "--storage", "disk"}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func (c cliRunner) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err)
	return out
}

func referenceProof(claimOwner string) *inter.Proof {
	return &inter.Proof{
		ClaimInfo: inter.ClaimInfo{Provider: "http", Parameters: parameters, Context: claimCtx},
		SignedClaim: inter.SignedClaim{
			Claim: inter.CompleteClaimData{
				Identifier: refID,
				Owner:      claimOwner,
				Epoch:      1,
				TimestampS: 1710157447,
			},
			Signatures: []string{"0x52e2a591f51351c1883559f8b6c6264b9cb5984d0b7ccc805078571242166b357994460a1bf8f9903c4130f67d358d7d6e9a52df9a38c51db6a10574b946884c1b"},
		},
	}
}

func writeProof(t *testing.T, p *inter.Proof) string {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "proof.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLaunchEndToEnd(t *testing.T) {
	c := cliRunner{t: t, dataDir: t.TempDir()}

	require.Equal(t, owner+"\n", c.mustRun("init", "--owner", "0x"+strings.ToUpper(owner)))

	_, err := c.run("init", "--owner", owner)
	require.ErrorIs(t, err, registry.ErrAlreadyInitialized)

	out := c.mustRun("add-epoch",
		"--caller", "0x"+owner,
		"--minimum", "1",
		"--start", "10000",
		"--end", "20000",
		"--witness", "0x"+refWitness+"@test1.testnet",
	)
	var added inter.Epoch
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	require.Equal(t, uint64(1), added.ID)
	require.Equal(t, []inter.Witness{{Address: refWitness, Host: "test1.testnet"}}, added.Witnesses)

	// The epoch survives between runs.
	var loaded inter.Epoch
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("epoch", "--epoch", "1")), &loaded))
	require.Equal(t, added.ID, loaded.ID)
	require.Equal(t, 0, added.MinimumWitnessesForClaimCreation.Cmp(loaded.MinimumWitnessesForClaimCreation))

	require.Equal(t, refID+"\n", c.mustRun("hash-claim", "--provider", "http", "--parameters", parameters, "--context", claimCtx))

	var selected []inter.Witness
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("witnesses", "--identifier", refID)), &selected))
	require.Equal(t, added.Witnesses, selected)

	require.Equal(t, "state: Matched\nvalid\n", c.mustRun("verify", "--trace", writeProof(t, referenceProof(owner))))

	out, err = c.run("verify", writeProof(t, referenceProof("0000000000000000000000000000000000000001")))
	require.ErrorIs(t, err, verifier.ErrUnknownSigner)
	require.Equal(t, "invalid: UnknownSigner\n", out)
}

func TestLaunchAddEpochRejects(t *testing.T) {
	c := cliRunner{t: t, dataDir: t.TempDir()}
	c.mustRun("init", "--owner", owner)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"not owner", []string{"--caller", "alice.near", "--start", "1", "--end", "2", "--witness", refWitness + "@h"}, registry.ErrUnauthorized},
		{"start after end", []string{"--caller", owner, "--start", "2", "--end", "1", "--witness", refWitness + "@h"}, inter.ErrInvalidEpoch},
		{"zero minimum", []string{"--caller", owner, "--minimum", "0", "--start", "1", "--end", "2"}, inter.ErrInvalidEpoch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.run(append([]string{"add-epoch"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := c.run("add-epoch", "--caller", owner, "--start", "1", "--end", "2", "--witness", "no-host")
	require.Error(t, err)

	_, err = c.run("epoch")
	require.ErrorIs(t, err, inter.ErrEpochNotFound)
}

func TestLaunchWitnessesFile(t *testing.T) {
	c := cliRunner{t: t, dataDir: t.TempDir()}
	c.mustRun("init", "--owner", owner)

	file := filepath.Join(t.TempDir(), "witnesses.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"address":"0x`+refWitness+`","host":"a"}]`), 0o600))

	out := c.mustRun("add-epoch", "--caller", owner, "--minimum", "3", "--start", "1", "--end", "2",
		"--witnesses.file", file, "--witness", "0x1111111111111111111111111111111111111111@b")
	var added inter.Epoch
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	require.Len(t, added.Witnesses, 2)
	require.Equal(t, "a", added.Witnesses[0].Host)
	require.Equal(t, "b", added.Witnesses[1].Host)

	var selected []inter.Witness
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("witnesses", "--epoch", "1", "--identifier", refID)), &selected))
	require.Len(t, selected, 3)
}
