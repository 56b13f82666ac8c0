package launcher

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-reclaim/flags"
	"github.com/rony4d/go-reclaim/inter"
	"github.com/rony4d/go-reclaim/protocol"
	"github.com/rony4d/go-reclaim/sampler"
	"github.com/rony4d/go-reclaim/verifier"
)

var hashClaimCommand = cli.Command{
	Name:      "hash-claim",
	Usage:     "Print the canonical identifier of a claim",
	ArgsUsage: " ",
	Flags:     flags.ClaimFlags(),
	Action:    hashClaim,
}

var witnessesCommand = cli.Command{
	Name:      "witnesses",
	Usage:     "Print the witnesses selected to attest a claim",
	ArgsUsage: " ",
	Flags:     append([]cli.Flag{flags.EpochFlag, flags.IdentifierFlag}, flags.ClaimFlags()...),
	Action:    withEnv(selectWitnesses),
}

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "Verify a claim proof against the registry",
	ArgsUsage: "<proof.json>",
	Description: `
Reads a proof {"claimInfo": ..., "signedClaim": ...} and checks it. Prints
"valid" on success; otherwise prints the failure class and exits non-zero.`,
	Flags:  []cli.Flag{flags.TraceFlag},
	Action: withEnv(verifyProof),
}

// claimFromFlags reads a ClaimInfo from --claim.file, then applies inline
// --provider/--parameters/--context on top.
func claimFromFlags(ctx *cli.Context) (inter.ClaimInfo, error) {
	var info inter.ClaimInfo
	if path := ctx.String(flags.ClaimFileFlag.Name); path != "" {
		if err := readJSON(path, &info); err != nil {
			return info, err
		}
	}
	if ctx.IsSet(flags.ProviderFlag.Name) {
		info.Provider = ctx.String(flags.ProviderFlag.Name)
	}
	if ctx.IsSet(flags.ParametersFlag.Name) {
		info.Parameters = ctx.String(flags.ParametersFlag.Name)
	}
	if ctx.IsSet(flags.ContextFlag.Name) {
		info.Context = ctx.String(flags.ContextFlag.Name)
	}
	return info, nil
}

func hashClaim(ctx *cli.Context) error {
	info, err := claimFromFlags(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, info.Hash())
	return nil
}

func selectWitnesses(ctx *cli.Context, e *env) error {
	identifier := ctx.String(flags.IdentifierFlag.Name)
	if identifier == "" {
		info, err := claimFromFlags(ctx)
		if err != nil {
			return err
		}
		identifier = info.Hash()
	}

	id := ctx.Uint64(flags.EpochFlag.Name)
	if id == 0 {
		id = e.engine.Registry.CurrentEpoch()
	}
	epoch, err := e.engine.Registry.GetEpoch(id)
	if err != nil {
		return err
	}
	selected, err := sampler.Select(epoch, identifier, protocol.SeedTimestamp)
	if err != nil {
		return err
	}
	return writeJSON(ctx, selected)
}

func verifyProof(ctx *cli.Context, e *env) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one proof file")
	}
	var proof inter.Proof
	if err := readJSON(ctx.Args().First(), &proof); err != nil {
		return err
	}

	state, err := e.engine.Verifier.Trace(&proof)
	if ctx.Bool(flags.TraceFlag.Name) {
		fmt.Fprintf(ctx.App.Writer, "state: %s\n", state)
	}
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"identifier": proof.SignedClaim.Claim.Identifier,
			"epoch":      proof.SignedClaim.Claim.Epoch,
			"reason":     verifier.Reason(err),
		}).Warn("Proof rejected")
		fmt.Fprintf(ctx.App.Writer, "invalid: %s\n", verifier.Reason(err))
		return err
	}
	fmt.Fprintln(ctx.App.Writer, "valid")
	return nil
}

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}
