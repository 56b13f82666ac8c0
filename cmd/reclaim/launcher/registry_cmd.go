package launcher

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-reclaim/flags"
	"github.com/rony4d/go-reclaim/inter"
)

var initCommand = cli.Command{
	Name:   "init",
	Usage:  "Set the registry owner (only once)",
	Flags:  []cli.Flag{flags.OwnerFlag},
	Action: withEnv(initRegistry),
}

var addEpochCommand = cli.Command{
	Name:      "add-epoch",
	Usage:     "Register a new witness epoch",
	ArgsUsage: " ",
	Description: `
Registers an epoch with the next id. Witnesses come from repeated --witness
<address>@<host> flags and/or a --witnesses.file JSON list. Only the owner
set by 'reclaim init' may register epochs.`,
	Flags:  flags.RegistryFlags(),
	Action: withEnv(addEpoch),
}

var epochCommand = cli.Command{
	Name:      "epoch",
	Usage:     "Print an epoch as JSON",
	ArgsUsage: " ",
	Flags:     []cli.Flag{flags.EpochFlag},
	Action:    withEnv(printEpoch),
}

func initRegistry(ctx *cli.Context, e *env) error {
	owner := ctx.String(flags.OwnerFlag.Name)
	if owner == "" {
		return errors.New("--owner is required")
	}
	if err := e.engine.Registry.Init(owner); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, e.engine.Registry.Owner())
	return nil
}

func addEpoch(ctx *cli.Context, e *env) error {
	caller := ctx.String(flags.CallerFlag.Name)
	if caller == "" {
		return errors.New("--caller is required")
	}
	minimum, ok := new(big.Int).SetString(ctx.String(flags.MinimumWitnessesFlag.Name), 10)
	if !ok {
		return errors.Errorf("invalid --minimum %q", ctx.String(flags.MinimumWitnessesFlag.Name))
	}
	witnesses, err := collectWitnesses(ctx)
	if err != nil {
		return err
	}

	epoch, err := e.engine.Registry.AddEpoch(caller, minimum,
		ctx.Uint64(flags.EpochStartFlag.Name), ctx.Uint64(flags.EpochEndFlag.Name), witnesses)
	if err != nil {
		return err
	}
	return writeJSON(ctx, epoch)
}

func collectWitnesses(ctx *cli.Context) ([]inter.Witness, error) {
	var witnesses []inter.Witness
	if path := ctx.String(flags.WitnessesFileFlag.Name); path != "" {
		if err := readJSON(path, &witnesses); err != nil {
			return nil, err
		}
	}
	for _, entry := range ctx.StringSlice(flags.WitnessFlag.Name) {
		w, err := parseWitness(entry)
		if err != nil {
			return nil, err
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, nil
}

// parseWitness splits <address>@<host>. The host may itself contain '@'.
func parseWitness(entry string) (inter.Witness, error) {
	i := strings.IndexByte(entry, '@')
	if i <= 0 || i == len(entry)-1 {
		return inter.Witness{}, errors.Errorf("invalid witness %q, want <address>@<host>", entry)
	}
	return inter.Witness{Address: entry[:i], Host: entry[i+1:]}, nil
}

func printEpoch(ctx *cli.Context, e *env) error {
	id := ctx.Uint64(flags.EpochFlag.Name)
	if id == 0 {
		id = e.engine.Registry.CurrentEpoch()
	}
	epoch, err := e.engine.Registry.GetEpoch(id)
	if err != nil {
		return err
	}
	fp, err := epoch.Fingerprint()
	if err != nil {
		return err
	}
	e.log.WithField("fingerprint", hexutil.Encode(fp.Bytes())).Debug("Epoch loaded")
	return writeJSON(ctx, epoch)
}

func writeJSON(ctx *cli.Context, v interface{}) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
