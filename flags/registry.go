package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	OwnerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "Account allowed to register epochs",
	}
	CallerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "Account submitting the registration (must be the owner)",
	}
	MinimumWitnessesFlag = cli.StringFlag{
		Name:  "minimum",
		Usage: "Witnesses required per claim (decimal, up to 128 bits)",
		Value: "1",
	}
	EpochStartFlag = cli.Uint64Flag{
		Name:  "start",
		Usage: "Epoch start timestamp (seconds)",
	}
	EpochEndFlag = cli.Uint64Flag{
		Name:  "end",
		Usage: "Epoch end timestamp (seconds)",
	}
	WitnessFlag = cli.StringSliceFlag{
		Name:  "witness",
		Usage: "Witness as <address>@<host>; repeat for each witness",
	}
	WitnessesFileFlag = cli.StringFlag{
		Name:  "witnesses.file",
		Usage: "JSON file with a list of {address, host} witnesses",
	}
	EpochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "Epoch id (0 selects the current epoch)",
	}
)

// RegistryFlags are the epoch registration knobs.
func RegistryFlags() []cli.Flag {
	return []cli.Flag{
		CallerFlag,
		MinimumWitnessesFlag,
		EpochStartFlag,
		EpochEndFlag,
		WitnessFlag,
		WitnessesFileFlag,
	}
}
