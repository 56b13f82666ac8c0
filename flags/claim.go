package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	ProviderFlag = cli.StringFlag{
		Name:  "provider",
		Usage: "Claim provider",
	}
	ParametersFlag = cli.StringFlag{
		Name:  "parameters",
		Usage: "Claim parameters, verbatim",
	}
	ContextFlag = cli.StringFlag{
		Name:  "context",
		Usage: "Claim context, verbatim",
	}
	ClaimFileFlag = cli.StringFlag{
		Name:  "claim.file",
		Usage: "JSON file with {provider, parameters, context}",
	}
	IdentifierFlag = cli.StringFlag{
		Name:  "identifier",
		Usage: "Claim identifier (hex, no 0x)",
	}
	TraceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "Print the last verification state reached",
	}
)

// ClaimFlags describe a claim inline or from a file.
func ClaimFlags() []cli.Flag {
	return []cli.Flag{
		ProviderFlag,
		ParametersFlag,
		ContextFlag,
		ClaimFileFlag,
	}
}
