package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags are accepted by every command.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "TOML configuration file",
		},
		cli.StringFlag{
			Name:  "datadir",
			Usage: "Data directory for the epoch registry",
			Value: "~/.reclaim",
		},
		cli.StringFlag{
			Name:  "storage",
			Usage: "Registry storage preset (memory|disk|default)",
			Value: "default",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Report errors to this Sentry DSN",
		},
	}
}
