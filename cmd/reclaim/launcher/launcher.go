package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-reclaim/flags"
)

// NewApp builds the reclaim CLI with every command attached.
func NewApp() *cli.App {
	app := flags.NewApp()
	app.Flags = flags.CommonFlags()
	app.Commands = []cli.Command{
		initCommand,
		addEpochCommand,
		epochCommand,
		hashClaimCommand,
		witnessesCommand,
		verifyCommand,
	}
	return app
}

// Launch runs the CLI with the given arguments (args[0] is the program name).
func Launch(args []string) error {
	return NewApp().Run(args)
}
