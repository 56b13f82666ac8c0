package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns the bare CLI application. Commands and flags are attached
// by the launcher.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "reclaim"
	app.Usage = "Register witness epochs and verify claim proofs"
	app.Version = "0.2.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}
