package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before config files and flags override them.
type Defaults struct {
	Node    NodeDefaults
	Storage StorageDefaults
	Logging LoggingDefaults
}

// NodeDefaults captures where the registry lives and how the instance is named.
type NodeDefaults struct {
	DataDir string // filesystem root for the registry database; keeps test data isolated when changed
	Name    string // instance name attached to every log line and Sentry report
}

// StorageDefaults selects the registry backend.
type StorageDefaults struct {
	Preset string // one of integration's preset names: memory, disk, default
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace)
	Format    string // log output format (text vs json)
	Color     bool   // ANSI colours in text logs; best disabled when piping to files
}

// DefaultConfig returns a fully populated Defaults instance.
func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.reclaim",
			Name:    "reclaim",
		},
		Storage: StorageDefaults{
			Preset: "default",
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
