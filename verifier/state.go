package verifier

// State is a step of the verification pipeline. Each step is entered only if
// the previous one succeeded.
type State uint8

const (
	Start State = iota
	IdentifierChecked
	EpochResolved
	WitnessesSampled
	SignaturesRecovered
	Matched
)

var stateNames = [...]string{
	Start:               "Start",
	IdentifierChecked:   "IdentifierChecked",
	EpochResolved:       "EpochResolved",
	WitnessesSampled:    "WitnessesSampled",
	SignaturesRecovered: "SignaturesRecovered",
	Matched:             "Matched",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
