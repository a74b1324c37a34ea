package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	LogLevel  string
	LogFormat string

	// Batch flags
	InputFile  string
	OutputDir  string
	SkipAudio  bool
	APKG       bool
	DeckPrefix string
	Archive    bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:   "info",
		LogFormat:  "text",
		DeckPrefix: "Svenska",
	}
}
