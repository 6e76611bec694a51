package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	BatchFile   string
	ListModels  bool
	ListColumns bool
	GUIMode     bool
	UILanguage  string

	// Translation flags
	Sheet      string
	Columns    []string
	AllColumns bool
	SourceLang string
	TargetLang string
	NewColumns bool
	Workers    int
	Dedupe     bool

	// Provider flags
	Provider        string
	Model           string
	Region          string
	BaseURL         string
	DeepLXURL       string
	Timeout         time.Duration
	Breaker         bool
	BreakerFailures int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		SourceLang:      "English",
		TargetLang:      "Chinese",
		Workers:         1,
		Provider:        "openai",
		Region:          "us-west-2",
		Timeout:         60 * time.Second,
		BreakerFailures: 5,
	}
}
