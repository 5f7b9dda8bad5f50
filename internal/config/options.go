package config

import "github.com/spf13/pflag"

// Options are the command line switches.
type Options struct {
	Verbose      bool
	HideWindow   bool
	NoExtensions bool
	Dev          bool
	Theme        string
}

// Bind registers the options on flags.
func (o *Options) Bind(flags *pflag.FlagSet) {
	flags.BoolVarP(&o.Verbose, "verbose", "v", false, "Show debug messages")
	flags.BoolVar(&o.HideWindow, "hide-window", false, "Start with the window hidden")
	flags.BoolVar(&o.NoExtensions, "no-extensions", false, "Do not run extensions")
	flags.BoolVar(&o.Dev, "dev", false, "Log as JSON with source locations")
	flags.StringVar(&o.Theme, "theme", "", "Theme name, overrides settings.json")
}
