package cmd

import "github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/config"

// applyConfigDefaults fills in Options fields the user left unset from the
// loaded zinc.toml (or its built-in defaults), without overriding anything
// given explicitly on the command line.
func applyConfigDefaults(opts *Options, cfg *config.Config) {
	if opts.OutputPath == "" {
		opts.OutputPath = cfg.Output
	}
	if !opts.optSet {
		opts.OptLevel = cfg.Optimization
	}
}
