package cli

import "github.com/spf13/pflag"

// addMapFlag registers the -m/--map flag shared by every command that
// operates within one map. Callers still mark it required on the command.
func addMapFlag(fs *pflag.FlagSet, value *string) {
	fs.StringVarP(value, "map", "m", "", "Map name or ID (required)")
}
