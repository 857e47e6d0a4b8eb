package cli

import (
	"github.com/spf13/pflag"
)

// normalizeFlagName accepts --authkey as an alias of --keypair.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "authkey", "auth-key":
		name = "keypair"
	}
	return pflag.NormalizedName(name)
}
