// Package env maps environment variables onto command flags.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var errorMessagePrefix = "error mapping environment variables to command flags"

const (
	globalPrefix = "rv32asm"
	rootCommand  = "asm"
)

// Prefix returns the environment prefix used for the given command:
// RV32ASM for the assembler and RV32ASM_<NAME> for the others.
func Prefix(command *cobra.Command) string {
	if command.Name() == rootCommand {
		return strings.ToUpper(globalPrefix)
	}
	return strings.ToUpper(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
}

// CheckEnvironmentVariables sets the flags of command that were not given
// on the command line from the matching Prefix(command)_<FLAG> variables.
func CheckEnvironmentVariables(command *cobra.Command) error {
	var errs []string
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(Prefix(command))
	command.Flags().VisitAll(func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				errs = append(errs, err.Error())
			}
		}
	})
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", errorMessagePrefix, strings.Join(errs, "; "))
}
