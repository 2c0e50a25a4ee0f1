package cmd

import (
	"fmt"
	"strings"

	"envlist/internal/constants"
	"envlist/internal/paths"
	"envlist/internal/version"

	"github.com/spf13/pflag"
)

// GetUsage returns usage information as a string.
func GetUsage(fs *pflag.FlagSet) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appCmd := version.CommandName

	printStr(fmt.Sprintf("Usage: %s [<Flags>]", appCmd))
	printStr("")
	printStr(fmt.Sprintf("%s [%s]", version.ApplicationName, version.Version))
	printStr(fmt.Sprintf("Prints the lines of '%s' that are not comments as a JSON array,", constants.EnvFileName))
	printStr("ready to paste into a docker compose 'environment:' list.")
	printStr("Lines starting with '#' are dropped. Everything else is kept verbatim.")
	printStr("For regular usage you can run without providing any options.")
	printStr("")
	printStr("Flags:")
	sb.WriteString(fs.FlagUsages())
	printStr("")
	printStr(fmt.Sprintf("Configuration is read from '%s' when it exists.", paths.GetConfigFilePath()))
	printStr("")
	printStr("Examples:")
	printStr(fmt.Sprintf("   %s", appCmd))
	printStr(fmt.Sprintf("   %s -b --env-file stack/.env", appCmd))
	printStr(fmt.Sprintf("   %s --check", appCmd))
	printStr(fmt.Sprintf("   %s --format %s --service web", appCmd, constants.FormatCompose))

	return sb.String()
}
