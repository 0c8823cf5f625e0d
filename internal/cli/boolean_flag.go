package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueFormat    = "invalid boolean value %q for --%s; accepted values: %s"
	flagTerminator                   = "--"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseBooleanLiteral accepts the literals above case-insensitively. An empty input means true.
func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	parsed, known := booleanFlagLiterals[normalized]
	return parsed, known
}

// booleanFlagValue is a pflag.Value that can be given bare (--clipboard), with a value
// (--clipboard=false), or followed by a separate literal (--clipboard no).
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	parsed, known := parseBooleanLiteral(input)
	if !known || value.target == nil {
		return fmt.Errorf(booleanFlagInvalidValueFormat, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	if registeredFlag := flagSet.Lookup(name); registeredFlag != nil {
		registeredFlag.DefValue = strconv.FormatBool(defaultValue)
		registeredFlag.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag literal" pairs into "--flag=literal" for every
// flag registered through registerBooleanFlag anywhere in the command tree. Any other word
// after such a flag stays a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlagNames)

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == flagTerminator {
			return append(normalized, arguments[index:]...)
		}
		flagName, isLongFlag := strings.CutPrefix(currentArgument, flagTerminator)
		_, isBooleanFlag := booleanFlagNames[flagName]
		if isLongFlag && isBooleanFlag && index+1 < len(arguments) {
			nextArgument := arguments[index+1]
			if _, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; known {
				normalized = append(normalized, currentArgument+"="+nextArgument)
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if _, isBooleanFlag := flag.Value.(*booleanFlagValue); isBooleanFlag {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
