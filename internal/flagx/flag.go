// Package flagx lets several components share one command line: each picks
// out the flags it owns and parses them with its own flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the arguments of args that belong to the flags listed
// in allowed, in their original order. Flag names are compared without
// leading dashes, so "-a" in allowed also admits "--a".
//
// A flag listed in bools never consumes the following argument, matching
// the flag package where a bool takes a value only as -name=value. Any other
// flag takes the next argument as its value unless that argument starts
// with "-".
func FilterArgs(args []string, allowed []string, bools ...string) []string {
	known := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		known[flagName(f)] = false
	}
	for _, f := range bools {
		known[flagName(f)] = true
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		isBool, ok := known[flagName(name)]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || isBool {
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(f string) string {
	return strings.TrimLeft(f, "-")
}

// JsonConfigFlags returns the config file path given with -c or -config in
// os.Args, or an empty string when neither is present. Other flags are
// ignored so components can call it before parsing their own flags.
func JsonConfigFlags() string {
	return jsonConfigPath(os.Args[1:])
}

func jsonConfigPath(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to config file")
	fs.StringVar(&config, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
