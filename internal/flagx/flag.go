// Package flagx helps overlay command-line flags on top of configuration
// loaded from the environment. Each component parses only the flags it owns,
// so positional arguments and foreign flags pass through untouched.
package flagx

import "strings"

// FilterArgs returns the subset of args containing only the allowed flags
// and their values.
//
// Supported forms:
//  1. Flag and value as separate arguments:  -p 8080
//  2. Flag and value combined with '=':      --port=8080
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			// the next argument is this flag's value unless it looks like
			// another flag
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// NonFlagArgs returns the positional arguments left after removing every
// flag in flagsWithValues (together with its value) and any other
// dash-prefixed argument.
func NonFlagArgs(args []string, flagsWithValues []string) []string {
	takesValue := make(map[string]struct{}, len(flagsWithValues))
	for _, f := range flagsWithValues {
		takesValue[f] = struct{}{}
	}

	positional := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") {
			if _, ok := takesValue[arg]; ok && !strings.Contains(arg, "=") {
				if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++ // skip the flag's value
				}
			}
			continue
		}

		positional = append(positional, arg)
	}

	return positional
}
