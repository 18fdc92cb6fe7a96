// Package flagx lets several parsers share one command line: each parser
// keeps only the arguments that belong to its own flags.
package flagx

import (
	"strings"

	"github.com/spf13/pflag"
)

// Allowed lists the flags defined on fs in both "-s" and "--name" form. The
// value reports whether the flag consumes an argument; boolean flags do not.
func Allowed(fs *pflag.FlagSet) map[string]bool {
	allowed := make(map[string]bool)
	fs.VisitAll(func(f *pflag.Flag) {
		takesValue := f.NoOptDefVal == ""
		allowed["--"+f.Name] = takesValue
		if f.Shorthand != "" {
			allowed["-"+f.Shorthand] = takesValue
		}
	})
	return allowed
}

// FilterArgs returns the arguments of args that belong to allowed flags,
// together with their values. Both "-f value" and "--flag=value" are
// recognised. Everything after "--" is dropped.
func FilterArgs(args []string, allowed map[string]bool) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, _, inline := strings.Cut(arg, "=")
		takesValue, ok := allowed[name]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)

		if !inline && takesValue && i+1 < len(args) && isValue(args[i+1]) {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// isValue reports whether arg can be a flag value. A lone "-" is the usual
// stand-in for stdin or stderr.
func isValue(arg string) bool {
	return arg == "-" || !strings.HasPrefix(arg, "-")
}

// ConfigPath returns the value of -c/--config in args, or "".
func ConfigPath(args []string) string {
	var path string
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.StringVarP(&path, "config", "c", "", "path to a JSON config file")
	_ = fs.Parse(FilterArgs(args, Allowed(fs)))
	return path
}
