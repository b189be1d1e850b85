// Package flagx lets several flag sets share one command line by picking out
// only the arguments each of them understands.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments belonging to the named flags and drops the
// rest. Names are given without dashes; both -name and --name match, with the
// value either attached ("-name=v") or in the next argument. A following
// argument that starts with "-" is never taken as a value. Scanning stops at
// a bare "--".
func FilterArgs(args []string, names ...string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, attached, ok := splitFlag(arg)
		if !ok || !known[name] {
			continue
		}

		out = append(out, arg)
		if !attached && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// splitFlag returns the flag name in arg and whether a value is attached.
func splitFlag(arg string) (name string, attached, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false, false
	}
	name = strings.TrimPrefix(arg[1:], "-")
	if name == "" || name[0] == '-' || name[0] == '=' {
		return "", false, false
	}
	if k, _, found := strings.Cut(name, "="); found {
		return k, true, true
	}
	return name, false, true
}

// ConfigPath returns the JSON config file given by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	fs.SetOutput(discard{})
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	return path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
