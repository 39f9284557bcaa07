package model

// Command represents a user command with its scope, operation, and arguments
type Command struct {
	Scope     string
	Operation string
	Args      []string
}

// Flag reports whether the given --flag is present in the arguments and
// returns the arguments with every occurrence of it removed.
func (c Command) Flag(name string) (bool, []string) {
	found := false
	rest := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		if arg == name {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}
