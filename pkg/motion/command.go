package motion

import "strings"

// Command is a single motion command: target angles for both axes in degrees.
type Command struct {
	Target1 int
	Target2 int
}

// ParseCommand parses one line of a moves file into a Command.
//
// The expected format is "<int>,<int>", optionally with surrounding
// whitespace. Parsing is deliberately permissive to stay compatible with the
// firmware this replaces: a field that does not start with a number parses as
// 0, and a line without a separator puts the whole line in Target1 with
// Target2 left at 0. Malformed input is never an error, only a zero angle.
func ParseCommand(line string) Command {
	line = strings.TrimSpace(line)

	before, after, found := strings.Cut(line, ",")
	if !found {
		return Command{Target1: leadingInt(before)}
	}
	return Command{
		Target1: leadingInt(before),
		Target2: leadingInt(after),
	}
}

// leadingInt parses the leading integer of s, ignoring surrounding whitespace
// and any trailing garbage. Returns 0 if s does not start with a number.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)

	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}

	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
