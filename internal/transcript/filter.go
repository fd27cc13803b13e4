package transcript

import (
	"slices"
	"strconv"
	"strings"
)

// LogsFlag is the flag that prints history instead of asking for a fix.
const LogsFlag = "--logs"

// SelfFlags are the tool's own flags that leave an invocation a fix or logs
// request. They mirror the flags of cmd/wtf.
var SelfFlags = []string{LogsFlag, "--pretty", "--follow", "-f", "--verbose", "-v"}

// SelfValueFlags are the tool's own flags that take a numeric value, given
// either as the next token or joined ("--count=3", "-n3").
var SelfValueFlags = []string{"--count", "-n"}

// FilterSelfInvocations removes the tool's own invocations from the history.
//
// A command ending in "<tool>" followed only by SelfFlags and SelfValueFlags is
// a self-invocation. With --logs among them the record is dropped. Otherwise it
// is dropped but its output is folded into the previous surviving record, or
// kept as a command-less record when there is none. Everything else, including
// "<tool> --config" or "<tool> --help", passes through in order.
func FilterSelfInvocations(tool string, recs []Record) []Record {
	if tool == "" {
		tool = DefaultToolName
	}
	filtered := make([]Record, 0, len(recs))
	for _, rec := range recs {
		switch selfInvocationTail(tool, rec.Command) {
		case tailLogs:
			continue
		case tailBare:
			if len(filtered) == 0 {
				filtered = append(filtered, Record{Output: rec.Output})
				continue
			}
			last := &filtered[len(filtered)-1]
			switch {
			case rec.Output == "":
			case last.Output == "":
				last.Output = rec.Output
			default:
				last.Output += "\n" + rec.Output
			}
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

type invocationTail int

const (
	tailNone invocationTail = iota
	tailBare
	tailLogs
)

// selfInvocationTail classifies cmd by its last occurrence of the tool name and
// the flags that follow it.
func selfInvocationTail(tool, cmd string) invocationTail {
	tokens := strings.Fields(cmd)
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] == tool {
			return classifyFlags(tokens[i+1:])
		}
	}
	return tailNone
}

func classifyFlags(flags []string) invocationTail {
	tail := tailBare
	for j := 0; j < len(flags); j++ {
		f := flags[j]
		switch {
		case f == LogsFlag:
			tail = tailLogs
		case slices.Contains(SelfFlags, f):
		case slices.Contains(SelfValueFlags, f):
			if j+1 >= len(flags) || !isCount(flags[j+1]) {
				return tailNone
			}
			j++
		case isJoinedValueFlag(f):
		default:
			return tailNone
		}
	}
	return tail
}

func isJoinedValueFlag(f string) bool {
	for _, name := range SelfValueFlags {
		if strings.HasPrefix(name, "--") {
			if v, ok := strings.CutPrefix(f, name+"="); ok {
				return isCount(v)
			}
			continue
		}
		if v, ok := strings.CutPrefix(f, name); ok && v != "" {
			return isCount(strings.TrimPrefix(v, "="))
		}
	}
	return false
}

func isCount(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
