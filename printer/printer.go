package printer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bshepherdson/mal/types"
)

func PrintStr(d *types.Data, readable bool) string {
	switch {
	case d == nil:
		return "nil"

	case d == types.Nil:
		return "nil"
	case d == types.True:
		return "true"
	case d == types.False:
		return "false"

	case d.List != nil:
		return "(" + printSeq(*d.List, readable) + ")"

	case d.Vector != nil:
		return "[" + printSeq(*d.Vector, readable) + "]"

	case d.Map != nil:
		// Keys are sorted so the same map always prints the same way.
		keys := make([]string, 0, len(*d.Map))
		for k := range *d.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		outs := []string{}
		for _, k := range keys {
			outs = append(outs, printString(k, readable), PrintStr((*d.Map)[k], readable))
		}
		return "{" + strings.Join(outs, " ") + "}"

	case d.String != nil:
		return printString(*d.String, readable)

	case d.Number != nil:
		return strconv.Itoa(*d.Number)

	case d.Symbol != nil:
		return *d.Symbol

	case d.Native != nil, d.Closure != nil:
		return "#<function>"

	default:
		return "#<unknown>"
	}
}

func printSeq(members []*types.Data, readable bool) string {
	outs := []string{}
	for _, m := range members {
		outs = append(outs, PrintStr(m, readable))
	}
	return strings.Join(outs, " ")
}

func printString(s string, readable bool) string {
	if !readable {
		return s
	}
	s = strings.Replace(s, "\\", "\\\\", -1)
	s = strings.Replace(s, "\n", "\\n", -1)
	s = strings.Replace(s, "\"", "\\\"", -1)
	return "\"" + s + "\""
}
