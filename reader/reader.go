package reader

import (
	"fmt"
	"strconv"

	. "github.com/bshepherdson/mal/types"
)

type MalReader struct {
	tokens []string
	index  int
}

func (r *MalReader) Next() (string, bool) {
	t, ok := r.Peek()
	if !ok {
		return t, false
	}

	r.index++
	return t, true
}

func (r *MalReader) Peek() (string, bool) {
	if r.index >= len(r.tokens) {
		return "EOF", false
	}
	return r.tokens[r.index], true
}

func (r *MalReader) Done() bool {
	return r.index >= len(r.tokens)
}

func tokenizer(input string) ([]string, error) {
	t := make([]string, 0, 16)
	for pos := 0; pos < len(input); {
		c := input[pos]
		switch c {
		case ' ', '\r', '\n', '\t', ',':
			pos++
			continue // Whitespace and commas are skipped.

		case '~':
			if pos+1 < len(input) && input[pos+1] == '@' { // ~@ is a thing
				t = append(t, "~@")
				pos += 2
			} else {
				t = append(t, "~") // so is just ~
				pos++
			}

		case '[', ']', '{', '}', '(', ')', '\'', '`', '^', '@':
			t = append(t, string(c))
			pos++

		case '"': // Quoted strings as one token, escapes already resolved.
			wasSlash := false
			foundEnd := false
			out := []byte{'"'}
			end := pos + 1
			for ; end < len(input); end++ {
				if !wasSlash && input[end] == '"' {
					foundEnd = true
					break
				}

				if wasSlash {
					switch input[end] {
					case 'n':
						out = append(out, '\n')
					default:
						out = append(out, input[end])
					}
					wasSlash = false
				} else if input[end] == '\\' {
					wasSlash = true
				} else {
					out = append(out, input[end])
				}
			}

			if !foundEnd {
				return nil, fmt.Errorf("expected '\"', got EOF")
			}
			out = append(out, '"')
			t = append(t, string(out))
			pos = end + 1

		case ';': // Comments run to the end of the line.
			for pos < len(input) && input[pos] != '\n' {
				pos++
			}

		default:
			// Keep going until we see something special.
			end := pos + 1
		nonspec_loop:
			for end < len(input) {
				switch input[end] {
				case ' ', '\t', '\r', '\n', ',', ';', '(', ')', '[', ']', '{', '}', '~', '\'', '"', '@', '^', '`':
					break nonspec_loop
				}
				end++
			}
			t = append(t, input[pos:end])
			pos = end
		}
	}
	return t, nil
}

// ReadStr reads the first form in input. Input holding only whitespace and
// comments yields ErrEmptyInput.
func ReadStr(input string) (*Data, error) {
	tokens, err := tokenizer(input)
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %v", err)
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	r := &MalReader{tokens, 0}
	return ReadForm(r)
}

// ReadAll reads every top-level form in input.
func ReadAll(input string) ([]*Data, error) {
	tokens, err := tokenizer(input)
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %v", err)
	}

	r := &MalReader{tokens, 0}
	forms := []*Data{}
	for !r.Done() {
		f, err := ReadForm(r)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func ReadForm(r *MalReader) (*Data, error) {
	t, ok := r.Peek()
	if !ok {
		return nil, fmt.Errorf("expected form, got EOF")
	}

	switch t {
	case "'":
		return nextWrapped(r, "quote")
	case "`":
		return nextWrapped(r, "quasiquote")
	case "~":
		return nextWrapped(r, "unquote")
	case "~@":
		return nextWrapped(r, "splice-unquote")
	case "@":
		return nextWrapped(r, "deref")
	case "(":
		members, err := readSeq(r, ")")
		if err != nil {
			return nil, err
		}
		return NewList(members...), nil
	case "[":
		members, err := readSeq(r, "]")
		if err != nil {
			return nil, err
		}
		return NewVector(members...), nil
	case "{":
		return readMap(r)
	case ")", "]", "}":
		return nil, fmt.Errorf("unexpected '%s'", t)
	default:
		return readAtom(r)
	}
}

func nextWrapped(r *MalReader, wrapper string) (*Data, error) {
	r.Next()
	next, err := ReadForm(r) // Read the next form.
	if err != nil {
		return nil, err
	}
	return NewList(Sym(wrapper), next), nil
}

func readSeq(r *MalReader, closer string) ([]*Data, error) {
	r.Next() // Skip the opener.
	ret := []*Data{}
	t, ok := r.Peek()
	for ; t != closer && ok; t, ok = r.Peek() {
		f, err := ReadForm(r)
		if err != nil {
			return nil, err
		}
		ret = append(ret, f)
	}
	if !ok {
		return nil, fmt.Errorf("expected '%s', got EOF", closer)
	}

	r.Next() // Skip over the closer.
	return ret, nil
}

func readMap(r *MalReader) (*Data, error) {
	members, err := readSeq(r, "}")
	if err != nil {
		return nil, err
	}
	if len(members)%2 != 0 {
		return nil, fmt.Errorf("map literal needs an even number of forms; found %d", len(members))
	}

	m := map[string]*Data{}
	for i := 0; i < len(members); i += 2 {
		if members[i].String == nil {
			return nil, fmt.Errorf("map keys must be strings")
		}
		m[*members[i].String] = members[i+1]
	}
	return NewMap(m), nil
}

func readAtom(r *MalReader) (*Data, error) {
	t, ok := r.Next()
	if !ok {
		return nil, fmt.Errorf("expected atom, got EOF")
	}

	if t[0] == '"' {
		return Str(t[1 : len(t)-1]), nil
	} else if (len(t) >= 2 && t[0] == '-' && '0' <= t[1] && t[1] <= '9') || ('0' <= t[0] && t[0] <= '9') {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("badly formatted number: %s", t)
		}
		return Num(n), nil
	} else if t == "nil" {
		return Nil, nil
	} else if t == "true" {
		return True, nil
	} else if t == "false" {
		return False, nil
	}
	return Sym(t), nil
}
