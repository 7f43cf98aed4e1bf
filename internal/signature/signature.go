// Package signature models a function's declared parameter list and binds
// call-site arguments against it.
//
// A Signature is an explicit descriptor built once per target function: an
// ordered list of parameters tagged with their kind and optional default.
// Binding a call produces an ArgumentMap with exactly one entry per
// parameter name.
package signature

import "fmt"

// Kind classifies how a parameter receives its value.
type Kind int

const (
	// Positional parameters bind by position or by keyword.
	Positional Kind = iota
	// VarPositional collects the extra positional arguments.
	VarPositional
	// VarKeyword collects keyword arguments no other parameter claims.
	VarKeyword
	// Keyword parameters bind only by keyword.
	Keyword
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Positional:
		return "POSITIONAL"
	case VarPositional:
		return "VAR_POSITIONAL"
	case VarKeyword:
		return "VAR_KEYWORD"
	case Keyword:
		return "KEYWORD"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parameter is one declared parameter.
type Parameter struct {
	Name       string
	Kind       Kind
	Default    any
	HasDefault bool
}

// Param declares a required positional-or-keyword parameter.
func Param(name string) Parameter {
	return Parameter{Name: name, Kind: Positional}
}

// Optional declares a positional-or-keyword parameter with a default.
func Optional(name string, def any) Parameter {
	return Parameter{Name: name, Kind: Positional, Default: def, HasDefault: true}
}

// VarArgs declares the parameter collecting extra positional arguments.
func VarArgs(name string) Parameter {
	return Parameter{Name: name, Kind: VarPositional}
}

// VarKwargs declares the parameter collecting extra keyword arguments.
func VarKwargs(name string) Parameter {
	return Parameter{Name: name, Kind: VarKeyword}
}

// KeywordOnly declares a keyword-only parameter with a default.
func KeywordOnly(name string, def any) Parameter {
	return Parameter{Name: name, Kind: Keyword, Default: def, HasDefault: true}
}

// RequiredKeyword declares a keyword-only parameter without a default.
func RequiredKeyword(name string) Parameter {
	return Parameter{Name: name, Kind: Keyword}
}

// Signature is an immutable, validated parameter list.
type Signature struct {
	params []Parameter
	index  map[string]int
	varPos int // index of the VarPositional parameter, or -1
	varKw  int // index of the VarKeyword parameter, or -1
}

// New validates params and builds a Signature.
//
// Rules: names are unique and non-empty; at most one VarPositional and one
// VarKeyword; VarKeyword comes last; Positional parameters precede
// VarPositional and Keyword parameters; a required Positional parameter
// cannot follow one with a default.
func New(params ...Parameter) (*Signature, error) {
	s := &Signature{
		params: append([]Parameter(nil), params...),
		index:  make(map[string]int, len(params)),
		varPos: -1,
		varKw:  -1,
	}

	seenDefault := false
	seenStar := false // a VarPositional or Keyword parameter was seen
	for i, p := range s.params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: parameter %d has no name", ErrInvalidSignature, i)
		}
		if _, dup := s.index[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrInvalidSignature, p.Name)
		}
		s.index[p.Name] = i
		if s.varKw >= 0 {
			return nil, fmt.Errorf("%w: parameter %q follows the keyword collector", ErrInvalidSignature, p.Name)
		}

		switch p.Kind {
		case Positional:
			if seenStar {
				return nil, fmt.Errorf("%w: positional parameter %q after variadic or keyword-only parameters",
					ErrInvalidSignature, p.Name)
			}
			if p.HasDefault {
				seenDefault = true
			} else if seenDefault {
				return nil, fmt.Errorf("%w: required parameter %q follows a parameter with a default",
					ErrInvalidSignature, p.Name)
			}
		case VarPositional:
			if s.varPos >= 0 || seenStar {
				return nil, fmt.Errorf("%w: misplaced positional collector %q", ErrInvalidSignature, p.Name)
			}
			if p.HasDefault {
				return nil, fmt.Errorf("%w: collector %q cannot have a default", ErrInvalidSignature, p.Name)
			}
			s.varPos = i
			seenStar = true
		case VarKeyword:
			if p.HasDefault {
				return nil, fmt.Errorf("%w: collector %q cannot have a default", ErrInvalidSignature, p.Name)
			}
			s.varKw = i
		case Keyword:
			seenStar = true
		default:
			return nil, fmt.Errorf("%w: parameter %q has unknown kind %v", ErrInvalidSignature, p.Name, p.Kind)
		}
	}
	return s, nil
}

// MustNew is New that panics on an invalid descriptor. Intended for
// package-level signature declarations.
func MustNew(params ...Parameter) *Signature {
	s, err := New(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the parameter names in declared order.
func (s *Signature) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the parameter with the given name.
func (s *Signature) Lookup(name string) (Parameter, bool) {
	i, ok := s.index[name]
	if !ok {
		return Parameter{}, false
	}
	return s.params[i], true
}

// VarPositional returns the positional collector, if declared.
func (s *Signature) VarPositional() (Parameter, bool) {
	if s.varPos < 0 {
		return Parameter{}, false
	}
	return s.params[s.varPos], true
}

// VarKeyword returns the keyword collector, if declared.
func (s *Signature) VarKeyword() (Parameter, bool) {
	if s.varKw < 0 {
		return Parameter{}, false
	}
	return s.params[s.varKw], true
}
