package symbol

import (
	"encoding/json"
	"fmt"
)

// Kind represents the type of extracted declaration
type Kind int

const (
	KindFunctionPrototype Kind = iota
	KindFunctionDefinition
	KindStruct
	KindTypedefStruct
)

func (k Kind) String() string {
	switch k {
	case KindFunctionPrototype:
		return "fn_proto"
	case KindFunctionDefinition:
		return "fn_def"
	case KindStruct:
		return "struct"
	case KindTypedefStruct:
		return "typedef_struct"
	default:
		return "unknown"
	}
}

// ParseKind converts an index wire string back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "fn_proto":
		return KindFunctionPrototype, nil
	case "fn_def":
		return KindFunctionDefinition, nil
	case "struct":
		return KindStruct, nil
	case "typedef_struct":
		return KindTypedefStruct, nil
	default:
		return 0, fmt.Errorf("unknown symbol kind %q", s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Visibility classifies whether a symbol may be selectively imported by an
// external consumer.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisPublic
)

func (v Visibility) String() string {
	if v == VisPublic {
		return "PUBLIC"
	}
	return "PRIVATE"
}

// ParseVisibility converts an index wire string back into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "PUBLIC":
		return VisPublic, nil
	case "PRIVATE":
		return VisPrivate, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", s)
	}
}

func (v Visibility) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Visibility) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVisibility(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Symbol represents one extracted declaration. Records are immutable once
// appended to a Table; prototype and definition records for the same
// function coexist under the same name.
type Symbol struct {
	Kind      Kind       `json:"kind"`
	Vis       Visibility `json:"vis"`
	Name      string     `json:"name"`
	File      string     `json:"file"` // path relative to the scan root, slash-separated
	LineStart int        `json:"line_start"`
	LineEnd   int        `json:"line_end"`
	Snippet   string     `json:"snippet"` // exact original-file text for [LineStart, LineEnd]
	// Signature is the normalized first snippet line for function kinds
	// (whitespace collapsed, trailing ";"/"{" stripped); empty for structs.
	Signature string `json:"-"`
}

// IsFunction reports whether the symbol is a function prototype or definition.
func (s Symbol) IsFunction() bool {
	return s.Kind == KindFunctionPrototype || s.Kind == KindFunctionDefinition
}

// IsType reports whether the symbol is a struct or typedef-struct.
func (s Symbol) IsType() bool {
	return s.Kind == KindStruct || s.Kind == KindTypedefStruct
}
