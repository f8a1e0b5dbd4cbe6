package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/lojidoc/java"
)

type JSONEncoder struct {
	w    io.Writer
	decl java.Declaration
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(d java.Declaration) error {
	e.decl = d
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildDeclarationData(), "", "  ")
}

type jsonClass struct {
	Kind java.Kind `json:"kind"`
	*java.Class
}

type jsonInterface struct {
	Kind java.Kind `json:"kind"`
	*java.Interface
}

type jsonEnumeration struct {
	Kind java.Kind `json:"kind"`
	*java.Enumeration
}

// buildDeclarationData tags the declaration with its kind so a reader of the
// output can tell the variants apart.
func (e *JSONEncoder) buildDeclarationData() any {
	switch d := e.decl.(type) {
	case *java.Class:
		return jsonClass{Kind: d.Kind(), Class: d}
	case *java.Interface:
		return jsonInterface{Kind: d.Kind(), Interface: d}
	case *java.Enumeration:
		return jsonEnumeration{Kind: d.Kind(), Enumeration: d}
	}
	return nil
}
