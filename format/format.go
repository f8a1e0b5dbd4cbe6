// Package format renders parsed declarations for readers: markdown pages,
// JSON dumps and mdBook scaffolding.
package format

import (
	"encoding"

	"github.com/dhamidi/lojidoc/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(d java.Declaration) error
}

// FileName is the name of the page generated for a declaration.
func FileName(d java.Declaration) string {
	return d.Info().Name + ".md"
}
