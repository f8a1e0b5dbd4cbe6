package parser

import "github.com/dhamidi/lojidoc/java"

// buildMembers reads a field statement. "int a, b;" yields two members that
// share the type; anything after "=" is ignored. Statements without a type
// and a name yield nothing.
func buildMembers(elements []Element, doc *java.Doc, line int) []java.Member {
	var (
		access    java.Access
		modifiers []string
		lastType  string
		typ       string
		names     []string
	)
loop:
	for _, e := range elements {
		if e.isAssign() {
			break
		}
		switch e.Kind {
		case ElementAccess:
			access = java.Access(e.Value)
		case ElementModifier:
			modifiers = append(modifiers, e.Value)
		case ElementType:
			if typ == "" {
				lastType = e.Value
			}
		case ElementVariable:
			if typ == "" {
				if lastType == "" {
					continue
				}
				typ = lastType
			}
			names = append(names, e.Value)
		case ElementParams, ElementObject:
			break loop
		}
	}

	var description string
	if doc != nil {
		description = doc.Description
	}
	members := make([]java.Member, 0, len(names))
	for _, name := range names {
		members = append(members, java.Member{
			Name:        name,
			Type:        typ,
			Access:      access,
			Modifiers:   append([]string(nil), modifiers...),
			Description: description,
			Line:        line,
		})
	}
	return members
}
