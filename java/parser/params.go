package parser

import "github.com/dhamidi/lojidoc/java"

// MatchParams gives each declared parameter the description of the first
// documented parameter with the same name, or java.NoDescription. The
// result keeps the declared order.
func MatchParams(declared, documented []java.Param) []java.Param {
	if len(declared) == 0 {
		return nil
	}
	result := make([]java.Param, len(declared))
	for i, d := range declared {
		result[i] = java.Param{
			Name:        d.Name,
			Type:        d.Type,
			Description: java.NoDescription,
		}
		for _, doc := range documented {
			if doc.Name == d.Name {
				result[i].Description = doc.Description
				break
			}
		}
	}
	return result
}
