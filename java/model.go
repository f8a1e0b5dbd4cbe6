package java

// NoDescription is the description given to a declared parameter that has no
// matching @param entry.
const NoDescription = "No description found"

type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
	AccessPackage   Access = ""
)

// String returns the access level as it appears in rendered documentation.
func (a Access) String() string {
	if a == AccessPackage {
		return "package-private"
	}
	return string(a)
}

// ParseAccess maps a configuration value such as "private" or
// "package-private" to an Access level.
func ParseAccess(s string) (Access, bool) {
	switch s {
	case "public":
		return AccessPublic, true
	case "protected":
		return AccessProtected, true
	case "private":
		return AccessPrivate, true
	case "package", "package-private":
		return AccessPackage, true
	}
	return AccessPackage, false
}

// Doc holds the fields of one parsed documentation comment.
type Doc struct {
	Description string
	Params      []Param
	Return      string
	Author      string
	Version     string
	Since       string
	Deprecated  string
	See         []string
	Exceptions  []Exception
}

// IsZero reports whether the comment carried no information at all.
func (d *Doc) IsZero() bool {
	return d == nil || (d.Description == "" && len(d.Params) == 0 && d.Return == "" &&
		d.Author == "" && d.Version == "" && d.Since == "" && d.Deprecated == "" &&
		len(d.See) == 0 && len(d.Exceptions) == 0)
}

type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

type Exception struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type EnumField struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Member is a field declared in the body of a type.
type Member struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Access      Access   `json:"access,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Description string   `json:"description,omitempty"`
	Signature   string   `json:"signature,omitempty"`
	Line        int      `json:"line"`
}

// Method is a method or constructor declared in the body of a type.
type Method struct {
	Name              string      `json:"name"`
	ReturnType        string      `json:"returnType,omitempty"`
	ReturnDescription string      `json:"returnDescription,omitempty"`
	Parameters        []Param     `json:"parameters,omitempty"`
	Access            Access      `json:"access,omitempty"`
	Modifiers         []string    `json:"modifiers,omitempty"`
	Exceptions        []Exception `json:"exceptions,omitempty"`
	Description       string      `json:"description,omitempty"`
	Deprecated        string      `json:"deprecated,omitempty"`
	Signature         string      `json:"signature,omitempty"`
	Line              int         `json:"line"`
}

func (m Method) HasModifier(name string) bool {
	return hasString(m.Modifiers, name)
}

func (m Member) HasModifier(name string) bool {
	return hasString(m.Modifiers, name)
}

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
