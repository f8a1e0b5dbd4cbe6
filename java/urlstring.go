package java

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// URLString is a source location that renders as a plain string. It is
// either a local path or a repository URL built from a project context.
type URLString struct {
	url.URL
}

// ParseURLString accepts anything from "src/Foo.java" to
// "https://github.com/user/repo/blob/main/src/Foo.java". Unparseable input
// is kept verbatim as a path.
func ParseURLString(s string) URLString {
	if s == "" {
		return URLString{}
	}
	u, err := url.Parse(s)
	if err != nil {
		return URLString{URL: url.URL{Path: s}}
	}
	return URLString{URL: *u}
}

func FileURL(path string) URLString {
	return URLString{
		URL: url.URL{
			Scheme: "file",
			Path:   path,
		},
	}
}

func (u URLString) IsZero() bool {
	return u.URL.Scheme == "" && u.URL.Host == "" && u.URL.Path == "" && u.URL.Opaque == ""
}

// AtLine returns the location with a "#L<line>" anchor, the form used by
// repository hosts for line links. A non-positive line yields the bare
// location.
func (u URLString) AtLine(line int) string {
	if u.IsZero() {
		return ""
	}
	if line <= 0 {
		return u.String()
	}
	at := u.URL
	at.Fragment = fmt.Sprintf("L%d", line)
	return at.String()
}

func (u URLString) String() string {
	if u.IsZero() {
		return ""
	}
	return u.URL.String()
}

func (u URLString) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(u.URL.String())
}

func (u *URLString) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*u = URLString{}
		return nil
	}
	parsed, err := url.Parse(*s)
	if err != nil {
		return err
	}
	u.URL = *parsed
	return nil
}
