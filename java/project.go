package java

import "sort"

// Project aggregates the declarations parsed from many files. A Project is
// not safe for concurrent use; parallel workers each own one.
type Project struct {
	Classes      []*Class
	Interfaces   []*Interface
	Enumerations []*Enumeration
}

func NewProject() *Project {
	return &Project{}
}

// Add files a declaration under its kind. Nil declarations are ignored.
func (p *Project) Add(d Declaration) {
	switch d := d.(type) {
	case *Class:
		if d != nil {
			p.Classes = append(p.Classes, d)
		}
	case *Interface:
		if d != nil {
			p.Interfaces = append(p.Interfaces, d)
		}
	case *Enumeration:
		if d != nil {
			p.Enumerations = append(p.Enumerations, d)
		}
	}
}

func (p *Project) Len() int {
	return len(p.Classes) + len(p.Interfaces) + len(p.Enumerations)
}

// All returns every declaration ordered by package, then name.
func (p *Project) All() []Declaration {
	all := make([]Declaration, 0, p.Len())
	for _, c := range p.Classes {
		all = append(all, c)
	}
	for _, i := range p.Interfaces {
		all = append(all, i)
	}
	for _, e := range p.Enumerations {
		all = append(all, e)
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Info(), all[j].Info()
		if a.Package != b.Package {
			return a.Package < b.Package
		}
		return a.Name < b.Name
	})
	return all
}

// Package lists the declarations that share a package name.
type Package struct {
	Name    string
	Members []Declaration
}

// Packages groups the project's declarations by package, sorted by package
// name. Declarations without a package are grouped under "".
func (p *Project) Packages() []Package {
	var packages []Package
	index := map[string]int{}
	for _, d := range p.All() {
		name := d.Info().Package
		i, ok := index[name]
		if !ok {
			i = len(packages)
			index[name] = i
			packages = append(packages, Package{Name: name})
		}
		packages[i].Members = append(packages[i].Members, d)
	}
	return packages
}
