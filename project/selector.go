package project

import "go.forgebuild.dev/forge/stringid"

// Selector picks which of a project's option collections apply for a given
// resolve call. Every field is optional; an unset field matches anything.
// Selector is a plain comparable struct (not a map or pointer) so it can be
// used directly as a map key in Project.Configs, the same role
// ConfigSelector plays as an ordered-map key in the source this package is
// modeled on.
type Selector struct {
	HasTransitivity bool
	Transitivity    Transitivity

	HasName bool
	Name    stringid.ID

	HasProjectType bool
	ProjectType    ProjectType

	HasTargetOS bool
	TargetOS    OS
}

// SelectorOption mutates a Selector under construction. NewSelector applies
// each option in turn; applying the same field twice is a programmer error
// and panics, mirroring the "specified twice" checks on the chained
// selector-composition operators this type replaces.
type SelectorOption func(*Selector)

// WithTransitivity scopes a selector to a transitivity.
func WithTransitivity(t Transitivity) SelectorOption {
	return func(s *Selector) {
		if s.HasTransitivity {
			panic("project: transitivity specified twice in selector")
		}
		s.HasTransitivity = true
		s.Transitivity = t
	}
}

// WithConfig scopes a selector to a named configuration (e.g. "debug").
func WithConfig(name string) SelectorOption {
	return func(s *Selector) {
		if s.HasName {
			panic("project: configuration name specified twice in selector")
		}
		s.HasName = true
		s.Name = stringid.Intern(name)
	}
}

// WithProjectType scopes a selector to a project type.
func WithProjectType(t ProjectType) SelectorOption {
	return func(s *Selector) {
		if s.HasProjectType {
			panic("project: project type specified twice in selector")
		}
		s.HasProjectType = true
		s.ProjectType = t
	}
}

// WithTargetOS scopes a selector to a target operating system.
func WithTargetOS(os OS) SelectorOption {
	return func(s *Selector) {
		if s.HasTargetOS {
			panic("project: target OS specified twice in selector")
		}
		s.HasTargetOS = true
		s.TargetOS = os
	}
}

// NewSelector builds a Selector from zero or more SelectorOptions. Calling
// it with no options returns the default, always-matching local selector.
func NewSelector(opts ...SelectorOption) Selector {
	var s Selector
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Less provides the deterministic total order entries are combined in when
// more than one selector matches a resolve call: by transitivity, then
// project type, then configuration name, then target OS — the same field
// order the selector's equivalent ordered-map key comparison used.
func (s Selector) Less(other Selector) bool {
	if s.HasTransitivity != other.HasTransitivity {
		return !s.HasTransitivity
	}
	if s.HasTransitivity && s.Transitivity != other.Transitivity {
		return s.Transitivity < other.Transitivity
	}
	if s.HasProjectType != other.HasProjectType {
		return !s.HasProjectType
	}
	if s.HasProjectType && s.ProjectType != other.ProjectType {
		return s.ProjectType < other.ProjectType
	}
	if s.HasName != other.HasName {
		return !s.HasName
	}
	if s.HasName && s.Name != other.Name {
		return s.Name.Less(other.Name)
	}
	if s.HasTargetOS != other.HasTargetOS {
		return !s.HasTargetOS
	}
	if s.HasTargetOS && s.TargetOS != other.TargetOS {
		return s.TargetOS < other.TargetOS
	}
	return false
}

// matchesLocal reports whether selector s applies when resolving the
// project that directly owns it.
func (s Selector) matchesLocal() bool {
	return !(s.HasTransitivity && s.Transitivity == PublicOnly)
}

// matchesLinked reports whether selector s applies when resolving a
// project reached only through a link (i.e. not the project being
// directly resolved).
func (s Selector) matchesLinked() bool {
	return s.HasTransitivity && s.Transitivity != Local
}

func (s Selector) matchesProjectType(t *ProjectType) bool {
	if !s.HasProjectType {
		return true
	}
	if t == nil {
		return false
	}
	return s.ProjectType == *t
}

func (s Selector) matchesConfig(name stringid.ID) bool {
	if !s.HasName {
		return true
	}
	return s.Name == name
}

func (s Selector) matchesTargetOS(os OS) bool {
	if !s.HasTargetOS {
		return true
	}
	return s.TargetOS == os
}
