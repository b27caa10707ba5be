package models

// Definition is the emitter-facing form of an interface: a capitalized
// record name, its ordered fields and the capabilities it derives.
type Definition struct {
	Name    string            `json:"name" yaml:"name"`
	Fields  []DefinitionField `json:"fields" yaml:"fields"`
	Derives []string          `json:"derives" yaml:"derives"`
}

// DefinitionField is a single named, typed member of a Definition
type DefinitionField struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}
