package component

// Name identifies an entity built from a named prefab.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
