package search

// AliasActions is the body of the update aliases API
type AliasActions struct {
	Actions []map[string]AliasTarget `json:"actions"`
}

// AliasTarget names the alias and the index an action applies to
type AliasTarget struct {
	Alias string `json:"alias"`
	Index string `json:"index"`
}

// NewAliasActions returns a body holding a single action of the given kind, e.g. "add" or "remove"
func NewAliasActions(action, alias, index string) AliasActions {
	return AliasActions{
		Actions: []map[string]AliasTarget{
			{action: {Alias: alias, Index: index}},
		},
	}
}
