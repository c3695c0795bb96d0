package domain

import "sort"

// Entity tags the entity types of the chart of accounts.
type Entity string

// Entity types.
const (
	EntityAccount          Entity = "account"
	EntitySyntheticAccount Entity = "syntheticAccount"
	EntitySubAccount       Entity = "subAccount"
	EntityUser             Entity = "user"
)

// Relation names an association that can be expanded onto an entity.
type Relation string

// Relation names.
const (
	RelationSyntheticAccounts Relation = "syntheticAccounts"
	RelationSubAccounts       Relation = "subAccounts"
	RelationByDebitAccounts   Relation = "byDebitAccounts"
	RelationByCreditAccounts  Relation = "byCreditAccounts"
)

var vocabulary = map[Entity][]Relation{
	EntityAccount:          {RelationSyntheticAccounts},
	EntitySyntheticAccount: {RelationSubAccounts, RelationByDebitAccounts, RelationByCreditAccounts},
	EntitySubAccount:       {},
	EntityUser:             {},
}

// Relations returns the relation vocabulary of entity.
func Relations(entity Entity) []Relation {
	return append([]Relation(nil), vocabulary[entity]...)
}

// RelationSet is a set of requested relation names.
type RelationSet map[Relation]struct{}

// NewRelationSet builds a set from rels without validating them.
func NewRelationSet(rels ...Relation) RelationSet {
	s := make(RelationSet, len(rels))
	for _, r := range rels {
		s[r] = struct{}{}
	}

	return s
}

// Has reports whether r is in the set.
func (s RelationSet) Has(r Relation) bool {
	_, ok := s[r]
	return ok
}

// Sorted returns the set members in lexical order.
func (s RelationSet) Sorted() []Relation {
	rels := make([]Relation, 0, len(s))
	for r := range s {
		rels = append(rels, r)
	}

	sort.Slice(rels, func(i, j int) bool { return rels[i] < rels[j] })

	return rels
}

// ParseRelations validates names against the vocabulary of entity.
func ParseRelations(entity Entity, names []string) (RelationSet, error) {
	allowed := vocabulary[entity]
	set := make(RelationSet, len(names))

	for _, name := range names {
		if !contains(allowed, Relation(name)) {
			return nil, &Error{Kind: ErrInvalidRelation, Entity: entity, Field: "relations", Name: name}
		}

		set[Relation(name)] = struct{}{}
	}

	return set, nil
}

func contains(rels []Relation, r Relation) bool {
	for _, rel := range rels {
		if rel == r {
			return true
		}
	}

	return false
}
