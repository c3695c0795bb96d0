// Package projection turns entities into output objects for a named view.
//
// The view table is an allowlist: an entity field reaches the output only when a view names it.
// Entities nested inside another projection always use the atomic view and are never expanded again.
package projection

import (
	"github.com/go-petr/pet-ledger/internal/domain"
)

// View names a set of output fields and relations.
type View string

// Views.
const (
	ViewDefault          View = "default"
	ViewWithSynthetic    View = "withSynthetic"
	ViewWithSub          View = "withSub"
	ViewWithLinked       View = "withLinked"
	ViewWithSubAndLinked View = "withSubAndLinked"
	// ViewAtomic is used for nested entities and cannot be requested by callers.
	ViewAtomic View = "atomic"
)

// Object is a projected entity ready for encoding.
type Object map[string]any

type viewSpec struct {
	fields    []string
	relations []domain.Relation
}

var (
	accountScalars   = []string{"id", "title"}
	syntheticScalars = []string{"id", "number", "title", "description", "accountId"}
	subScalars       = []string{"id", "number", "title", "description", "syntheticAccountId"}
	userScalars      = []string{"id", "email", "name", "createdAt", "updatedAt"}
)

var views = map[domain.Entity]map[View]viewSpec{
	domain.EntityAccount: {
		ViewDefault:       {fields: accountScalars},
		ViewAtomic:        {fields: accountScalars},
		ViewWithSynthetic: {fields: accountScalars, relations: []domain.Relation{domain.RelationSyntheticAccounts}},
	},
	domain.EntitySyntheticAccount: {
		ViewDefault: {fields: syntheticScalars},
		ViewAtomic:  {fields: syntheticScalars},
		ViewWithSub: {fields: syntheticScalars, relations: []domain.Relation{domain.RelationSubAccounts}},
		ViewWithLinked: {fields: syntheticScalars, relations: []domain.Relation{
			domain.RelationByDebitAccounts,
			domain.RelationByCreditAccounts,
		}},
		ViewWithSubAndLinked: {fields: syntheticScalars, relations: []domain.Relation{
			domain.RelationSubAccounts,
			domain.RelationByDebitAccounts,
			domain.RelationByCreditAccounts,
		}},
	},
	domain.EntitySubAccount: {
		ViewDefault: {fields: subScalars},
		ViewAtomic:  {fields: subScalars},
	},
	domain.EntityUser: {
		ViewDefault: {fields: userScalars},
		ViewAtomic:  {fields: userScalars},
	},
}

// ParseView resolves a caller-supplied view name for entity. An empty name means the default view.
func ParseView(entity domain.Entity, name string) (View, error) {
	if name == "" {
		return ViewDefault, nil
	}

	v := View(name)
	if _, ok := views[entity][v]; !ok || v == ViewAtomic {
		return "", &domain.Error{Kind: domain.ErrInvalidView, Entity: entity, Field: "view", Name: name}
	}

	return v, nil
}

// Relations returns the relations view needs on entity.
func Relations(entity domain.Entity, view View) []domain.Relation {
	return append([]domain.Relation(nil), views[entity][view].relations...)
}

// RelationNames returns the relations view needs on entity as request names.
func RelationNames(entity domain.Entity, view View) []string {
	rels := views[entity][view].relations

	names := make([]string, 0, len(rels))
	for _, r := range rels {
		names = append(names, string(r))
	}

	return names
}

// Check verifies that view exists for entity and that rels covers every relation the view needs.
func Check(entity domain.Entity, view View, rels domain.RelationSet) error {
	spec, ok := views[entity][view]
	if !ok {
		return &domain.Error{Kind: domain.ErrInvalidView, Entity: entity, Field: "view", Name: string(view)}
	}

	for _, r := range spec.relations {
		if !rels.Has(r) {
			return &domain.Error{Kind: domain.ErrInvalidView, Entity: entity, Field: "relations", Name: string(r)}
		}
	}

	return nil
}

func lookup(entity domain.Entity, view View) (viewSpec, error) {
	spec, ok := views[entity][view]
	if !ok {
		return viewSpec{}, &domain.Error{Kind: domain.ErrInvalidView, Entity: entity, Field: "view", Name: string(view)}
	}

	return spec, nil
}

func notExpanded(entity domain.Entity, r domain.Relation) error {
	return &domain.Error{Kind: domain.ErrInvalidView, Entity: entity, Field: "relations", Name: string(r)}
}

type fields[T any] map[string]func(T) any

func (fs fields[T]) pick(v T, names []string) Object {
	o := make(Object, len(names))
	for _, name := range names {
		o[name] = fs[name](v)
	}

	return o
}

func many[T any](items []T, view View, project func(T, View) (Object, error)) ([]Object, error) {
	result := make([]Object, 0, len(items))

	for _, item := range items {
		o, err := project(item, view)
		if err != nil {
			return nil, err
		}

		result = append(result, o)
	}

	return result, nil
}
