package projection

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/go-petr/pet-ledger/internal/domain"
)

func TestParseView(t *testing.T) {
	testCases := []struct {
		name    string
		entity  domain.Entity
		view    string
		want    View
		wantErr bool
	}{
		{name: "EmptyIsDefault", entity: domain.EntityAccount, view: "", want: ViewDefault},
		{name: "AccountWithSynthetic", entity: domain.EntityAccount, view: "withSynthetic", want: ViewWithSynthetic},
		{name: "SyntheticWithLinked", entity: domain.EntitySyntheticAccount, view: "withLinked", want: ViewWithLinked},
		{name: "AtomicNotRequestable", entity: domain.EntitySyntheticAccount, view: "atomic", wantErr: true},
		{name: "ForeignView", entity: domain.EntityAccount, view: "withSub", wantErr: true},
		{name: "Unknown", entity: domain.EntitySubAccount, view: "full", wantErr: true},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseView(tc.entity, tc.view)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrInvalidView) {
					t.Fatalf("ParseView(%v, %q) returned error %v, want ErrInvalidView", tc.entity, tc.view, err)
				}

				return
			}

			if err != nil || got != tc.want {
				t.Errorf("ParseView(%v, %q)=(%q, %v), want %q", tc.entity, tc.view, got, err, tc.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	rels := domain.NewRelationSet(domain.RelationSubAccounts)

	if err := Check(domain.EntitySyntheticAccount, ViewWithSub, rels); err != nil {
		t.Errorf("Check(withSub, {subAccounts}) returned error: %v", err)
	}

	if err := Check(domain.EntitySyntheticAccount, ViewDefault, rels); err != nil {
		t.Errorf("Check(default, {subAccounts}) returned error: %v", err)
	}

	err := Check(domain.EntitySyntheticAccount, ViewWithLinked, rels)
	if !errors.Is(err, domain.ErrInvalidView) {
		t.Errorf("Check(withLinked, {subAccounts}) returned %v, want ErrInvalidView", err)
	}
}

func TestRelationNames(t *testing.T) {
	got := RelationNames(domain.EntitySyntheticAccount, ViewWithSubAndLinked)
	want := []string{"subAccounts", "byDebitAccounts", "byCreditAccounts"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RelationNames() mismatch (-want +got):\n%s", diff)
	}

	if got := RelationNames(domain.EntityAccount, ViewDefault); len(got) != 0 {
		t.Errorf("RelationNames(account, default)=%v, want none", got)
	}
}

func TestAccount(t *testing.T) {
	synthetic := domain.SyntheticAccount{
		ID: 2, Number: 10, Title: "Cash", Description: "d", AccountID: 1,
		SubAccounts: []domain.SubAccount{{ID: 9}},
	}
	account := domain.Account{ID: 1, Title: "Assets", SyntheticAccounts: []domain.SyntheticAccount{synthetic}}

	got, err := Account(account, ViewWithSynthetic)
	if err != nil {
		t.Fatalf("Account(withSynthetic) returned error: %v", err)
	}

	want := Object{
		"id":    int32(1),
		"title": "Assets",
		"syntheticAccounts": []Object{{
			"id":          int32(2),
			"number":      int32(10),
			"title":       "Cash",
			"description": "d",
			"accountId":   int32(1),
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Account(withSynthetic) mismatch (-want +got):\n%s", diff)
	}

	got, err = Account(account, ViewDefault)
	if err != nil {
		t.Fatalf("Account(default) returned error: %v", err)
	}

	if _, ok := got["syntheticAccounts"]; ok {
		t.Error("Account(default) leaked the syntheticAccounts relation")
	}
}

func TestAccountRelationNotExpanded(t *testing.T) {
	_, err := Account(domain.Account{ID: 1, Title: "Assets"}, ViewWithSynthetic)
	if !errors.Is(err, domain.ErrInvalidView) {
		t.Errorf("Account() returned %v, want ErrInvalidView", err)
	}
}

func TestSyntheticAccountEmptyRelations(t *testing.T) {
	s := domain.SyntheticAccount{
		ID:               3,
		AccountID:        1,
		SubAccounts:      []domain.SubAccount{},
		ByDebitAccounts:  []domain.SyntheticAccount{},
		ByCreditAccounts: []domain.SyntheticAccount{{ID: 4, AccountID: 1, ByDebitAccounts: []domain.SyntheticAccount{{ID: 3}}}},
	}

	got, err := SyntheticAccount(s, ViewWithSubAndLinked)
	if err != nil {
		t.Fatalf("SyntheticAccount(withSubAndLinked) returned error: %v", err)
	}

	if diff := cmp.Diff([]Object{}, got["subAccounts"]); diff != "" {
		t.Errorf("subAccounts mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]Object{}, got["byDebitAccounts"]); diff != "" {
		t.Errorf("byDebitAccounts mismatch (-want +got):\n%s", diff)
	}

	credit, ok := got["byCreditAccounts"].([]Object)
	if !ok || len(credit) != 1 {
		t.Fatalf("byCreditAccounts=%v, want one object", got["byCreditAccounts"])
	}

	if _, ok := credit[0]["byDebitAccounts"]; ok {
		t.Error("nested synthetic account was projected with relations")
	}
}

func TestUserHidesPassword(t *testing.T) {
	now := time.Now().UTC()
	u := domain.User{
		ID:             uuid.New(),
		Email:          "a@email.com",
		Name:           "A",
		HashedPassword: "secret",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	got, err := User(u, ViewDefault)
	if err != nil {
		t.Fatalf("User() returned error: %v", err)
	}

	want := Object{
		"id":        u.ID.String(),
		"email":     "a@email.com",
		"name":      "A",
		"createdAt": now,
		"updatedAt": now,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("User() mismatch (-want +got):\n%s", diff)
	}
}
