package core

import "testing"

func TestRecord_GetReturnsPostMutationValue(t *testing.T) {
	record := NewMaterializer(nil).Materialize(map[string]any{
		"object":  "account",
		"country": "US",
	})

	if err := record.Set("country", "DE"); err != nil {
		t.Fatalf("set country: %v", err)
	}

	value, err := record.GetString("country")
	if err != nil {
		t.Fatalf("get country: %v", err)
	}
	if value != "DE" {
		t.Fatalf("expected post-mutation value DE, got %q", value)
	}
}

func TestRecord_GetMissingAttributeFails(t *testing.T) {
	record := NewMaterializer(nil).Materialize(map[string]any{"object": "account"})

	_, err := record.Get("support_phone")
	if err == nil {
		t.Fatalf("expected missing attribute to fail")
	}
	if !IsAttributeNotFound(err) {
		t.Fatalf("expected attribute-not-found error, got %v", err)
	}

	if err := record.Set("support_phone", "555-0100"); err != nil {
		t.Fatalf("set support_phone: %v", err)
	}
	if _, err := record.Get("support_phone"); err != nil {
		t.Fatalf("expected assigned attribute to be readable: %v", err)
	}
}

func TestRecord_SetMarksFieldDirty(t *testing.T) {
	record := NewMaterializer(nil).Materialize(map[string]any{
		"object": "account",
		"email":  "ops@example.com",
	})

	if record.IsDirty("email") {
		t.Fatalf("loaded field must not start dirty")
	}
	if err := record.Set("email", "billing@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if !record.IsDirty("email") {
		t.Fatalf("expected email to be dirty after assignment")
	}
}

func TestRecord_ProtectedCompositeRejectsWholesaleAssignment(t *testing.T) {
	record := NewMaterializer(nil).Materialize(map[string]any{
		"object": "account",
		"legal_entity": map[string]any{
			"first_name": "Ada",
		},
	})
	record.Protect("legal_entity")

	err := record.Set("legal_entity", NewRecord("", map[string]any{"first_name": "Grace"}))
	if err == nil {
		t.Fatalf("expected wholesale assignment of protected composite to fail")
	}
	if !IsImmutableAssignment(err) {
		t.Fatalf("expected immutable-assignment error, got %v", err)
	}

	entity, getErr := record.GetRecord("legal_entity")
	if getErr != nil {
		t.Fatalf("get legal_entity: %v", getErr)
	}
	if setErr := entity.Set("first_name", "Grace"); setErr != nil {
		t.Fatalf("expected leaf assignment to succeed: %v", setErr)
	}
}

func TestRecord_DirtyDeterministicOrder(t *testing.T) {
	record := NewRecord("account", nil)
	for _, name := range []string{"zeta", "alpha", "beta"} {
		if err := record.Set(name, name); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	dirty := record.Dirty()
	want := []string{"alpha", "beta", "zeta"}
	if len(dirty) != len(want) {
		t.Fatalf("expected %d dirty fields, got %d", len(want), len(dirty))
	}
	for idx := range want {
		if dirty[idx] != want[idx] {
			t.Fatalf("unexpected ordering at index %d: got %v want %v", idx, dirty, want)
		}
	}
}

func TestRecord_FreshnessTracksOrigin(t *testing.T) {
	constructed := NewRecord("bank_account", map[string]any{"last4": "6789"})
	if !constructed.Fresh() {
		t.Fatalf("locally constructed record must be fresh")
	}

	loaded := NewMaterializer(nil).Materialize(map[string]any{"object": "bank_account"})
	if loaded.Fresh() {
		t.Fatalf("materialized record must not be fresh")
	}
}
