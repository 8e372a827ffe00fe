package catalog

import "testing"

func TestModulesCatalog(t *testing.T) {
	mods := Modules()
	if len(mods) != 11 {
		t.Fatalf("expected 11 modules, got %d", len(mods))
	}
	seen := map[string]bool{}
	total := 0
	for _, m := range mods {
		if m.Coef < 1 {
			t.Fatalf("module %s has non-positive coefficient %d", m.ID, m.Coef)
		}
		if seen[m.ID] {
			t.Fatalf("duplicate module id %s", m.ID)
		}
		seen[m.ID] = true
		total += m.Coef
	}
	if total != 16 {
		t.Fatalf("expected coefficient total 16, got %d", total)
	}
}

func TestModulesReturnsCopy(t *testing.T) {
	mods := Modules()
	mods[0].Coef = 99
	if Modules()[0].Coef != 3 {
		t.Fatalf("catalog mutated through returned slice")
	}
}

func TestLookup(t *testing.T) {
	m, ok := Lookup("ESP")
	if !ok || m.ID != "esp" {
		t.Fatalf("expected esp by short label, got %+v ok=%v", m, ok)
	}
	m, ok = Lookup("Library-Research")
	if !ok || m.Coef != 2 {
		t.Fatalf("expected library-research by id, got %+v ok=%v", m, ok)
	}
	if _, ok := Lookup("astronomy"); ok {
		t.Fatalf("expected unknown module to miss")
	}
	if _, ok := Lookup("  "); ok {
		t.Fatalf("expected blank key to miss")
	}
}
