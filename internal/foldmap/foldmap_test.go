package foldmap

import "testing"

func TestMapIsCaseInsensitive(t *testing.T) {
	m := New[int]()
	m.Set("ResourceID", 1)

	for _, key := range []string{"ResourceID", "resourceid", "RESOURCEID"} {
		got, ok := m.Get(key)
		if !ok || got != 1 {
			t.Errorf("Get(%q) = %d, %v; want 1, true", key, got, ok)
		}
	}
	if m.Has("ModuleName") {
		t.Error("Has(ModuleName) = true, want false")
	}
}

func TestMapKeepsFirstSpelling(t *testing.T) {
	m := New[string]()
	m.Set("DependsOn", "a")
	m.Set("dependson", "b")

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	m.Each(func(key, value string) {
		if key != "DependsOn" || value != "b" {
			t.Errorf("entry = %q: %q, want DependsOn: b", key, value)
		}
	})
}

func TestSet(t *testing.T) {
	s := NewSet("OMI_ConfigurationDocument", "SourceInfo")

	if !s.Has("omi_configurationdocument") {
		t.Error("Has(omi_configurationdocument) = false, want true")
	}
	if !s.Has("SOURCEINFO") {
		t.Error("Has(SOURCEINFO) = false, want true")
	}
	if s.Has("Ensure") {
		t.Error("Has(Ensure) = true, want false")
	}
}
