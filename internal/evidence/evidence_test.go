package evidence

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_AbsentIsNil(t *testing.T) {
	f, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Fatalf("f = %+v, want nil", f)
	}
}

func TestRecord_CreatesAndMerges(t *testing.T) {
	dir := t.TempDir()

	if _, err := Record(dir, []string{"V001"}, "manual check passed"); err != nil {
		t.Fatal(err)
	}
	f, err := Record(dir, []string{"V002"}, "screenshots attached")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Items) != 2 {
		t.Fatalf("items = %d, want 2 (merge must keep unrelated items)", len(f.Items))
	}
	if f.Items["V001"].Evidence != "manual check passed" {
		t.Fatalf("V001 = %+v", f.Items["V001"])
	}
}

func TestRecord_SharedWithFullMesh(t *testing.T) {
	dir := t.TempDir()
	f, err := Record(dir, []string{"V001", "V002", "V003"}, "batch verified together")
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string][]string{
		"V001": {"V002", "V003"},
		"V002": {"V001", "V003"},
		"V003": {"V001", "V002"},
	}
	for id, want := range cases {
		got := f.Items[id].SharedWith
		if len(got) != len(want) {
			t.Fatalf("%s sharedWith = %v, want %v", id, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s sharedWith = %v, want %v", id, got, want)
			}
		}
	}
}

func TestRecord_EmptyIDsRejected(t *testing.T) {
	if _, err := Record(t.TempDir(), nil, "x"); err == nil {
		t.Fatal("empty ID list should be rejected")
	}
}

func TestHas_Vacuous(t *testing.T) {
	res := Has(nil, nil)
	if !res.Complete {
		t.Fatal("nothing required must pass even with no file")
	}
	if len(res.Missing) != 0 {
		t.Fatalf("missing = %v", res.Missing)
	}
}

func TestHas_NilFileAllMissing(t *testing.T) {
	res := Has(nil, []string{"V001", "V002"})
	if res.Complete {
		t.Fatal("should be incomplete")
	}
	if len(res.Missing) != 2 {
		t.Fatalf("missing = %v", res.Missing)
	}
}

func TestHas_PartialCoverage(t *testing.T) {
	dir := t.TempDir()
	f, err := Record(dir, []string{"V001"}, "done")
	if err != nil {
		t.Fatal(err)
	}
	res := Has(f, []string{"V001", "V002"})
	if res.Complete || len(res.Missing) != 1 || res.Missing[0] != "V002" {
		t.Fatalf("res = %+v", res)
	}
}

func TestRemove_AbsentFileNoop(t *testing.T) {
	dir := t.TempDir()
	if err := Remove(dir, []string{"V001"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, fileName)); !os.IsNotExist(err) {
		t.Fatal("remove on absent file must not create it")
	}
}

func TestRemove_DeletesOnlyNamedKeys(t *testing.T) {
	dir := t.TempDir()
	if _, err := Record(dir, []string{"V001", "V002"}, "both"); err != nil {
		t.Fatal(err)
	}
	if err := Remove(dir, []string{"V001"}); err != nil {
		t.Fatal(err)
	}
	f, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Items["V001"]; ok {
		t.Fatal("V001 should be gone")
	}
	if _, ok := f.Items["V002"]; !ok {
		t.Fatal("V002 should remain")
	}
}
