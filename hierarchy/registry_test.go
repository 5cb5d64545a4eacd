package hierarchy

import (
	"testing"
)

func TestGetRepository_SameInstancePerName(t *testing.T) {
	a := GetRepository("registry-test-a")
	b := GetRepository("registry-test-b")
	if a == b {
		t.Fatal("different names must yield different repositories")
	}
	if GetRepository("registry-test-a") != a {
		t.Error("same name must yield the same repository")
	}
	if a.Name() != "registry-test-a" {
		t.Errorf("repository name = %q", a.Name())
	}
}

func TestDefault_BootstrapsOnFirstUse(t *testing.T) {
	d := Default()
	if d == nil {
		t.Fatal("Default returned nil")
	}
	if d != GetRepository(DefaultRepositoryName) {
		t.Error("Default must be the repository registered under the default name")
	}
	if GetLogger("pkg.level.logger").Repository() != d {
		t.Error("package-level GetLogger must use the default repository")
	}
}

func TestRepositoryNames_Sorted(t *testing.T) {
	GetRepository("registry-test-z")
	GetRepository("registry-test-m")

	names := RepositoryNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
