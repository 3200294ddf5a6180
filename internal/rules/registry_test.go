package rules

import (
	"context"
	"testing"

	"pkgmedic/internal/data"
	"pkgmedic/internal/pypkg"
)

type dummyRule struct {
	id    string
	group Group
	seq   int
}

func (r *dummyRule) ID() string          { return r.id }
func (r *dummyRule) Title() string       { return "Dummy Rule" }
func (r *dummyRule) Description() string { return "Does nothing" }
func (r *dummyRule) Group() Group        { return r.group }
func (r *dummyRule) Seq() int            { return r.seq }
func (r *dummyRule) Dependencies(ctx context.Context, pkg *pypkg.Package) ([]data.EvidenceKey, error) {
	return nil, nil
}
func (r *dummyRule) Evaluate(ctx context.Context, pkg *pypkg.Package, ev data.EvidenceContext) (Issue, error) {
	return Issue{}, nil
}

func resetRegistry() {
	mu.Lock()
	registry = make(map[string]Rule)
	mu.Unlock()
}

func TestRegistry(t *testing.T) {
	resetRegistry()

	r1 := &dummyRule{id: "rule1", group: GroupSetup}
	r2 := &dummyRule{id: "rule2", group: GroupSetup}

	Register(r1)
	Register(r2)

	all := List()
	if len(all) != 2 {
		t.Errorf("Expected 2 rules, got %d", len(all))
	}

	selected, err := Resolve("rule1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 1 || selected[0].ID() != "rule1" {
		t.Errorf("Expected rule1, got %v", selected)
	}

	selected, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 2 {
		t.Errorf("Expected 2 rules, got %d", len(selected))
	}

	_, err = Resolve("unknown")
	if err == nil {
		t.Error("Expected error for unknown rule")
	}
}

func TestResolveByGroup(t *testing.T) {
	resetRegistry()

	Register(&dummyRule{id: "setup-a", group: GroupSetup})
	Register(&dummyRule{id: "setup-b", group: GroupSetup})
	Register(&dummyRule{id: "tests-a", group: GroupTests})

	selected, err := Resolve("setup")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 2 {
		t.Fatalf("Expected 2 setup rules, got %d", len(selected))
	}
	for _, r := range selected {
		if r.Group() != GroupSetup {
			t.Errorf("Expected setup group, got %s", r.Group())
		}
	}

	// Mixed selector with duplicates collapses to unique rules.
	selected, err = Resolve("setup,setup-a,tests-a")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(selected))
	}
}

func TestListOrdering(t *testing.T) {
	resetRegistry()

	Register(&dummyRule{id: "tests-run", group: GroupTests, seq: 4})
	Register(&dummyRule{id: "tests-installed", group: GroupTests, seq: 1})
	Register(&dummyRule{id: "files-b", group: GroupPackageFiles})
	Register(&dummyRule{id: "files-a", group: GroupPackageFiles})
	Register(&dummyRule{id: "setup-z", group: GroupSetup})

	want := []string{"setup-z", "files-a", "files-b", "tests-installed", "tests-run"}
	all := List()
	if len(all) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID() != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, all[i].ID())
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	resetRegistry()

	Register(&dummyRule{id: "dup", group: GroupSetup})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register(&dummyRule{id: "dup", group: GroupSetup})
}

func TestGroupSequential(t *testing.T) {
	if GroupSetup.Sequential() {
		t.Error("setup group should not be sequential")
	}
	if GroupPackageFiles.Sequential() {
		t.Error("package-files group should not be sequential")
	}
	if !GroupSelftest.Sequential() {
		t.Error("selftest group should be sequential")
	}
	if !GroupTests.Sequential() {
		t.Error("tests group should be sequential")
	}
}
