package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Rule)
	mu       sync.RWMutex
)

func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	// Wrap the rule with WaiverWrapper to provide automatic waiver support
	registry[r.ID()] = &WaiverWrapper{Rule: r}
}

func groupIndex(g Group) int {
	for i, known := range Groups() {
		if g == known {
			return i
		}
	}
	return len(Groups())
}

func seqOf(r Rule) int {
	if sr, ok := r.(SequencedRule); ok {
		return sr.Seq()
	}
	return 0
}

func sortRules(rules []Rule) {
	sort.Slice(rules, func(i, j int) bool {
		gi, gj := groupIndex(rules[i].Group()), groupIndex(rules[j].Group())
		if gi != gj {
			return gi < gj
		}
		si, sj := seqOf(rules[i]), seqOf(rules[j])
		if si != sj {
			return si < sj
		}
		return rules[i].ID() < rules[j].ID()
	})
}

// List returns all registered rules in evaluation order:
// by group, then by sequence position, then by ID.
func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	var rules []Rule
	for _, r := range registry {
		rules = append(rules, r)
	}
	sortRules(rules)
	return rules
}

// Resolve selects rules by a selector expression. An empty selector means
// all rules. Otherwise the selector is a comma-separated list of rule IDs
// and/or group names.
func Resolve(selector string) ([]Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	if selector == "" {
		return List(), nil
	}

	ids := strings.Split(selector, ",")
	seen := make(map[string]struct{})
	var selected []Rule
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if r, ok := registry[id]; ok {
			if _, dup := seen[r.ID()]; !dup {
				seen[r.ID()] = struct{}{}
				selected = append(selected, r)
			}
			continue
		}
		matched := false
		for _, r := range registry {
			if string(r.Group()) == id {
				matched = true
				if _, dup := seen[r.ID()]; !dup {
					seen[r.ID()] = struct{}{}
					selected = append(selected, r)
				}
			}
		}
		if !matched {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
	}
	sortRules(selected)
	return selected, nil
}
