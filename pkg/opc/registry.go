package opc

import (
	"runtime"
	"sync"
	"weak"
)

// live tracks every package that is still reachable from user code. Entries
// hold weak pointers only and are dropped by a cleanup once their package is
// collected.
var live struct {
	mu   sync.Mutex
	next uint64
	pkgs map[uint64]weak.Pointer[Package]
}

func register(p *Package) {
	live.mu.Lock()
	defer live.mu.Unlock()
	if live.pkgs == nil {
		live.pkgs = make(map[uint64]weak.Pointer[Package])
	}
	live.next++
	id := live.next
	live.pkgs[id] = weak.Make(p)
	runtime.AddCleanup(p, unregister, id)
}

func unregister(id uint64) {
	live.mu.Lock()
	defer live.mu.Unlock()
	delete(live.pkgs, id)
}

func livePackages() []*Package {
	live.mu.Lock()
	defer live.mu.Unlock()
	out := make([]*Package, 0, len(live.pkgs))
	for _, wp := range live.pkgs {
		if p := wp.Value(); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Containing returns the live package that holds part, or nil. A package
// holds the parts reachable from its root relationships, the parts it created
// with NewPart and the orphans found when it was opened.
func Containing(part *Part) *Package {
	for _, p := range livePackages() {
		if p.owns(part) {
			return p
		}
	}
	return nil
}

// LiveCount returns the number of packages not yet reclaimed.
func LiveCount() int {
	return len(livePackages())
}
