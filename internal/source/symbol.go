package source

import "sync"

// Symbol is an interned string. Two symbols are equal iff the strings they
// were interned from are equal.
type Symbol uint32

// Interner deduplicates strings into Symbols. It is safe for concurrent use
// so several compilation units can be lexed in parallel against one table.
type Interner struct {
	mu      sync.RWMutex
	ids     map[string]Symbol
	strings []string
}

// NewInterner returns an empty interner. Symbol 0 is reserved for the empty
// string so the zero Symbol is meaningful.
func NewInterner() *Interner {
	in := &Interner{ids: make(map[string]Symbol)}
	in.ids[""] = 0
	in.strings = append(in.strings, "")
	return in
}

// Intern returns the symbol for s, allocating one on first sight.
func (in *Interner) Intern(s string) Symbol {
	in.mu.RLock()
	sym, ok := in.ids[s]
	in.mu.RUnlock()
	if ok {
		return sym
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if sym, ok := in.ids[s]; ok {
		return sym
	}
	sym = Symbol(len(in.strings))
	in.ids[s] = sym
	in.strings = append(in.strings, s)
	return sym
}

// Lookup returns the string behind sym. Unknown symbols yield "".
func (in *Interner) Lookup(sym Symbol) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(sym) >= len(in.strings) {
		return ""
	}
	return in.strings[sym]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}

var defaultInterner = NewInterner()

// DefaultInterner returns the process-wide interner.
func DefaultInterner() *Interner { return defaultInterner }

// Intern interns s in the process-wide interner.
func Intern(s string) Symbol { return defaultInterner.Intern(s) }

// String returns the text of sym according to the process-wide interner.
func (sym Symbol) String() string { return defaultInterner.Lookup(sym) }
