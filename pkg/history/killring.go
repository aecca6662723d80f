package history

import "strings"

const killRingMax = 10

// KillRing keeps the most recently deleted or yanked texts, newest first.
// Text ending in a newline was taken linewise.
type KillRing struct {
	entries []string
	pos     int
}

// Push stores s as the current entry.
func (k *KillRing) Push(s string) {
	if s == "" {
		return
	}
	if len(k.entries) < killRingMax {
		k.entries = append(k.entries, "")
	}
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = s
	k.pos = 0
}

// PushLines stores whole rows as a linewise entry.
func (k *KillRing) PushLines(rows []string) {
	if len(rows) == 0 {
		return
	}
	k.Push(strings.Join(rows, "\n") + "\n")
}

// Rotate makes the next older entry current.
func (k *KillRing) Rotate() bool {
	if len(k.entries) <= 1 {
		return false
	}
	k.pos = (k.pos + 1) % len(k.entries)
	return true
}

// Get returns the current entry.
func (k *KillRing) Get() string {
	if len(k.entries) == 0 {
		return ""
	}
	return k.entries[k.pos]
}

// Len returns the number of entries in the ring.
func (k *KillRing) Len() int { return len(k.entries) }

// HasData reports whether the ring contains text.
func (k *KillRing) HasData() bool { return len(k.entries) > 0 }

// IsLinewise reports whether s holds whole rows.
func IsLinewise(s string) bool { return strings.HasSuffix(s, "\n") }
