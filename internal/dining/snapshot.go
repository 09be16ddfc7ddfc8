package dining

// PhilosopherSnapshot is one seat's row in a live observation of the table.
type PhilosopherSnapshot struct {
	ID     int    `json:"id"`
	State  string `json:"state"`
	Meals  int64  `json:"meals"`
	WaitMs int64  `json:"wait_ms"`
}

// ForkSnapshot reports whether one fork was taken at the instant of the look.
type ForkSnapshot struct {
	ID   int  `json:"id"`
	Held bool `json:"held"`
}

// TableSnapshot is a point-in-time view of the whole table.
type TableSnapshot struct {
	Philosophers []PhilosopherSnapshot `json:"philosophers"`
	Forks        []ForkSnapshot        `json:"forks"`
}

// Snapshot observes the table without disturbing it. Each row is
// individually consistent; the table as a whole is not a frozen instant,
// since the diners keep moving while the rows are read.
func (t *Table) Snapshot() TableSnapshot {
	snap := TableSnapshot{
		Philosophers: make([]PhilosopherSnapshot, len(t.philosophers)),
		Forks:        make([]ForkSnapshot, t.forks.Len()),
	}
	for i, p := range t.philosophers {
		meals, wait := t.slots[i].load()
		snap.Philosophers[i] = PhilosopherSnapshot{
			ID:     i,
			State:  State(p.state.Load()).String(),
			Meals:  meals,
			WaitMs: wait.Milliseconds(),
		}
	}
	for i := range snap.Forks {
		snap.Forks[i] = ForkSnapshot{ID: i, Held: t.forks.Held(i)}
	}
	return snap
}
