package models

// Storage is the durable shape of the session store: username to
// chronologically ordered records, most recent last.
type Storage map[string][]GenerationRecord

// Clone copies the mapping and every per-user slice.
func (s Storage) Clone() Storage {
	out := make(Storage, len(s))
	for user, records := range s {
		cp := make([]GenerationRecord, len(records))
		copy(cp, records)
		out[user] = cp
	}
	return out
}

// Count returns the number of records across all users.
func (s Storage) Count() int {
	n := 0
	for _, records := range s {
		n += len(records)
	}
	return n
}
