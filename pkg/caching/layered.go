package caching

// Layered checks a fast cache before a slow one and promotes slow hits.
type Layered struct {
	fast Cache
	slow Cache
}

// NewLayered stacks fast above slow. Both layers see every Set.
func NewLayered(fast, slow Cache) *Layered {
	return &Layered{fast: fast, slow: slow}
}

func (l *Layered) Get(key string) ([]byte, bool) {
	if data, found := l.fast.Get(key); found {
		return data, true
	}
	if data, found := l.slow.Get(key); found {
		// Promote so the next lookup stays in memory.
		l.fast.Set(key, data)
		return data, true
	}
	return nil, false
}

func (l *Layered) Set(key string, data []byte) error {
	if err := l.fast.Set(key, data); err != nil {
		return err
	}
	return l.slow.Set(key, data)
}
