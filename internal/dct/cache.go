package dct

import "sync"

type Cache struct {
	data sync.Map
}

func NewCache() *Cache {
	var c Cache
	return &c
}

func (c *Cache) New(n int) *DCT {
	if v, ok := c.data.Load(n); ok {
		return v.(*DCT)
	}
	d := New(n)
	actual, loaded := c.data.LoadOrStore(n, d)
	if loaded {
		return actual.(*DCT)
	}
	return d
}
