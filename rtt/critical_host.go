//go:build !nrf

package rtt

import (
	"runtime"
	"sync"
)

type critical struct{ mu sync.Mutex }

func (c *critical) lock()   { c.mu.Lock() }
func (c *critical) unlock() { c.mu.Unlock() }

func yield() { runtime.Gosched() }
