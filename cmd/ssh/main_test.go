package main

import (
	"sync"
	"testing"
	"time"
)

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	if w, h, err := s.getSize(); w != 80 || h != 24 || err != nil {
		t.Fatalf("getSize = %d, %d, %v", w, h, err)
	}
	s.update(120, 40)
	if w, h, _ := s.getSize(); w != 120 || h != 40 {
		t.Errorf("after update getSize = %d, %d", w, h)
	}
}

func TestWaitTimeout(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	start := time.Now()
	waitTimeout(&wg, 50*time.Millisecond)
	if time.Since(start) < 50*time.Millisecond {
		t.Error("returned before the timeout with a pending session")
	}
	wg.Done()
	waitTimeout(&wg, time.Second)
}
