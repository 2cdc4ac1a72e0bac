// Shelfmate - Social Movie and Book Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmate

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// MockService runs until canceled, optionally failing its first N starts.
type MockService struct {
	name     string
	starts   atomic.Int32
	failures atomic.Int32
	maxFails atomic.Int32
}

func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

func (m *MockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	if m.failures.Add(1) <= m.maxFails.Load() {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

// SetFailCount makes the next n starts fail immediately.
func (m *MockService) SetFailCount(n int) {
	m.maxFails.Store(int32(n))
}

func (m *MockService) StartCount() int32 {
	return m.starts.Load()
}

func (m *MockService) String() string {
	return m.name
}
