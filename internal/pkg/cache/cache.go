package cache

import (
	"time"

	"github.com/daksa-hr/attendance-gateway/internal/domain/attendance"
	"github.com/daksa-hr/attendance-gateway/internal/domain/employee"
	gocache "github.com/patrickmn/go-cache"
)

const (
	keySnapshot  = "attendance:snapshot"
	keyDirectory = "employee:directory"
)

// Store is the process-local TTL cache for the two datasets the gateway
// keeps between requests: the attendance month snapshot and the employee
// directory. Both are replaced wholesale, never patched.
type Store struct {
	c *gocache.Cache
}

func New(defaultTTL time.Duration) *Store {
	return &Store{c: gocache.New(defaultTTL, time.Minute)}
}

func (s *Store) Snapshot() (attendance.Month, bool) {
	v, ok := s.c.Get(keySnapshot)
	if !ok {
		return nil, false
	}
	m, ok := v.(attendance.Month)
	return m, ok
}

func (s *Store) SetSnapshot(m attendance.Month, ttl time.Duration) {
	s.c.Set(keySnapshot, m, ttl)
}

func (s *Store) DropSnapshot() {
	s.c.Delete(keySnapshot)
}

func (s *Store) Directory() ([]employee.Employee, bool) {
	v, ok := s.c.Get(keyDirectory)
	if !ok {
		return nil, false
	}
	list, ok := v.([]employee.Employee)
	return list, ok
}

func (s *Store) SetDirectory(list []employee.Employee, ttl time.Duration) {
	s.c.Set(keyDirectory, list, ttl)
}
