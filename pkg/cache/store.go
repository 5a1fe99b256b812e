package cache

import (
	"sync"

	"github.com/maqraa/maqraa.go/pkg/models"
)

// Key names a top-level entity in the store.
type Key string

const (
	KeyClassrooms   Key = "classrooms"
	KeyStudents     Key = "students"
	KeyPlans        Key = "plans"
	KeyTransactions Key = "transactions"
	KeyPendingUsers Key = "pendingUsers"
	KeyReports      Key = "reports"
	KeyHomeReport   Key = "homeReport"
	KeyProfile      Key = "profile"
)

// Keys lists every entity key, in the order the dashboard shows them.
var Keys = []Key{
	KeyClassrooms,
	KeyStudents,
	KeyPlans,
	KeyTransactions,
	KeyPendingUsers,
	KeyReports,
	KeyHomeReport,
	KeyProfile,
}

// EntityStore caches the top-level entities for one admin session. Every
// entity starts not-loaded and is replaced wholesale on a successful fetch.
// Safe for concurrent use.
type EntityStore struct {
	mu sync.RWMutex

	classrooms   Entry[[]models.Classroom]
	students     Entry[[]models.Student]
	plans        Entry[[]models.Plan]
	transactions Entry[[]models.Transaction]
	pendingUsers Entry[[]models.PendingUser]
	reports      Entry[[]models.Report]
	homeReport   Entry[models.HomeReport]
	profile      Entry[models.Profile]
}

// NewEntityStore returns an empty store with every entity not-loaded.
func NewEntityStore() *EntityStore {
	return &EntityStore{}
}

func (s *EntityStore) Classrooms() ([]models.Classroom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classrooms.Get()
}

func (s *EntityStore) SetClassrooms(v []models.Classroom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classrooms.Set(v)
}

func (s *EntityStore) Students() ([]models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.Get()
}

func (s *EntityStore) SetStudents(v []models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students.Set(v)
}

func (s *EntityStore) Plans() ([]models.Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plans.Get()
}

func (s *EntityStore) SetPlans(v []models.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans.Set(v)
}

func (s *EntityStore) Transactions() ([]models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.Get()
}

func (s *EntityStore) SetTransactions(v []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions.Set(v)
}

func (s *EntityStore) PendingUsers() ([]models.PendingUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingUsers.Get()
}

func (s *EntityStore) SetPendingUsers(v []models.PendingUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingUsers.Set(v)
}

// FilterPendingUsers replaces the pending collection with only the records
// keep returns true for, in one pass. It is the single sanctioned local
// mutation: the expiry countdown prunes records whose checkout window
// lapsed without asking the server. A not-loaded entry stays not-loaded.
func (s *EntityStore) FilterPendingUsers(keep func(models.PendingUser) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.pendingUsers.Get()
	if !ok {
		return
	}
	next := make([]models.PendingUser, 0, len(cur))
	for _, u := range cur {
		if keep(u) {
			next = append(next, u)
		}
	}
	s.pendingUsers.Set(next)
}

func (s *EntityStore) Reports() ([]models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reports.Get()
}

func (s *EntityStore) SetReports(v []models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports.Set(v)
}

func (s *EntityStore) HomeReport() (models.HomeReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.homeReport.Get()
}

func (s *EntityStore) SetHomeReport(v models.HomeReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homeReport.Set(v)
}

func (s *EntityStore) Profile() (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Get()
}

func (s *EntityStore) SetProfile(v models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Set(v)
}

// Loaded reports whether the named entity has been loaded.
func (s *EntityStore) Loaded(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch key {
	case KeyClassrooms:
		return s.classrooms.Loaded()
	case KeyStudents:
		return s.students.Loaded()
	case KeyPlans:
		return s.plans.Loaded()
	case KeyTransactions:
		return s.transactions.Loaded()
	case KeyPendingUsers:
		return s.pendingUsers.Loaded()
	case KeyReports:
		return s.reports.Loaded()
	case KeyHomeReport:
		return s.homeReport.Loaded()
	case KeyProfile:
		return s.profile.Loaded()
	}
	return false
}

// Reset returns one entity to not-loaded.
func (s *EntityStore) Reset(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case KeyClassrooms:
		s.classrooms.Reset()
	case KeyStudents:
		s.students.Reset()
	case KeyPlans:
		s.plans.Reset()
	case KeyTransactions:
		s.transactions.Reset()
	case KeyPendingUsers:
		s.pendingUsers.Reset()
	case KeyReports:
		s.reports.Reset()
	case KeyHomeReport:
		s.homeReport.Reset()
	case KeyProfile:
		s.profile.Reset()
	}
}

// ResetAll returns every entity to not-loaded. Used on logout.
func (s *EntityStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classrooms.Reset()
	s.students.Reset()
	s.plans.Reset()
	s.transactions.Reset()
	s.pendingUsers.Reset()
	s.reports.Reset()
	s.homeReport.Reset()
	s.profile.Reset()
}
