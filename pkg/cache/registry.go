package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/maqraa/maqraa.go/pkg/models"
)

// Tab names one of the per-classroom sub-caches.
type Tab string

const (
	TabHome          Tab = "home"
	TabStudents      Tab = "students"
	TabFiles         Tab = "files"
	TabTasks         Tab = "tasks"
	TabReceivedTasks Tab = "receivedTasks"
	TabNotes         Tab = "notes"
	TabVideos        Tab = "videos"
)

// Tabs lists every tab of a classroom slot.
var Tabs = []Tab{
	TabHome,
	TabStudents,
	TabFiles,
	TabTasks,
	TabReceivedTasks,
	TabNotes,
	TabVideos,
}

// ErrUnknownTab is returned by SetTab for a tab name outside Tabs.
var ErrUnknownTab = errors.New("cache: unknown tab")

// ClassSlot carries one classroom's sub-caches. Each tab is independently
// tri-state; loading one tab says nothing about the others.
type ClassSlot struct {
	ID models.ClassroomID

	Home          Entry[models.ClassHome]
	Students      Entry[[]models.Student]
	Files         Entry[[]models.File]
	Tasks         Entry[[]models.Task]
	ReceivedTasks Entry[[]models.TaskSubmissions]
	Notes         Entry[[]models.Note]
	Videos        Entry[[]models.Video]
}

// TabLoaded reports whether the named tab has been loaded.
func (s ClassSlot) TabLoaded(tab Tab) bool {
	switch tab {
	case TabHome:
		return s.Home.Loaded()
	case TabStudents:
		return s.Students.Loaded()
	case TabFiles:
		return s.Files.Loaded()
	case TabTasks:
		return s.Tasks.Loaded()
	case TabReceivedTasks:
		return s.ReceivedTasks.Loaded()
	case TabNotes:
		return s.Notes.Loaded()
	case TabVideos:
		return s.Videos.Loaded()
	}
	return false
}

// ClassroomRegistry holds one slot per classroom the session has visited.
// Safe for concurrent use.
type ClassroomRegistry struct {
	mu    sync.RWMutex
	slots map[models.ClassroomID]*ClassSlot
}

// NewClassroomRegistry returns an empty registry.
func NewClassroomRegistry() *ClassroomRegistry {
	return &ClassroomRegistry{slots: make(map[models.ClassroomID]*ClassSlot)}
}

// OpenClass creates the slot for id if it does not exist yet. Opening an
// existing slot is a no-op: the dashboard calls this on every tab mount, and
// data already loaded must survive a revisit.
func (r *ClassroomRegistry) OpenClass(id models.ClassroomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open(id)
}

func (r *ClassroomRegistry) open(id models.ClassroomID) *ClassSlot {
	if slot, ok := r.slots[id]; ok {
		return slot
	}
	slot := &ClassSlot{ID: id}
	r.slots[id] = slot
	return slot
}

// ClassData returns a snapshot of the slot for id, and false if the
// classroom was never opened.
func (r *ClassroomRegistry) ClassData(id models.ClassroomID) (ClassSlot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.slots[id]
	if !ok {
		return ClassSlot{}, false
	}
	return *slot, true
}

// Opened reports whether a slot exists for id.
func (r *ClassroomRegistry) Opened(id models.ClassroomID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slots[id]
	return ok
}

// SetTab replaces the named sub-cache of id wholesale. The value's type must
// match the tab (for example []models.Note for TabNotes). A slot is created
// on the fly when the classroom was never opened: callers are supposed to
// OpenClass first, but write ordering cannot always guarantee that, and
// losing a fetched payload over it would be worse than tolerating the
// out-of-order call.
func (r *ClassroomRegistry) SetTab(id models.ClassroomID, tab Tab, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot := r.open(id)
	switch tab {
	case TabHome:
		home, ok := v.(models.ClassHome)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Home.Set(home)
	case TabStudents:
		students, ok := v.([]models.Student)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Students.Set(students)
	case TabFiles:
		files, ok := v.([]models.File)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Files.Set(files)
	case TabTasks:
		tasks, ok := v.([]models.Task)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Tasks.Set(tasks)
	case TabReceivedTasks:
		subs, ok := v.([]models.TaskSubmissions)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.ReceivedTasks.Set(subs)
	case TabNotes:
		notes, ok := v.([]models.Note)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Notes.Set(notes)
	case TabVideos:
		videos, ok := v.([]models.Video)
		if !ok {
			return typeMismatch(tab, v)
		}
		slot.Videos.Set(videos)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return nil
}

// ResetTab returns one sub-cache to not-loaded. No-op when the classroom was
// never opened.
func (r *ClassroomRegistry) ResetTab(id models.ClassroomID, tab Tab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return
	}
	switch tab {
	case TabHome:
		slot.Home.Reset()
	case TabStudents:
		slot.Students.Reset()
	case TabFiles:
		slot.Files.Reset()
	case TabTasks:
		slot.Tasks.Reset()
	case TabReceivedTasks:
		slot.ReceivedTasks.Reset()
	case TabNotes:
		slot.Notes.Reset()
	case TabVideos:
		slot.Videos.Reset()
	}
}

// ResetAll drops every slot. Used on logout.
func (r *ClassroomRegistry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = make(map[models.ClassroomID]*ClassSlot)
}

func typeMismatch(tab Tab, v any) error {
	return fmt.Errorf("cache: value type %T does not match tab %q", v, tab)
}
