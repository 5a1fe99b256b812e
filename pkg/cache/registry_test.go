package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maqraa/maqraa.go/pkg/models"
)

func TestOpenClassCreatesEmptySlot(t *testing.T) {
	r := NewClassroomRegistry()
	r.OpenClass("c1")

	slot, ok := r.ClassData("c1")
	require.True(t, ok)
	assert.Equal(t, models.ClassroomID("c1"), slot.ID)
	for _, tab := range Tabs {
		assert.False(t, slot.TabLoaded(tab), "tab %s", tab)
	}
}

func TestOpenClassIsIdempotent(t *testing.T) {
	r := NewClassroomRegistry()
	r.OpenClass("c1")
	require.NoError(t, r.SetTab("c1", TabNotes, []models.Note{{ID: "n1", Msg: "welcome"}}))

	// Revisiting the classroom must not reset loaded tabs.
	r.OpenClass("c1")

	slot, ok := r.ClassData("c1")
	require.True(t, ok)
	notes, loaded := slot.Notes.Get()
	require.True(t, loaded)
	assert.Equal(t, "welcome", notes[0].Msg)
}

func TestClassDataUnopenedClassroom(t *testing.T) {
	r := NewClassroomRegistry()
	_, ok := r.ClassData("missing")
	assert.False(t, ok)
	assert.False(t, r.Opened("missing"))
}

func TestSetTabEachTab(t *testing.T) {
	r := NewClassroomRegistry()
	r.OpenClass("c1")

	values := map[Tab]any{
		TabHome:          models.ClassHome{ID: "c1", Name: "Tajweed"},
		TabStudents:      []models.Student{{ID: "s1"}},
		TabFiles:         []models.File{{ID: "f1"}},
		TabTasks:         []models.Task{{ID: "t1"}},
		TabReceivedTasks: []models.TaskSubmissions{{Task: models.Task{ID: "t1"}}},
		TabNotes:         []models.Note{{ID: "n1"}},
		TabVideos:        []models.Video{{ID: "v1"}},
	}
	for tab, v := range values {
		require.NoError(t, r.SetTab("c1", tab, v), "tab %s", tab)
	}

	slot, ok := r.ClassData("c1")
	require.True(t, ok)
	for _, tab := range Tabs {
		assert.True(t, slot.TabLoaded(tab), "tab %s", tab)
	}
}

func TestSetTabTypeMismatch(t *testing.T) {
	r := NewClassroomRegistry()
	r.OpenClass("c1")

	err := r.SetTab("c1", TabNotes, []models.Task{{ID: "t1"}})
	require.Error(t, err)

	slot, _ := r.ClassData("c1")
	assert.False(t, slot.TabLoaded(TabNotes))
}

func TestSetTabUnknownTab(t *testing.T) {
	r := NewClassroomRegistry()
	err := r.SetTab("c1", Tab("bogus"), nil)
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestSetTabCreatesSlotWhenUnopened(t *testing.T) {
	r := NewClassroomRegistry()
	require.NoError(t, r.SetTab("c9", TabFiles, []models.File{{ID: "f1"}}))

	slot, ok := r.ClassData("c9")
	require.True(t, ok)
	assert.True(t, slot.TabLoaded(TabFiles))
}

func TestTabsAreIndependentAcrossClassrooms(t *testing.T) {
	r := NewClassroomRegistry()
	require.NoError(t, r.SetTab("c1", TabNotes, []models.Note{{ID: "n1", Msg: "for c1"}}))
	require.NoError(t, r.SetTab("c2", TabNotes, []models.Note{{ID: "n2", Msg: "for c2"}}))

	slot1, _ := r.ClassData("c1")
	slot2, _ := r.ClassData("c2")
	notes1, _ := slot1.Notes.Get()
	notes2, _ := slot2.Notes.Get()
	assert.Equal(t, "for c1", notes1[0].Msg)
	assert.Equal(t, "for c2", notes2[0].Msg)
}

func TestResetTab(t *testing.T) {
	r := NewClassroomRegistry()
	require.NoError(t, r.SetTab("c1", TabVideos, []models.Video{{ID: "v1"}}))
	require.NoError(t, r.SetTab("c1", TabNotes, []models.Note{{ID: "n1"}}))

	r.ResetTab("c1", TabVideos)

	slot, _ := r.ClassData("c1")
	assert.False(t, slot.TabLoaded(TabVideos))
	assert.True(t, slot.TabLoaded(TabNotes))

	// Unopened classroom is a no-op.
	r.ResetTab("missing", TabVideos)
}

func TestRegistryResetAll(t *testing.T) {
	r := NewClassroomRegistry()
	r.OpenClass("c1")
	r.OpenClass("c2")

	r.ResetAll()

	assert.False(t, r.Opened("c1"))
	assert.False(t, r.Opened("c2"))
}

func TestClassDataIsSnapshot(t *testing.T) {
	r := NewClassroomRegistry()
	require.NoError(t, r.SetTab("c1", TabNotes, []models.Note{{ID: "n1"}}))

	snapshot, _ := r.ClassData("c1")
	require.NoError(t, r.SetTab("c1", TabNotes, []models.Note{{ID: "n2"}}))

	notes, _ := snapshot.Notes.Get()
	assert.Equal(t, models.NoteID("n1"), notes[0].ID, "snapshot must not see later writes")
}
