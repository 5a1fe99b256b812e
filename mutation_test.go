package maqraa

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maqraa/maqraa.go/internal/fakeapi"
	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/cache"
	"github.com/maqraa/maqraa.go/pkg/models"
	"github.com/maqraa/maqraa.go/pkg/notify"
)

func TestCreateClassroomRefetchesList(t *testing.T) {
	s, fake := newTestSession(t)

	err := s.CreateClassroom(context.Background(), api.NewClassroom{Name: "Tajweed"})
	require.NoError(t, err)

	// The write triggered exactly one refetch of the owning collection, and
	// the cache holds the server's copy with its generated id.
	assert.Equal(t, 1, fake.Hits(http.MethodPost, "/admin/classe/add"))
	assert.Equal(t, 1, fake.Hits(http.MethodGet, "/admin/classes"))

	cached, ok := s.Store().Classrooms()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "Tajweed", cached[0].Name)
	assert.NotEmpty(t, cached[0].ID)
}

func TestWriteFailureSkipsRefetch(t *testing.T) {
	s, fake := newTestSession(t)
	sink := notify.NewChannel(4)
	s.SetNotifier(sink)
	fake.FailWith(http.MethodPost, "/admin/classe/add", fakeapi.Failure{Status: 500, Message: "db down"})

	err := s.CreateClassroom(context.Background(), api.NewClassroom{Name: "Tajweed"})
	require.Error(t, err)

	assert.Zero(t, fake.Hits(http.MethodGet, "/admin/classes"), "failed write must not refetch")
	assert.False(t, s.Store().Loaded(cache.KeyClassrooms))

	n := <-sink.C()
	assert.Equal(t, notify.KindError, n.Kind)
}

func TestRefetchFailureDoesNotFailTheWrite(t *testing.T) {
	s, fake := newTestSession(t)
	sink := notify.NewChannel(4)
	s.SetNotifier(sink)
	fake.FailWith(http.MethodGet, "/admin/classes", fakeapi.Failure{Status: 500, Message: "db down"})

	err := s.CreateClassroom(context.Background(), api.NewClassroom{Name: "Tajweed"})
	require.NoError(t, err, "the write persisted; a failed refetch only leaves the cache stale")

	assert.Equal(t, 1, fake.Hits(http.MethodPost, "/admin/classe/add"))
	assert.False(t, s.Store().Loaded(cache.KeyClassrooms))

	// Success for the write, then an error for the refetch.
	n := <-sink.C()
	assert.Equal(t, notify.KindSuccess, n.Kind)
	n = <-sink.C()
	assert.Equal(t, notify.KindError, n.Kind)
}

func TestAddClassNoteRefetchesNotesTab(t *testing.T) {
	s, fake := newTestSession(t)
	fake.ClassNotes["c1"] = []models.Note{{ID: "n1", Msg: "old"}}

	_, err := s.ClassNotes(context.Background(), "c1", false)
	require.NoError(t, err)

	require.NoError(t, s.AddClassNote(context.Background(), "c1", "new announcement"))

	slot, ok := s.ClassData("c1")
	require.True(t, ok)
	notes, loaded := slot.Notes.Get()
	require.True(t, loaded)
	require.Len(t, notes, 2)
	assert.Equal(t, "new announcement", notes[1].Msg)
	assert.Equal(t, 2, fake.Hits(http.MethodGet, "/admin/classe/c1/note"))
}

func TestDeleteClassFileRefetchesFilesTab(t *testing.T) {
	s, fake := newTestSession(t)
	fake.ClassFiles["c1"] = []models.File{{ID: "f1"}, {ID: "f2"}}

	require.NoError(t, s.DeleteClassFile(context.Background(), "c1", "f1"))

	slot, ok := s.ClassData("c1")
	require.True(t, ok)
	files, loaded := slot.Files.Get()
	require.True(t, loaded)
	require.Len(t, files, 1)
	assert.Equal(t, models.FileID("f2"), files[0].ID)
}

func TestRemoveClassStudentRefetchesStudentsTab(t *testing.T) {
	s, fake := newTestSession(t)
	fake.ClassStudents["c1"] = []models.Student{{ID: "s1"}, {ID: "s2"}}

	require.NoError(t, s.RemoveClassStudent(context.Background(), "c1", "s2"))

	slot, ok := s.ClassData("c1")
	require.True(t, ok)
	students, loaded := slot.Students.Get()
	require.True(t, loaded)
	require.Len(t, students, 1)
	assert.Equal(t, models.StudentID("s1"), students[0].ID)
}

func TestUpdateClassroomRefreshesHomeAndList(t *testing.T) {
	s, fake := newTestSession(t)
	fake.Classrooms = []models.Classroom{{ID: "c1", Name: "old name"}}
	fake.ClassHomes["c1"] = models.ClassHome{ID: "c1", Name: "old name"}

	err := s.UpdateClassroom(context.Background(), "c1", api.ClassroomUpdate{Name: "new name"})
	require.NoError(t, err)

	slot, ok := s.ClassData("c1")
	require.True(t, ok)
	home, loaded := slot.Home.Get()
	require.True(t, loaded)
	assert.Equal(t, "new name", home.Name)
	assert.True(t, s.Store().Loaded(cache.KeyClassrooms))
}

func TestCreatePlanReturnsServerRecord(t *testing.T) {
	s, fake := newTestSession(t)

	plan, err := s.CreatePlan(context.Background(), api.NewPlan{Title: "Monthly", Price: 9.99})
	require.NoError(t, err)

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, "Monthly", plan.Title)

	cached, ok := s.Store().Plans()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, plan.ID, cached[0].ID)
	assert.Equal(t, 1, fake.Hits(http.MethodGet, "/plans"))
}

func TestDeletePlanRefetchesPlans(t *testing.T) {
	s, fake := newTestSession(t)
	fake.Plans = []models.Plan{{ID: "plan-1"}, {ID: "plan-2"}}

	require.NoError(t, s.DeletePlan(context.Background(), "plan-1"))

	cached, ok := s.Store().Plans()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, models.PlanID("plan-2"), cached[0].ID)
}

func TestResendPaymentLinkHasNoRefetch(t *testing.T) {
	s, fake := newTestSession(t)

	err := s.ResendPaymentLink(context.Background(), "a@b.c", "https://pay.example.com", "1h 2m 3s")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.Hits(http.MethodPost, "/admin/resend-payment-link"))
	assert.Zero(t, fake.Hits(http.MethodGet, "/admin/pendingUsers"), "resend owns no collection")
}
