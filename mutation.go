package maqraa

import (
	"context"

	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/models"
	"github.com/maqraa/maqraa.go/pkg/notify"
)

// Mutations issue exactly one network write and, on success, force-refetch
// the owning collection instead of patching the cached copy. The original
// dashboard mixed both styles; refetching uniformly keeps server-computed
// derived fields honest at the cost of one extra read.
//
// When the write succeeds but the follow-up refetch fails, the mutation
// still reports success: the server state changed, the cache is briefly
// stale, and the next fetch resolves it. The refetch failure is logged and
// notified on its own.

// mutate runs the write-then-refresh policy. refresh may be nil for
// operations with no owning collection.
func (s *Session) mutate(ctx context.Context, op string, write func(context.Context) error, refresh func(context.Context) error) error {
	if err := write(ctx); err != nil {
		s.log.Warn().Str("op", op).Err(err).Msg("mutation failed")
		s.notifier.Notify(notify.KindError, op+" failed: "+err.Error())
		return err
	}
	s.notifier.Notify(notify.KindSuccess, op+" succeeded")
	if refresh == nil {
		return nil
	}
	if err := refresh(ctx); err != nil {
		// Write persisted; the stale window closes on the next fetch.
		s.log.Warn().Str("op", op).Err(err).Msg("refresh after mutation failed")
		s.notifier.Notify(notify.KindError, op+": refresh failed: "+err.Error())
	}
	return nil
}

// CreateClassroom registers a classroom and refreshes the classroom list.
func (s *Session) CreateClassroom(ctx context.Context, payload api.NewClassroom) error {
	return s.mutate(ctx, "create classroom",
		func(ctx context.Context) error { return s.api.CreateClassroom(ctx, payload) },
		func(ctx context.Context) error {
			_, err := s.Classrooms(ctx, true)
			return err
		},
	)
}

// UpdateClassroom edits a classroom and refreshes both its home tab and the
// classroom list, since the card on the dashboard shows the same fields.
func (s *Session) UpdateClassroom(ctx context.Context, id models.ClassroomID, payload api.ClassroomUpdate) error {
	return s.mutate(ctx, "update classroom",
		func(ctx context.Context) error { return s.api.UpdateClassroom(ctx, id, payload) },
		func(ctx context.Context) error {
			if _, err := s.ClassHome(ctx, id, true); err != nil {
				return err
			}
			_, err := s.Classrooms(ctx, true)
			return err
		},
	)
}

// RemoveClassStudent unenrolls a student and refreshes the students tab.
func (s *Session) RemoveClassStudent(ctx context.Context, id models.ClassroomID, sid models.StudentID) error {
	return s.mutate(ctx, "remove student",
		func(ctx context.Context) error { return s.api.RemoveClassStudent(ctx, id, sid) },
		func(ctx context.Context) error {
			_, err := s.ClassStudents(ctx, id, true)
			return err
		},
	)
}

// AddClassFile attaches a document and refreshes the files tab.
func (s *Session) AddClassFile(ctx context.Context, id models.ClassroomID, payload api.NewFile) error {
	return s.mutate(ctx, "add file",
		func(ctx context.Context) error { return s.api.AddClassFile(ctx, id, payload) },
		func(ctx context.Context) error {
			_, err := s.ClassFiles(ctx, id, true)
			return err
		},
	)
}

// UpdateClassFile edits a document and refreshes the files tab.
func (s *Session) UpdateClassFile(ctx context.Context, id models.ClassroomID, fid models.FileID, payload api.NewFile) error {
	return s.mutate(ctx, "update file",
		func(ctx context.Context) error { return s.api.UpdateClassFile(ctx, id, fid, payload) },
		func(ctx context.Context) error {
			_, err := s.ClassFiles(ctx, id, true)
			return err
		},
	)
}

// DeleteClassFile removes a document and refreshes the files tab.
func (s *Session) DeleteClassFile(ctx context.Context, id models.ClassroomID, fid models.FileID) error {
	return s.mutate(ctx, "delete file",
		func(ctx context.Context) error { return s.api.DeleteClassFile(ctx, id, fid) },
		func(ctx context.Context) error {
			_, err := s.ClassFiles(ctx, id, true)
			return err
		},
	)
}

// AddClassNote posts an announcement and refreshes the notes tab.
func (s *Session) AddClassNote(ctx context.Context, id models.ClassroomID, msg string) error {
	return s.mutate(ctx, "add note",
		func(ctx context.Context) error { return s.api.AddClassNote(ctx, id, msg) },
		func(ctx context.Context) error {
			_, err := s.ClassNotes(ctx, id, true)
			return err
		},
	)
}

// UpdateClassNote edits an announcement and refreshes the notes tab.
func (s *Session) UpdateClassNote(ctx context.Context, id models.ClassroomID, nid models.NoteID, msg string) error {
	return s.mutate(ctx, "update note",
		func(ctx context.Context) error { return s.api.UpdateClassNote(ctx, id, nid, msg) },
		func(ctx context.Context) error {
			_, err := s.ClassNotes(ctx, id, true)
			return err
		},
	)
}

// DeleteClassNote removes an announcement and refreshes the notes tab.
func (s *Session) DeleteClassNote(ctx context.Context, id models.ClassroomID, nid models.NoteID) error {
	return s.mutate(ctx, "delete note",
		func(ctx context.Context) error { return s.api.DeleteClassNote(ctx, id, nid) },
		func(ctx context.Context) error {
			_, err := s.ClassNotes(ctx, id, true)
			return err
		},
	)
}

// AddClassTask assigns a task and refreshes the tasks tab.
func (s *Session) AddClassTask(ctx context.Context, id models.ClassroomID, payload api.NewTask) error {
	return s.mutate(ctx, "add task",
		func(ctx context.Context) error { return s.api.AddClassTask(ctx, id, payload) },
		func(ctx context.Context) error {
			_, err := s.ClassTasks(ctx, id, true)
			return err
		},
	)
}

// UpdateClassTask edits a task and refreshes the tasks tab.
func (s *Session) UpdateClassTask(ctx context.Context, id models.ClassroomID, tid models.TaskID, payload api.NewTask) error {
	return s.mutate(ctx, "update task",
		func(ctx context.Context) error { return s.api.UpdateClassTask(ctx, id, tid, payload) },
		func(ctx context.Context) error {
			_, err := s.ClassTasks(ctx, id, true)
			return err
		},
	)
}

// DeleteClassTask removes a task and refreshes the tasks tab.
func (s *Session) DeleteClassTask(ctx context.Context, id models.ClassroomID, tid models.TaskID) error {
	return s.mutate(ctx, "delete task",
		func(ctx context.Context) error { return s.api.DeleteClassTask(ctx, id, tid) },
		func(ctx context.Context) error {
			_, err := s.ClassTasks(ctx, id, true)
			return err
		},
	)
}

// DeleteClassVideo removes a recording and refreshes the videos tab.
func (s *Session) DeleteClassVideo(ctx context.Context, id models.ClassroomID, vid models.VideoID) error {
	return s.mutate(ctx, "delete video",
		func(ctx context.Context) error { return s.api.DeleteClassVideo(ctx, id, vid) },
		func(ctx context.Context) error {
			_, err := s.ClassVideos(ctx, id, true)
			return err
		},
	)
}

// SyncClassVideos force-refetches a classroom's videos tab. The video-host
// event feed calls this when an upload or deletion completed out of band;
// the cache only reacts to the outcome, never the upload protocol.
func (s *Session) SyncClassVideos(ctx context.Context, id models.ClassroomID) error {
	_, err := s.ClassVideos(ctx, id, true)
	return err
}

// CreatePlan adds a subscription plan and refreshes the plan list.
func (s *Session) CreatePlan(ctx context.Context, payload api.NewPlan) (models.Plan, error) {
	var created models.Plan
	err := s.mutate(ctx, "create plan",
		func(ctx context.Context) error {
			plan, err := s.api.CreatePlan(ctx, payload)
			if err != nil {
				return err
			}
			created = plan
			return nil
		},
		func(ctx context.Context) error {
			_, err := s.Plans(ctx, true)
			return err
		},
	)
	if err != nil {
		return models.Plan{}, err
	}
	return created, nil
}

// UpdatePlan edits a plan and refreshes the plan list.
func (s *Session) UpdatePlan(ctx context.Context, id models.PlanID, payload api.NewPlan) error {
	return s.mutate(ctx, "update plan",
		func(ctx context.Context) error { return s.api.UpdatePlan(ctx, id, payload) },
		func(ctx context.Context) error {
			_, err := s.Plans(ctx, true)
			return err
		},
	)
}

// DeletePlan removes a plan and refreshes the plan list.
func (s *Session) DeletePlan(ctx context.Context, id models.PlanID) error {
	return s.mutate(ctx, "delete plan",
		func(ctx context.Context) error { return s.api.DeletePlan(ctx, id) },
		func(ctx context.Context) error {
			_, err := s.Plans(ctx, true)
			return err
		},
	)
}

// ResendPaymentLink re-sends a pending signup's checkout link. No owning
// collection to refresh; the pending list is untouched.
func (s *Session) ResendPaymentLink(ctx context.Context, email, url, remaining string) error {
	return s.mutate(ctx, "resend payment link",
		func(ctx context.Context) error { return s.api.ResendPaymentLink(ctx, email, url, remaining) },
		nil,
	)
}
