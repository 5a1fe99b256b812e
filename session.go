package maqraa

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/cache"
	"github.com/maqraa/maqraa.go/pkg/models"
	"github.com/maqraa/maqraa.go/pkg/notify"
)

// Session is one administrator's dashboard session: the entity store, the
// per-classroom registry, and the fetch/mutation coordination over the
// admin API client. One Session is created after login and lives until
// Logout. Safe for concurrent use.
//
// Every read method takes a force flag: false serves loaded cache entries
// without a network call, true always refetches. Mutations write through
// the API and then force-refetch the owning collection, so cached derived
// fields (student counts and the like) stay server-computed.
type Session struct {
	api      *api.Client
	entities *cache.EntityStore
	classes  *cache.ClassroomRegistry
	notifier notify.Notifier
	log      zerolog.Logger

	classroomsFlight   fetchGroup[[]models.Classroom]
	studentsFlight     fetchGroup[[]models.Student]
	plansFlight        fetchGroup[[]models.Plan]
	transactionsFlight fetchGroup[[]models.Transaction]
	pendingFlight      fetchGroup[[]models.PendingUser]
	reportsFlight      fetchGroup[[]models.Report]
	homeReportFlight   fetchGroup[models.HomeReport]
	profileFlight      fetchGroup[models.Profile]

	classHomeFlight     fetchGroup[models.ClassHome]
	classStudentsFlight fetchGroup[[]models.Student]
	classFilesFlight    fetchGroup[[]models.File]
	classTasksFlight    fetchGroup[[]models.Task]
	classSubsFlight     fetchGroup[[]models.TaskSubmissions]
	classNotesFlight    fetchGroup[[]models.Note]
	classVideosFlight   fetchGroup[[]models.Video]
}

// NewSession creates a session over client with an empty store. Notifier
// and logger default to no-ops.
func NewSession(client *api.Client) *Session {
	return &Session{
		api:      client,
		entities: cache.NewEntityStore(),
		classes:  cache.NewClassroomRegistry(),
		notifier: notify.Nop{},
		log:      zerolog.Nop(),
	}
}

// SetNotifier routes fetch/mutation outcome messages to n.
func (s *Session) SetNotifier(n notify.Notifier) { s.notifier = n }

// SetLogger attaches a logger.
func (s *Session) SetLogger(log zerolog.Logger) { s.log = log }

// Store exposes the entity store for read-only inspection.
func (s *Session) Store() *cache.EntityStore { return s.entities }

// Registry exposes the classroom registry for read-only inspection.
func (s *Session) Registry() *cache.ClassroomRegistry { return s.classes }

// Logout tears the session's cache down: every entity back to not-loaded,
// every classroom slot dropped.
func (s *Session) Logout() {
	s.entities.ResetAll()
	s.classes.ResetAll()
	s.log.Info().Msg("session reset")
}

func (s *Session) fetchOK(key string) {
	s.log.Debug().Str("key", key).Msg("fetch committed")
}

func (s *Session) fetchFailed(key string, err error) {
	s.log.Warn().Str("key", key).Err(err).Msg("fetch failed")
	s.notifier.Notify(notify.KindError, "failed to load "+key)
}

// Entity reads

// Classrooms returns the classroom list, fetching unless cached or forced.
func (s *Session) Classrooms(ctx context.Context, force bool) ([]models.Classroom, error) {
	key := string(cache.KeyClassrooms)
	v, err := s.classroomsFlight.do(ctx, key, force,
		s.entities.Classrooms,
		s.api.Classrooms,
		s.entities.SetClassrooms,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// Students returns the global student list.
func (s *Session) Students(ctx context.Context, force bool) ([]models.Student, error) {
	key := string(cache.KeyStudents)
	v, err := s.studentsFlight.do(ctx, key, force,
		s.entities.Students,
		s.api.Students,
		s.entities.SetStudents,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// Plans returns the subscription plans.
func (s *Session) Plans(ctx context.Context, force bool) ([]models.Plan, error) {
	key := string(cache.KeyPlans)
	v, err := s.plansFlight.do(ctx, key, force,
		s.entities.Plans,
		s.api.Plans,
		s.entities.SetPlans,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// Transactions returns the payment transactions.
func (s *Session) Transactions(ctx context.Context, force bool) ([]models.Transaction, error) {
	key := string(cache.KeyTransactions)
	v, err := s.transactionsFlight.do(ctx, key, force,
		s.entities.Transactions,
		s.api.Transactions,
		s.entities.SetTransactions,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// PendingUsers returns the signups awaiting payment.
func (s *Session) PendingUsers(ctx context.Context, force bool) ([]models.PendingUser, error) {
	key := string(cache.KeyPendingUsers)
	v, err := s.pendingFlight.do(ctx, key, force,
		s.entities.PendingUsers,
		s.api.PendingUsers,
		s.entities.SetPendingUsers,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// Reports returns the statistics cards.
func (s *Session) Reports(ctx context.Context, force bool) ([]models.Report, error) {
	key := string(cache.KeyReports)
	v, err := s.reportsFlight.do(ctx, key, force,
		s.entities.Reports,
		s.api.Reports,
		s.entities.SetReports,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// HomeReport returns the landing-page aggregate.
func (s *Session) HomeReport(ctx context.Context, force bool) (models.HomeReport, error) {
	key := string(cache.KeyHomeReport)
	v, err := s.homeReportFlight.do(ctx, key, force,
		s.entities.HomeReport,
		s.api.HomeReport,
		s.entities.SetHomeReport,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return models.HomeReport{}, err
	}
	s.fetchOK(key)
	return v, nil
}

// Profile returns the administrator's own account record.
func (s *Session) Profile(ctx context.Context, force bool) (models.Profile, error) {
	key := string(cache.KeyProfile)
	v, err := s.profileFlight.do(ctx, key, force,
		s.entities.Profile,
		s.api.Profile,
		s.entities.SetProfile,
	)
	if err != nil {
		s.fetchFailed(key, err)
		return models.Profile{}, err
	}
	s.fetchOK(key)
	return v, nil
}

// Classroom tab reads

// OpenClass makes sure a registry slot exists for id. Idempotent; call it
// on every mount.
func (s *Session) OpenClass(id models.ClassroomID) {
	s.classes.OpenClass(id)
}

// ClassData returns the current slot snapshot for id, false if never opened.
func (s *Session) ClassData(id models.ClassroomID) (cache.ClassSlot, bool) {
	return s.classes.ClassData(id)
}

func tabKey(id models.ClassroomID, tab cache.Tab) string {
	return string(id) + "/" + string(tab)
}

// ClassHome returns a classroom's home-tab summary.
func (s *Session) ClassHome(ctx context.Context, id models.ClassroomID, force bool) (models.ClassHome, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabHome)
	v, err := s.classHomeFlight.do(ctx, key, force,
		func() (models.ClassHome, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return models.ClassHome{}, false
			}
			return slot.Home.Get()
		},
		func(ctx context.Context) (models.ClassHome, error) {
			return s.api.ClassHome(ctx, id)
		},
		func(v models.ClassHome) {
			_ = s.classes.SetTab(id, cache.TabHome, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return models.ClassHome{}, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassStudents returns a classroom's enrolled students.
func (s *Session) ClassStudents(ctx context.Context, id models.ClassroomID, force bool) ([]models.Student, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabStudents)
	v, err := s.classStudentsFlight.do(ctx, key, force,
		func() ([]models.Student, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.Students.Get()
		},
		func(ctx context.Context) ([]models.Student, error) {
			return s.api.ClassStudents(ctx, id)
		},
		func(v []models.Student) {
			_ = s.classes.SetTab(id, cache.TabStudents, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassFiles returns a classroom's documents.
func (s *Session) ClassFiles(ctx context.Context, id models.ClassroomID, force bool) ([]models.File, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabFiles)
	v, err := s.classFilesFlight.do(ctx, key, force,
		func() ([]models.File, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.Files.Get()
		},
		func(ctx context.Context) ([]models.File, error) {
			return s.api.ClassFiles(ctx, id)
		},
		func(v []models.File) {
			_ = s.classes.SetTab(id, cache.TabFiles, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassTasks returns a classroom's assignments.
func (s *Session) ClassTasks(ctx context.Context, id models.ClassroomID, force bool) ([]models.Task, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabTasks)
	v, err := s.classTasksFlight.do(ctx, key, force,
		func() ([]models.Task, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.Tasks.Get()
		},
		func(ctx context.Context) ([]models.Task, error) {
			return s.api.ClassTasks(ctx, id)
		},
		func(v []models.Task) {
			_ = s.classes.SetTab(id, cache.TabTasks, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassSubmissions returns the submissions received per task.
func (s *Session) ClassSubmissions(ctx context.Context, id models.ClassroomID, force bool) ([]models.TaskSubmissions, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabReceivedTasks)
	v, err := s.classSubsFlight.do(ctx, key, force,
		func() ([]models.TaskSubmissions, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.ReceivedTasks.Get()
		},
		func(ctx context.Context) ([]models.TaskSubmissions, error) {
			return s.api.ClassSubmissions(ctx, id)
		},
		func(v []models.TaskSubmissions) {
			_ = s.classes.SetTab(id, cache.TabReceivedTasks, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassNotes returns a classroom's announcements.
func (s *Session) ClassNotes(ctx context.Context, id models.ClassroomID, force bool) ([]models.Note, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabNotes)
	v, err := s.classNotesFlight.do(ctx, key, force,
		func() ([]models.Note, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.Notes.Get()
		},
		func(ctx context.Context) ([]models.Note, error) {
			return s.api.ClassNotes(ctx, id)
		},
		func(v []models.Note) {
			_ = s.classes.SetTab(id, cache.TabNotes, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// ClassVideos returns a classroom's lecture recordings.
func (s *Session) ClassVideos(ctx context.Context, id models.ClassroomID, force bool) ([]models.Video, error) {
	s.classes.OpenClass(id)
	key := tabKey(id, cache.TabVideos)
	v, err := s.classVideosFlight.do(ctx, key, force,
		func() ([]models.Video, bool) {
			slot, ok := s.classes.ClassData(id)
			if !ok {
				return nil, false
			}
			return slot.Videos.Get()
		},
		func(ctx context.Context) ([]models.Video, error) {
			return s.api.ClassVideos(ctx, id)
		},
		func(v []models.Video) {
			_ = s.classes.SetTab(id, cache.TabVideos, v)
		},
	)
	if err != nil {
		s.fetchFailed(key, err)
		return nil, err
	}
	s.fetchOK(key)
	return v, nil
}

// Loading reports whether a fetch for key is in flight. Entity keys are the
// cache.Key names; tab keys are "<classroomID>/<tab>".
func (s *Session) Loading(key string) bool {
	return s.classroomsFlight.inflight(key) ||
		s.studentsFlight.inflight(key) ||
		s.plansFlight.inflight(key) ||
		s.transactionsFlight.inflight(key) ||
		s.pendingFlight.inflight(key) ||
		s.reportsFlight.inflight(key) ||
		s.homeReportFlight.inflight(key) ||
		s.profileFlight.inflight(key) ||
		s.classHomeFlight.inflight(key) ||
		s.classStudentsFlight.inflight(key) ||
		s.classFilesFlight.inflight(key) ||
		s.classTasksFlight.inflight(key) ||
		s.classSubsFlight.inflight(key) ||
		s.classNotesFlight.inflight(key) ||
		s.classVideosFlight.inflight(key)
}

// TabLoading reports whether a fetch for the given classroom tab is in
// flight.
func (s *Session) TabLoading(id models.ClassroomID, tab cache.Tab) bool {
	return s.Loading(tabKey(id, tab))
}
