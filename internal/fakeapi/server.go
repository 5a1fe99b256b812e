// Package fakeapi provides a fake Maqraa admin API server for tests. It
// serves the same routes and response envelopes as the real server from
// in-memory fixtures, counts hits per route so tests can assert on cache
// behavior, and supports per-route failure injection.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/maqraa/maqraa.go/pkg/models"
)

// Failure makes a route answer with an HTTP error.
type Failure struct {
	Status  int
	Message string
}

// Server is the fake API. Fixture fields may be mutated between requests;
// the server serializes access internally.
type Server struct {
	mu sync.Mutex

	// Fixtures served by the read endpoints.
	Classrooms   []models.Classroom
	Students     []models.Student
	Plans        []models.Plan
	Transactions []models.Transaction
	Pending      []models.PendingUser
	Reports      []models.Report
	HomeReport   models.HomeReport
	Profile      models.Profile

	ClassHomes       map[models.ClassroomID]models.ClassHome
	ClassStudents    map[models.ClassroomID][]models.Student
	ClassFiles       map[models.ClassroomID][]models.File
	ClassTasks       map[models.ClassroomID][]models.Task
	ClassSubmissions map[models.ClassroomID][]models.TaskSubmissions
	ClassNotes       map[models.ClassroomID][]models.Note
	ClassVideos      map[models.ClassroomID][]models.Video

	// Token, when set, is the only accepted bearer token.
	Token string

	hits     map[string]int
	failures map[string]Failure
	nextID   int

	srv *httptest.Server
}

// New starts the fake server.
func New() *Server {
	s := &Server{
		ClassHomes:       make(map[models.ClassroomID]models.ClassHome),
		ClassStudents:    make(map[models.ClassroomID][]models.Student),
		ClassFiles:       make(map[models.ClassroomID][]models.File),
		ClassTasks:       make(map[models.ClassroomID][]models.Task),
		ClassSubmissions: make(map[models.ClassroomID][]models.TaskSubmissions),
		ClassNotes:       make(map[models.ClassroomID][]models.Note),
		ClassVideos:      make(map[models.ClassroomID][]models.Video),
		hits:             make(map[string]int),
		failures:         make(map[string]Failure),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL is the server's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

func routeKey(method, path string) string { return method + " " + path }

// Hits reports how many requests the exact method+path received.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[routeKey(method, path)]
}

// TotalHits reports every request received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// FailWith makes method+path answer with the given failure until cleared.
func (s *Server) FailWith(method, path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, path)] = f
}

// ClearFailures removes all injected failures.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]Failure)
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%04d", prefix, s.nextID)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := routeKey(r.Method, r.URL.Path)
	s.hits[key]++

	if f, ok := s.failures[key]; ok {
		w.WriteHeader(f.Status)
		writeJSON(w, map[string]string{"message": f.Message})
		return
	}

	if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"message": "invalid token"})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.URL.Path == "/admin/classes" && r.Method == http.MethodGet:
		writeJSON(w, s.Classrooms)
	case r.URL.Path == "/admin/classe/add" && r.Method == http.MethodPost:
		var payload struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		s.Classrooms = append(s.Classrooms, models.Classroom{
			ID:          models.ClassroomID(s.newID("class")),
			Name:        payload.Name,
			Description: payload.Description,
		})
		writeJSON(w, envelope{Success: true})
	case r.URL.Path == "/admin/students" && r.Method == http.MethodGet:
		writeJSON(w, s.Students)
	case r.URL.Path == "/plans" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"plans": s.Plans})
	case r.URL.Path == "/plans/add" && r.Method == http.MethodPost:
		var payload models.Plan
		_ = json.NewDecoder(r.Body).Decode(&payload)
		payload.ID = models.PlanID(s.newID("plan"))
		s.Plans = append(s.Plans, payload)
		writeJSON(w, map[string]any{"plan": payload})
	case len(parts) == 2 && parts[0] == "plans":
		s.handlePlan(w, r, models.PlanID(parts[1]))
	case r.URL.Path == "/admin/transactions" && r.Method == http.MethodGet:
		writeJSON(w, envelope{Success: true, Data: s.Transactions})
	case r.URL.Path == "/admin/pendingUsers" && r.Method == http.MethodGet:
		writeJSON(w, envelope{Success: true, Data: s.Pending})
	case r.URL.Path == "/admin/resend-payment-link" && r.Method == http.MethodPost:
		writeJSON(w, envelope{Success: true})
	case r.URL.Path == "/admin/reportes" && r.Method == http.MethodGet:
		writeJSON(w, s.Reports)
	case r.URL.Path == "/admin/homeReport" && r.Method == http.MethodGet:
		writeJSON(w, s.HomeReport)
	case r.URL.Path == "/admin/me" && r.Method == http.MethodGet:
		writeJSON(w, s.Profile)
	case len(parts) >= 2 && parts[0] == "admin" && parts[1] == "classe" && len(parts) >= 3:
		s.handleClasse(w, r, parts[2:])
	case len(parts) >= 2 && parts[0] == "admin" && parts[1] == "class" && len(parts) >= 3:
		s.handleClass(w, r, parts[2:])
	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "not found"})
	}
}

// handleClasse serves /admin/classe/{id}[...] routes.
func (s *Server) handleClasse(w http.ResponseWriter, r *http.Request, parts []string) {
	id := models.ClassroomID(parts[0])
	rest := parts[1:]

	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		writeJSON(w, s.ClassHomes[id])
	case len(rest) == 0 && r.Method == http.MethodPut:
		var payload struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Status      string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		home := s.ClassHomes[id]
		home.ID = id
		if payload.Name != "" {
			home.Name = payload.Name
		}
		if payload.Description != "" {
			home.Description = payload.Description
		}
		if payload.Status != "" {
			home.Status = payload.Status
		}
		s.ClassHomes[id] = home
		writeJSON(w, envelope{Success: true})
	case len(rest) == 1 && rest[0] == "student" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"success": true, "students": s.ClassStudents[id]})
	case len(rest) == 2 && rest[0] == "student" && r.Method == http.MethodDelete:
		sid := models.StudentID(rest[1])
		kept := s.ClassStudents[id][:0:0]
		for _, st := range s.ClassStudents[id] {
			if st.ID != sid {
				kept = append(kept, st)
			}
		}
		s.ClassStudents[id] = kept
		writeJSON(w, envelope{Success: true})
	case len(rest) == 1 && rest[0] == "Allfiles" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"pdfs": s.ClassFiles[id]})
	case len(rest) == 1 && rest[0] == "file" && r.Method == http.MethodPost:
		var payload models.File
		_ = json.NewDecoder(r.Body).Decode(&payload)
		payload.ID = models.FileID(s.newID("file"))
		s.ClassFiles[id] = append(s.ClassFiles[id], payload)
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "file" && r.Method == http.MethodDelete:
		fid := models.FileID(rest[1])
		kept := s.ClassFiles[id][:0:0]
		for _, f := range s.ClassFiles[id] {
			if f.ID != fid {
				kept = append(kept, f)
			}
		}
		s.ClassFiles[id] = kept
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "file" && r.Method == http.MethodPut:
		writeJSON(w, envelope{Success: true})
	case len(rest) == 1 && rest[0] == "note" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"notes": s.ClassNotes[id]})
	case len(rest) == 1 && rest[0] == "note" && r.Method == http.MethodPost:
		var payload struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		s.ClassNotes[id] = append(s.ClassNotes[id], models.Note{
			ID:  models.NoteID(s.newID("note")),
			Msg: payload.Msg,
		})
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "note" && r.Method == http.MethodPut:
		var payload struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		nid := models.NoteID(rest[1])
		for i, n := range s.ClassNotes[id] {
			if n.ID == nid {
				s.ClassNotes[id][i].Msg = payload.Msg
			}
		}
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "note" && r.Method == http.MethodDelete:
		nid := models.NoteID(rest[1])
		kept := s.ClassNotes[id][:0:0]
		for _, n := range s.ClassNotes[id] {
			if n.ID != nid {
				kept = append(kept, n)
			}
		}
		s.ClassNotes[id] = kept
		writeJSON(w, envelope{Success: true})
	case len(rest) == 1 && rest[0] == "video" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"videos": s.ClassVideos[id]})
	case len(rest) == 2 && rest[0] == "video" && r.Method == http.MethodDelete:
		vid := models.VideoID(rest[1])
		kept := s.ClassVideos[id][:0:0]
		for _, v := range s.ClassVideos[id] {
			if v.ID != vid {
				kept = append(kept, v)
			}
		}
		s.ClassVideos[id] = kept
		writeJSON(w, envelope{Success: true})
	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "not found"})
	}
}

// handleClass serves /admin/class/{id}/task... routes.
func (s *Server) handleClass(w http.ResponseWriter, r *http.Request, parts []string) {
	id := models.ClassroomID(parts[0])
	rest := parts[1:]

	switch {
	case len(rest) == 1 && rest[0] == "tasks" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"tasks": s.ClassTasks[id]})
	case len(rest) == 2 && rest[0] == "tasks" && rest[1] == "submissions" && r.Method == http.MethodGet:
		writeJSON(w, map[string]any{"tasks": s.ClassSubmissions[id]})
	case len(rest) == 1 && rest[0] == "task" && r.Method == http.MethodPost:
		var payload models.Task
		_ = json.NewDecoder(r.Body).Decode(&payload)
		payload.ID = models.TaskID(s.newID("task"))
		s.ClassTasks[id] = append(s.ClassTasks[id], payload)
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "task" && r.Method == http.MethodPut:
		writeJSON(w, envelope{Success: true})
	case len(rest) == 2 && rest[0] == "task" && r.Method == http.MethodDelete:
		tid := models.TaskID(rest[1])
		kept := s.ClassTasks[id][:0:0]
		for _, t := range s.ClassTasks[id] {
			if t.ID != tid {
				kept = append(kept, t)
			}
		}
		s.ClassTasks[id] = kept
		writeJSON(w, envelope{Success: true})
	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "not found"})
	}
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request, id models.PlanID) {
	switch r.Method {
	case http.MethodPut:
		var payload models.Plan
		_ = json.NewDecoder(r.Body).Decode(&payload)
		for i, p := range s.Plans {
			if p.ID == id {
				payload.ID = id
				s.Plans[i] = payload
			}
		}
		writeJSON(w, envelope{Success: true})
	case http.MethodDelete:
		kept := s.Plans[:0:0]
		for _, p := range s.Plans {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.Plans = kept
		writeJSON(w, envelope{Success: true})
	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "not found"})
	}
}
