// Package api is the HTTP client for the Maqraa admin REST API.
//
// The client mirrors the server's endpoint structure with one typed method
// per operation. Request bodies are marshaled to JSON, responses unmarshaled
// into the shared [github.com/maqraa/maqraa.go/pkg/models] types, and the
// bearer token is read from a token source on every request.
//
// The server is not uniform about response envelopes: some endpoints return
// the collection bare, others wrap it ({"pdfs": [...]}, {"notes": [...]}),
// and a few use a {"success": bool, "data": ..., "message": "..."} envelope
// where success can be false on a 200. The per-endpoint methods normalize
// all of that; callers only ever see a value or an error.
//
// Errors carry the HTTP status and the server's message verbatim when one
// was present (see [Error]). The client never retries; retry policy belongs
// to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maqraa/maqraa.go/pkg/models"
)

// TokenSource yields the bearer token for a request. Implementations live
// in [github.com/maqraa/maqraa.go/pkg/token].
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the Maqraa admin API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

// NewClient creates a client for the API at baseURL (protocol and host, no
// trailing slash). Requests time out after 30 seconds unless the context
// expires first.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		log:    zerolog.Nop(),
	}
}

// SetHTTPClient replaces the underlying HTTP client, for custom transports
// or timeouts.
func (c *Client) SetHTTPClient(hc *http.Client) { c.httpClient = hc }

// SetLogger attaches a logger; request logging is off by default.
func (c *Client) SetLogger(log zerolog.Logger) { c.log = log }

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug().Str("method", method).Str("path", path).Str("request_id", reqID).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("path", path).Str("request_id", reqID).Err(err).Msg("api transport failure")
		return nil, err
	}
	return resp, nil
}

// decodeResponse decodes the JSON response into target, converting non-2xx
// statuses into *Error with the server message when one can be extracted.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return &Error{Status: resp.StatusCode, Message: serverMessage(raw)}
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func serverMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return ""
}

// rejected converts a success=false envelope on a 200 into an error carrying
// the server message.
func rejected(message string) error {
	if message == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, message)
}

// Entity reads

// Classrooms lists every classroom.
func (c *Client) Classrooms(ctx context.Context) ([]models.Classroom, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/classes", nil)
	if err != nil {
		return nil, err
	}
	var result []models.Classroom
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Students lists every student across classrooms.
func (c *Client) Students(ctx context.Context) ([]models.Student, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/students", nil)
	if err != nil {
		return nil, err
	}
	var result []models.Student
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Plans lists the subscription plans.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/plans", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Plans, nil
}

// Transactions lists payment transactions.
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/transactions", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Success bool                 `json:"success"`
		Data    []models.Transaction `json:"data"`
		Message string               `json:"message"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, rejected(result.Message)
	}
	return result.Data, nil
}

// PendingUsers lists signups awaiting payment.
func (c *Client) PendingUsers(ctx context.Context) ([]models.PendingUser, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/pendingUsers", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Success bool                 `json:"success"`
		Data    []models.PendingUser `json:"data"`
		Message string               `json:"message"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, rejected(result.Message)
	}
	return result.Data, nil
}

// Reports lists the statistics cards for the reports page.
func (c *Client) Reports(ctx context.Context) ([]models.Report, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/reportes", nil)
	if err != nil {
		return nil, err
	}
	var result []models.Report
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// HomeReport fetches the dashboard landing-page aggregate.
func (c *Client) HomeReport(ctx context.Context) (models.HomeReport, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/homeReport", nil)
	if err != nil {
		return models.HomeReport{}, err
	}
	var result models.HomeReport
	if err := decodeResponse(resp, &result); err != nil {
		return models.HomeReport{}, err
	}
	return result, nil
}

// Profile fetches the authenticated administrator's account.
func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/me", nil)
	if err != nil {
		return models.Profile{}, err
	}
	var result models.Profile
	if err := decodeResponse(resp, &result); err != nil {
		return models.Profile{}, err
	}
	return result, nil
}

// Classroom tab reads

// ClassHome fetches a classroom's home-tab summary.
func (c *Client) ClassHome(ctx context.Context, id models.ClassroomID) (models.ClassHome, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/classe/%s", id), nil)
	if err != nil {
		return models.ClassHome{}, err
	}
	var result models.ClassHome
	if err := decodeResponse(resp, &result); err != nil {
		return models.ClassHome{}, err
	}
	return result, nil
}

// ClassStudents lists the students enrolled in a classroom.
func (c *Client) ClassStudents(ctx context.Context, id models.ClassroomID) ([]models.Student, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/classe/%s/student", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Success  bool             `json:"success"`
		Students []models.Student `json:"students"`
		Message  string           `json:"message"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, rejected(result.Message)
	}
	return result.Students, nil
}

// ClassFiles lists the documents on a classroom's files tab.
func (c *Client) ClassFiles(ctx context.Context, id models.ClassroomID) ([]models.File, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/classe/%s/Allfiles", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		PDFs []models.File `json:"pdfs"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.PDFs, nil
}

// ClassTasks lists a classroom's assignments.
func (c *Client) ClassTasks(ctx context.Context, id models.ClassroomID) ([]models.Task, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/class/%s/tasks", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// ClassSubmissions lists the submissions received per task.
func (c *Client) ClassSubmissions(ctx context.Context, id models.ClassroomID) ([]models.TaskSubmissions, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/class/%s/tasks/submissions", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Tasks []models.TaskSubmissions `json:"tasks"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Tasks, nil
}

// ClassNotes lists a classroom's announcements.
func (c *Client) ClassNotes(ctx context.Context, id models.ClassroomID) ([]models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/classe/%s/note", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Notes []models.Note `json:"notes"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Notes, nil
}

// ClassVideos lists a classroom's lecture recordings.
func (c *Client) ClassVideos(ctx context.Context, id models.ClassroomID) ([]models.Video, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/classe/%s/video", id), nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Videos []models.Video `json:"videos"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result.Videos, nil
}

// Mutations

// NewClassroom is the payload for CreateClassroom.
type NewClassroom struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateClassroom registers a new classroom.
func (c *Client) CreateClassroom(ctx context.Context, payload NewClassroom) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/classe/add", payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ClassroomUpdate is the payload for UpdateClassroom; zero fields are
// omitted so the server keeps their current values.
type ClassroomUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UpdateClassroom edits a classroom's summary fields.
func (c *Client) UpdateClassroom(ctx context.Context, id models.ClassroomID, payload ClassroomUpdate) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/classe/%s", id), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// RemoveClassStudent unenrolls a student from a classroom.
func (c *Client) RemoveClassStudent(ctx context.Context, id models.ClassroomID, sid models.StudentID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/classe/%s/student/%s", id, sid), nil)
	if err != nil {
		return err
	}
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return err
	}
	if !result.Success {
		return rejected(result.Message)
	}
	return nil
}

// NewFile is the payload for AddClassFile.
type NewFile struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// AddClassFile attaches a document to a classroom.
func (c *Client) AddClassFile(ctx context.Context, id models.ClassroomID, payload NewFile) error {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/admin/classe/%s/file", id), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// UpdateClassFile edits a classroom document.
func (c *Client) UpdateClassFile(ctx context.Context, id models.ClassroomID, fid models.FileID, payload NewFile) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/classe/%s/file/%s", id, fid), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// DeleteClassFile removes a classroom document.
func (c *Client) DeleteClassFile(ctx context.Context, id models.ClassroomID, fid models.FileID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/classe/%s/file/%s", id, fid), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// AddClassNote posts an announcement to a classroom.
func (c *Client) AddClassNote(ctx context.Context, id models.ClassroomID, msg string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/admin/classe/%s/note", id), map[string]string{"msg": msg})
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// UpdateClassNote edits an announcement.
func (c *Client) UpdateClassNote(ctx context.Context, id models.ClassroomID, nid models.NoteID, msg string) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/classe/%s/note/%s", id, nid), map[string]string{"msg": msg})
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// DeleteClassNote removes an announcement.
func (c *Client) DeleteClassNote(ctx context.Context, id models.ClassroomID, nid models.NoteID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/classe/%s/note/%s", id, nid), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// NewTask is the payload for AddClassTask.
type NewTask struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// AddClassTask assigns a task to a classroom.
func (c *Client) AddClassTask(ctx context.Context, id models.ClassroomID, payload NewTask) error {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/admin/class/%s/task", id), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// UpdateClassTask edits a task.
func (c *Client) UpdateClassTask(ctx context.Context, id models.ClassroomID, tid models.TaskID, payload NewTask) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/class/%s/task/%s", id, tid), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// DeleteClassTask removes a task.
func (c *Client) DeleteClassTask(ctx context.Context, id models.ClassroomID, tid models.TaskID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/class/%s/task/%s", id, tid), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// DeleteClassVideo removes a lecture recording. Uploads never go through
// this client; the external video host persists the record and the video
// feed reports it.
func (c *Client) DeleteClassVideo(ctx context.Context, id models.ClassroomID, vid models.VideoID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/classe/%s/video/%s", id, vid), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// NewPlan is the payload for CreatePlan and UpdatePlan.
type NewPlan struct {
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	DurationValue int     `json:"durationValue"`
	DurationType  string  `json:"durationType"`
}

// CreatePlan adds a subscription plan and returns the created record.
func (c *Client) CreatePlan(ctx context.Context, payload NewPlan) (models.Plan, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/plans/add", payload)
	if err != nil {
		return models.Plan{}, err
	}
	var result struct {
		Plan *models.Plan `json:"plan"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return models.Plan{}, err
	}
	if result.Plan == nil {
		return models.Plan{}, rejected("server did not return the created plan")
	}
	return *result.Plan, nil
}

// UpdatePlan edits a subscription plan.
func (c *Client) UpdatePlan(ctx context.Context, id models.PlanID, payload NewPlan) error {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/plans/%s", id), payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// DeletePlan removes a subscription plan.
func (c *Client) DeletePlan(ctx context.Context, id models.PlanID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/plans/%s", id), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// ResendPaymentLink re-sends a pending signup's checkout link by email.
// Remaining is the human-readable time left on the checkout window, shown
// in the email body.
func (c *Client) ResendPaymentLink(ctx context.Context, email, url, remaining string) error {
	payload := map[string]string{
		"email": email,
		"url":   url,
		"time":  remaining,
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/resend-payment-link", payload)
	if err != nil {
		return err
	}
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return err
	}
	if !result.Success {
		return rejected(result.Message)
	}
	return nil
}
