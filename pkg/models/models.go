// Package models defines the records exchanged with the Maqraa admin API.
//
// One models package is shared by the API client, the cache layer, and the
// CLI so the same types flow from the wire into the store and out to the
// caller. Record identifiers are opaque strings assigned by the server and
// are serialized under the `_id` key unless noted otherwise.
package models

import "time"

// Classroom is a classroom as listed on the dashboard. StudentsCount and
// similar derived fields are computed server-side, which is why mutations
// refetch instead of patching cached copies locally.
type Classroom struct {
	ID            ClassroomID `json:"_id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Status        string      `json:"status,omitempty"`
	StudentsCount int         `json:"studentsCount,omitempty"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
}

// ClassHome is the summary shown on a classroom's home tab.
type ClassHome struct {
	ID          ClassroomID `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
}

// Student is an enrolled student, either globally or within a classroom.
type Student struct {
	ID        StudentID     `json:"_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Status    string        `json:"status,omitempty"`
	Classes   []ClassroomID `json:"classes,omitempty"`
	CreatedAt time.Time     `json:"createdAt,omitempty"`
}

// File is a document attached to a classroom's files tab. The server keys
// files by `id`, not `_id`.
type File struct {
	ID          FileID    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// Note is a short announcement posted to a classroom.
type Note struct {
	ID        NoteID    `json:"_id"`
	Msg       string    `json:"msg"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Task is an assignment given to a classroom.
type Task struct {
	ID          TaskID    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	AddedAt     time.Time `json:"addedAt,omitempty"`
}

// Submission is a single student's answer to a task.
type Submission struct {
	Student  Student `json:"student"`
	Solution string  `json:"solution"`
}

// TaskSubmissions groups the submissions received for one task; it is the
// element type of the receivedTasks tab.
type TaskSubmissions struct {
	Task
	Submissions []Submission `json:"submissions"`
}

// Video is a lecture recording hosted on the external video service.
// VideoID refers to the record on the host's side and is what the video
// feed reports back after an upload completes.
type Video struct {
	ID          VideoID   `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	VideoID     string    `json:"videoId,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt,omitempty"`
}

// Plan is a subscription plan.
type Plan struct {
	ID            PlanID  `json:"_id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	DurationValue int     `json:"durationValue"`
	DurationType  string  `json:"durationType"`
}

// Transaction is a payment transaction.
type Transaction struct {
	ID          TransactionID `json:"_id"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Status      string        `json:"status"`
	CheckoutURL string        `json:"checkoutUrl,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}

// PendingUser is a signup awaiting payment. ExpireAt is the absolute expiry
// of the checkout link; the dashboard counts it down client-side but the
// server remains authoritative.
type PendingUser struct {
	ID          PendingUserID `json:"_id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	ExpireAt    time.Time     `json:"expireAt"`
	CheckoutURL string        `json:"checkoutUrl,omitempty"`
	Plan        *Plan         `json:"plan,omitempty"`
	Transaction *Transaction  `json:"transaction,omitempty"`
}

// Report is one statistics card on the reports page.
type Report struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Value       string `json:"value"`
}

// HomeReport is the aggregate shown on the dashboard landing page.
type HomeReport struct {
	Cards []Report `json:"cards"`
}

// Profile is the authenticated administrator's own account record.
type Profile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
