package models

// Typed identifiers keep the per-resource keyspaces apart at compile time.
// The server assigns them; clients only pass them back.

type ClassroomID string

func (id ClassroomID) String() string { return string(id) }
func (id ClassroomID) IsZero() bool   { return id == "" }

type StudentID string

func (id StudentID) String() string { return string(id) }
func (id StudentID) IsZero() bool   { return id == "" }

type FileID string

func (id FileID) String() string { return string(id) }
func (id FileID) IsZero() bool   { return id == "" }

type NoteID string

func (id NoteID) String() string { return string(id) }
func (id NoteID) IsZero() bool   { return id == "" }

type TaskID string

func (id TaskID) String() string { return string(id) }
func (id TaskID) IsZero() bool   { return id == "" }

type VideoID string

func (id VideoID) String() string { return string(id) }
func (id VideoID) IsZero() bool   { return id == "" }

type PlanID string

func (id PlanID) String() string { return string(id) }
func (id PlanID) IsZero() bool   { return id == "" }

type TransactionID string

func (id TransactionID) String() string { return string(id) }
func (id TransactionID) IsZero() bool   { return id == "" }

type PendingUserID string

func (id PendingUserID) String() string { return string(id) }
func (id PendingUserID) IsZero() bool   { return id == "" }
