package client

import "time"

// Case is a legal matter as served by the API.
type Case struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	OpposingIDs []string  `json:"opposing_party_ids,omitempty"`
	OpenedAt    time.Time `json:"opened_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CaseInput carries the writable fields of a case.
type CaseInput struct {
	Reference  string `json:"reference,omitempty"`
	Title      string `json:"title"`
	ClientName string `json:"client_name"`
}

// Contact is a person or organization in the address book.
type Contact struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"` // person or organization
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// CalendarEvent is a calendar entry (hearing, meeting, deadline).
type CalendarEvent struct {
	ID       string    `json:"id"`
	CaseID   string    `json:"case_id,omitempty"`
	Title    string    `json:"title"`
	Kind     string    `json:"kind"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
}

// CallRecord is a logged phone call.
type CallRecord struct {
	ID         string    `json:"id"`
	CaseID     string    `json:"case_id,omitempty"`
	Direction  string    `json:"direction"` // inbound or outbound
	Caller     string    `json:"caller"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// CallTranscript is the transcribed content of a call.
type CallTranscript struct {
	CallID   string `json:"call_id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

// Invoice is a billing document.
type Invoice struct {
	ID          string    `json:"id"`
	CaseID      string    `json:"case_id"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
}

// TimeEntry records billable time against a case.
type TimeEntry struct {
	CaseID      string `json:"case_id"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
	Billable    bool   `json:"billable"`
}

// ConflictCheck asks SENTINEL whether a candidate party conflicts with
// existing matters.
type ConflictCheck struct {
	PartyName string   `json:"party_name"`
	Aliases   []string `json:"aliases,omitempty"`
	CaseID    string   `json:"case_id,omitempty"`
}

// ConflictHit is one detected conflict.
type ConflictHit struct {
	CaseID    string  `json:"case_id"`
	CaseTitle string  `json:"case_title"`
	Role      string  `json:"role"`
	Score     float64 `json:"score"`
}

// ConflictResult is the outcome of a conflict check.
type ConflictResult struct {
	Conflicted bool          `json:"conflicted"`
	Hits       []ConflictHit `json:"hits"`
}

// GraphNode is a party or matter in the SENTINEL relationship graph.
type GraphNode struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"` // party, matter, lawyer
	Label string `json:"label"`
}

// GraphEdge is a relationship between two graph nodes.
type GraphEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Relation string `json:"relation"`
}

// ConflictGraph is the relationship graph around a case or party.
type ConflictGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Document is a file attached to a case.
type Document struct {
	ID       string `json:"id"`
	CaseID   string `json:"case_id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	SHA256   string `json:"sha256,omitempty"`
}

// DraftRequest asks the AI drafting service for a document.
type DraftRequest struct {
	CaseID       string `json:"case_id"`
	TemplateSlug string `json:"template"`
	Instructions string `json:"instructions,omitempty"`
	Language     string `json:"language,omitempty"`
}

// listEnvelope is the API's standard collection wrapper.
type listEnvelope[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
