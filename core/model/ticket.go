package model

import "time"

// TicketStatus is the workflow state of a support ticket. Values are carried
// through verbatim from the export; the constants cover the common ones.
type TicketStatus string

const (
	StatusOpen    TicketStatus = "Open"
	StatusPending TicketStatus = "Pending"
	StatusOnHold  TicketStatus = "On-hold"
)

// RawTicket is one row of the ticket export, as parsed.
type RawTicket struct {
	Assignee  string
	ID        string
	Subject   string
	Requested time.Time
	Due       time.Time
	Status    TicketStatus
}

// Ticket is a normalized ticket keyed by assignee initials.
// Initials link a ticket to the goal whose stripped identifier matches.
type Ticket struct {
	Assignee  string       `json:"assignee"`
	Initials  string       `json:"initials"`
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Requested time.Time    `json:"requested"`
	Due       time.Time    `json:"due"`
	Status    TicketStatus `json:"status"`
}
