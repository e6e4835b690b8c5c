package normalize

import (
	"strings"

	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/pkg/tabular"
)

// Ticket table column names, as exported. Requested is optional and defaults
// to the due date, which renders the ticket as a zero-duration marker.
const (
	ColAssignee  = "Assignee"
	ColDueDate   = "Due date"
	ColSubject   = "Subject"
	ColStatus    = "Status"
	ColTicketID  = "ID"
	ColRequested = "Requested"
)

var ticketColumns = []string{ColAssignee, ColDueDate, ColSubject, ColStatus, ColTicketID}

// Tickets normalizes raw ticket rows, deriving assignee initials and dropping
// rows whose assignee yields none. A missing required column returns a
// SchemaError; a malformed date fails the whole call.
func Tickets(tbl *tabular.Table) ([]model.Ticket, error) {
	if missing := tbl.Missing(ticketColumns...); len(missing) > 0 {
		return nil, &SchemaError{Table: "ticket", Missing: missing}
	}

	hasRequested := tbl.HasColumn(ColRequested)
	tickets := make([]model.Ticket, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		due, err := tabular.ParseDate(tbl.Get(i, ColDueDate))
		if err != nil {
			return nil, &DateError{Table: "ticket", Column: ColDueDate, Row: i, Value: tbl.Get(i, ColDueDate), Err: err}
		}
		requested := due
		if hasRequested {
			requested, err = tabular.ParseDate(tbl.Get(i, ColRequested))
			if err != nil {
				return nil, &DateError{Table: "ticket", Column: ColRequested, Row: i, Value: tbl.Get(i, ColRequested), Err: err}
			}
		}
		assignee := tbl.Get(i, ColAssignee)
		ini := Initials(assignee)
		if ini == "" {
			continue
		}
		tickets = append(tickets, model.Ticket{
			Assignee:  assignee,
			Initials:  ini,
			ID:        tbl.Get(i, ColTicketID),
			Title:     tbl.Get(i, ColSubject),
			Requested: requested,
			Due:       due,
			Status:    model.TicketStatus(tbl.Get(i, ColStatus)),
		})
	}
	return tickets, nil
}

// Initials derives assignee initials from a full name: first letter of the
// first and last whitespace-separated tokens, uppercased. A single token
// yields one letter; an empty name yields the empty string.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		return firstLetter(parts[0]) + firstLetter(parts[len(parts)-1])
	case len(parts) == 1:
		return firstLetter(parts[0])
	default:
		return ""
	}
}

func firstLetter(token string) string {
	r := []rune(token)
	return strings.ToUpper(string(r[0]))
}
