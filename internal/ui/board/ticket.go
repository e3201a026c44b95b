package board

import (
	"time"

	"github.com/dustin/go-humanize"
)

type Status string

const (
	StatusOpen    Status = "open"
	StatusPending Status = "pending"
	StatusClosed  Status = "closed"
)

type Ticket struct {
	ID       string
	Title    string
	Status   Status
	Assignee string
	Opened   time.Time
	Body     string
}

// Age is the ticket's age relative to now, e.g. "3 days ago".
func (t Ticket) Age(now time.Time) string {
	return humanize.RelTime(t.Opened, now, "ago", "from now")
}

// SampleTickets is the fixed data set the board starts with.
func SampleTickets(now time.Time) []Ticket {
	return []Ticket{
		{ID: "T-1", Title: "Printer on floor 3 jams on duplex", Status: StatusOpen, Assignee: "sam", Opened: now.Add(-2 * time.Hour), Body: "Jams every second page when printing both sides."},
		{ID: "T-2", Title: "VPN drops after sleep", Status: StatusPending, Assignee: "alex", Opened: now.Add(-26 * time.Hour), Body: "Client reconnects only after a restart."},
		{ID: "T-3", Title: "Request: second monitor", Status: StatusOpen, Assignee: "", Opened: now.Add(-3 * 24 * time.Hour), Body: "Needed for the new dashboard work."},
		{ID: "T-4", Title: "Password reset mail not arriving", Status: StatusOpen, Assignee: "kim", Opened: now.Add(-45 * time.Minute), Body: "Checked spam. Nothing there."},
		{ID: "T-5", Title: "Laptop battery swelling", Status: StatusPending, Assignee: "sam", Opened: now.Add(-9 * 24 * time.Hour), Body: "Trackpad no longer clicks."},
		{ID: "T-6", Title: "Shared drive quota", Status: StatusClosed, Assignee: "alex", Opened: now.Add(-40 * 24 * time.Hour), Body: "Raised to 2 TB."},
	}
}
