package events

import (
	"context"
	"log/slog"
	"time"

	"taskboard/internal/domain"
)

type TaskEvent struct {
	Type      string       `json:"type"`
	OrgID     int64        `json:"orgId"`
	Task      *domain.Task `json:"task"`
	Timestamp time.Time    `json:"timestamp"`
}

type memberLister interface {
	MemberIDs(ctx context.Context, orgID int64) ([]int64, error)
}

// Publisher fans task events out to every connected member of the affected
// organization. Failures are logged and swallowed: the write that triggered
// the event has already committed.
type Publisher struct {
	hub  *Hub
	orgs memberLister
}

func NewPublisher(hub *Hub, orgs memberLister) *Publisher {
	return &Publisher{hub: hub, orgs: orgs}
}

func (p *Publisher) PublishTaskEvent(ctx context.Context, orgID int64, event string, task *domain.Task) {
	memberIDs, err := p.orgs.MemberIDs(ctx, orgID)
	if err != nil {
		slog.Error("event fanout: member lookup failed", "org_id", orgID, "error", err)
		return
	}

	p.hub.Broadcast(memberIDs, TaskEvent{
		Type:      event,
		OrgID:     orgID,
		Task:      task,
		Timestamp: time.Now().UTC(),
	})
}
