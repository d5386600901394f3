package task

import (
	"context"

	"taskboard/internal/domain"
)

// EventPublisher pushes task change events to connected org members.
// Delivery is best effort; task writes never fail because of it.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, orgID int64, event string, task *domain.Task)
}

type MembershipReader interface {
	IsMember(ctx context.Context, userID, orgID int64) (bool, error)
}
