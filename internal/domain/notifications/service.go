package notifications

import (
	"context"
	"log/slog"
	"time"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type Service struct {
	store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{store: store}
}

// NotifyEmployee resolves the employee's user account and records a
// notification. Delivery is fire-and-forget: a failure is logged and never
// propagated, so charge processing cannot be blocked by notification issues.
func (s *Service) NotifyEmployee(ctx context.Context, employeeID, ntype, title, message string) {
	userID, err := s.store.UserIDForEmployee(ctx, employeeID)
	if err != nil {
		slog.Warn("notification user lookup failed", "employeeId", employeeID, "err", err)
		return
	}
	if err := s.store.CreateNotification(ctx, userID, ntype, title, message); err != nil {
		slog.Warn("notification create failed", "employeeId", employeeID, "type", ntype, "err", err)
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	return s.store.ListNotifications(ctx, userID, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.store.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}
