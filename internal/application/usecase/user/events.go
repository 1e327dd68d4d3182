package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

func publishAsync(pub service.EventPublisher, log logger.Logger, eventType service.UserEventType, u user.User) {
	if pub == nil {
		return
	}
	e := service.UserEvent{
		EventType:  eventType,
		UserID:     u.ID,
		ZipCode:    u.ZipCode,
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := pub.PublishUserEvent(context.Background(), e); err != nil {
			log.Error("Failed to publish user event", err, zap.String("event_type", string(eventType)), zap.String("user_id", u.ID))
		}
	}()
}
