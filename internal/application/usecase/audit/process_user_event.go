package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/user"
	"github.com/khoahotran/rentredi/pkg/logger"
)

type ProcessUserEventUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

// NewProcessUserEventUseCase writes one audit line per event. userRepo is optional; when set,
// created and updated events are logged together with the record as currently stored.
func NewProcessUserEventUseCase(uRepo user.Repository, log logger.Logger) *ProcessUserEventUseCase {
	return &ProcessUserEventUseCase{userRepo: uRepo, logger: log}
}

func (uc *ProcessUserEventUseCase) Execute(ctx context.Context, e service.UserEvent) error {
	fields := []zap.Field{
		zap.String("event_type", string(e.EventType)),
		zap.String("user_id", e.UserID),
		zap.String("zip_code", e.ZipCode),
		zap.Time("occurred_at", e.OccurredAt),
	}

	switch e.EventType {
	case service.UserEventCreated, service.UserEventUpdated:
		if uc.userRepo == nil {
			break
		}
		current, found, err := uc.userRepo.FindByID(ctx, e.UserID)
		if err != nil {
			return fmt.Errorf("get user failed: %w", err)
		}
		if !found {
			uc.logger.Warn("User from event no longer exists, audit without snapshot", fields...)
			break
		}
		fields = append(fields, zap.Any("snapshot", current))
	case service.UserEventDeleted:
	default:
		uc.logger.Warn("Unknown user event type, skip.", fields...)
		return nil
	}

	uc.logger.Info("User audit", fields...)
	return nil
}
