package repository

import (
	"context"
	"time"

	"paintingstore/internal/domain/model"
)

// 監査ログの絞り込み条件。nilは条件なし
type AuditLogFilter struct {
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	//新しい順。Limitは既定50、最大200
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
