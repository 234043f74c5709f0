package app

import (
	"context"
	"time"

	"DawnEmpire/internal/game/domain"
)

type PlayerRepo interface {
	GetByID(ctx context.Context, playerID int) (*domain.Player, error)
}

type BuildingRepo interface {
	Create(ctx context.Context, b *domain.Building) (*domain.Building, error)
	// CreateWithDebit 在一个事务里完成条件扣费与落库，任一步失败整体回滚。
	CreateWithDebit(ctx context.Context, b *domain.Building, cost domain.Resources) (*domain.Building, error)
	GetByID(ctx context.Context, buildingID int) (*domain.Building, error)
	ListByPlayer(ctx context.Context, playerID int) ([]*domain.Building, error)
	ExistsAt(ctx context.Context, playerID, gridX, gridY int) (bool, error)
}

type UnitRepo interface {
	Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error)
	// CreateWithDebit 扣费、人口占位与落库同一事务，任一步失败整体回滚。
	CreateWithDebit(ctx context.Context, u *domain.Unit, cost domain.Resources) (*domain.Unit, error)
	GetByID(ctx context.Context, unitID int) (*domain.Unit, error)
	ListByPlayer(ctx context.Context, playerID int) ([]*domain.Unit, error)
	UpdateTask(ctx context.Context, unitID int, task domain.Task, targetID *int) error
}

type MapResourceRepo interface {
	BatchCreate(ctx context.Context, resources []*domain.MapResource) error
	ListByPlayer(ctx context.Context, playerID int) ([]*domain.MapResource, error)
}

// Notifier 把事件推给玩家的在线连接，由会话 Hub 实现。
// 投递是尽力而为的：玩家不在线就静默丢弃。
type Notifier interface {
	Push(playerID int, name string, data any)
}

// Clock 注入当前时间，测试里用固定时钟。
type Clock func() time.Time
