package app

import (
	"context"

	"DawnEmpire/internal/account/domain"
	gamedomain "DawnEmpire/internal/game/domain"
)

type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Exists(ctx context.Context, email, username string) (bool, error)
	// Create 写入新账号行（带初始资源与人口），返回玩家 id。
	Create(ctx context.Context, a *domain.Account) (int, error)
}

// PlayerReader 读游戏侧的玩家快照（/auth/me 用）。
type PlayerReader interface {
	GetByID(ctx context.Context, playerID int) (*gamedomain.Player, error)
}

// GameInitializer 为新注册的玩家铺设初始局面。
type GameInitializer interface {
	SetupNewPlayer(ctx context.Context, playerID int) error
}

// PwdHasher 生成密码散列（生产实现是 bcrypt）。
type PwdHasher func(pwd string) (string, error)

// PwdChecker 校验密码与散列是否匹配。
type PwdChecker func(pwd, hash string) bool

// TokenIssuer 为玩家签发会话令牌。
type TokenIssuer func(playerID int) (string, error)
