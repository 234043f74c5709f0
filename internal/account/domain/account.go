package domain

import "time"

// Account 是玩家的登录身份，和游戏侧的 Player 共用同一张表，
// 但这里只关心认证相关的字段。
type Account struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
