package dto

import gamedomain "DawnEmpire/internal/game/domain"

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResp struct {
	Token  string             `json:"token"`
	Player *gamedomain.Player `json:"player"`
}
