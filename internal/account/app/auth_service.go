package app

import (
	"context"
	"errors"

	"DawnEmpire/internal/account/domain"
	"DawnEmpire/internal/account/dto"
	gamedomain "DawnEmpire/internal/game/domain"
)

// AuthService 处理注册/登录。注册成功即完成游戏初始化并签发令牌，
// 客户端拿到响应就能直接进游戏。
type AuthService struct {
	accountRepo AccountRepo
	players     PlayerReader
	gameInit    GameInitializer
	hashPwd     PwdHasher
	checkPwd    PwdChecker
	issueToken  TokenIssuer
}

func NewAuthService(accountRepo AccountRepo, players PlayerReader, gameInit GameInitializer,
	hashPwd PwdHasher, checkPwd PwdChecker, issueToken TokenIssuer) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		players:     players,
		gameInit:    gameInit,
		hashPwd:     hashPwd,
		checkPwd:    checkPwd,
		issueToken:  issueToken,
	}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterReq) (*dto.AuthResp, error) {
	taken, err := s.accountRepo.Exists(ctx, req.Email, req.Username)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	if taken {
		return nil, ErrAccountExists.WithData("email", req.Email)
	}

	hash, err := s.hashPwd(req.Password)
	if err != nil {
		return nil, ErrInternalServer.WithCause(err)
	}

	playerID, err := s.accountRepo.Create(ctx, &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	// 初始局面：中心城镇中心 + 初始村民 + 资源点
	if err = s.gameInit.SetupNewPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	token, err := s.issueToken(playerID)
	if err != nil {
		return nil, ErrInternalServer.WithData("playerId", playerID).WithCause(err)
	}

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResp{Token: token, Player: player}, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginReq) (*dto.AuthResp, error) {
	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// 区分"账号不存在"（业务错误）和"数据库挂了"（技术错误）
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			return nil, ErrInvalidCredentials.WithData("reason", "账号不存在")
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	if !s.checkPwd(req.Password, account.PasswordHash) {
		return nil, ErrInvalidCredentials.WithData("reason", "密码错误")
	}

	token, err := s.issueToken(account.ID)
	if err != nil {
		return nil, ErrInternalServer.WithData("playerId", account.ID).WithCause(err)
	}

	player, err := s.players.GetByID(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResp{Token: token, Player: player}, nil
}

// Me 返回当前登录玩家的快照。
func (s *AuthService) Me(ctx context.Context, playerID int) (*gamedomain.Player, error) {
	return s.players.GetByID(ctx, playerID)
}
