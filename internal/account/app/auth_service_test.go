package app

import (
	"context"
	"errors"
	"testing"

	"DawnEmpire/internal/account/domain"
	"DawnEmpire/internal/account/dto"
	gamedomain "DawnEmpire/internal/game/domain"
)

type fakeAccountRepo struct {
	byEmail map[string]*domain.Account
	nextID  int

	createCalls int
	lastCreated *domain.Account
	createErr   error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byEmail: make(map[string]*domain.Account), nextID: 1}
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound.WithData("email", email)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) Exists(ctx context.Context, email, username string) (bool, error) {
	if _, ok := r.byEmail[email]; ok {
		return true, nil
	}
	for _, a := range r.byEmail {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) Create(ctx context.Context, a *domain.Account) (int, error) {
	r.createCalls++
	if r.createErr != nil {
		return 0, r.createErr
	}
	cp := *a
	cp.ID = r.nextID
	r.nextID++
	r.byEmail[cp.Email] = &cp
	r.lastCreated = &cp
	return cp.ID, nil
}

type fakePlayerReader struct {
	players map[int]*gamedomain.Player
}

func (r *fakePlayerReader) GetByID(ctx context.Context, playerID int) (*gamedomain.Player, error) {
	p, ok := r.players[playerID]
	if !ok {
		return nil, gamedomain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	return p, nil
}

type fakeGameInit struct {
	calls  []int
	err    error
}

func (g *fakeGameInit) SetupNewPlayer(ctx context.Context, playerID int) error {
	g.calls = append(g.calls, playerID)
	return g.err
}

func plainHasher(pwd string) (string, error)  { return "hash:" + pwd, nil }
func plainChecker(pwd, hash string) bool      { return hash == "hash:"+pwd }
func stubIssuer(playerID int) (string, error) { return "token-1", nil }

func newAuthService(repo *fakeAccountRepo, players *fakePlayerReader, init *fakeGameInit) *AuthService {
	return NewAuthService(repo, players, init, plainHasher, plainChecker, stubIssuer)
}

func TestRegister_创建账号并初始化局面(t *testing.T) {
	repo := newFakeAccountRepo()
	players := &fakePlayerReader{players: map[int]*gamedomain.Player{
		1: {ID: 1, Username: "alice", Email: "a@test.dev"},
	}}
	init := &fakeGameInit{}
	s := newAuthService(repo, players, init)

	resp, err := s.Register(context.Background(), dto.RegisterReq{
		Username: "alice", Email: "a@test.dev", Password: "secret",
	})
	if err != nil {
		t.Fatalf("期望注册成功, got=%v", err)
	}
	if resp.Token == "" || resp.Player == nil || resp.Player.ID != 1 {
		t.Fatalf("期望响应带令牌与玩家快照, got=%+v", resp)
	}
	if repo.lastCreated.PasswordHash != "hash:secret" {
		t.Fatalf("期望存储密码散列而非明文, got=%q", repo.lastCreated.PasswordHash)
	}
	if len(init.calls) != 1 || init.calls[0] != 1 {
		t.Fatalf("期望为新玩家初始化一次局面, got=%v", init.calls)
	}
}

func TestRegister_重复邮箱或用户名应拒绝(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byEmail["a@test.dev"] = &domain.Account{ID: 1, Username: "alice", Email: "a@test.dev"}
	init := &fakeGameInit{}
	s := newAuthService(repo, &fakePlayerReader{}, init)

	_, err := s.Register(context.Background(), dto.RegisterReq{
		Username: "bob", Email: "a@test.dev", Password: "secret",
	})
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("期望 ErrAccountExists, got=%v", err)
	}
	if repo.createCalls != 0 || len(init.calls) != 0 {
		t.Fatalf("期望冲突时不落库不初始化, create=%d init=%v", repo.createCalls, init.calls)
	}
}

func TestRegister_初始化失败应透传错误(t *testing.T) {
	repo := newFakeAccountRepo()
	init := &fakeGameInit{err: gamedomain.ErrSystemUnavailable}
	s := newAuthService(repo, &fakePlayerReader{}, init)

	_, err := s.Register(context.Background(), dto.RegisterReq{
		Username: "alice", Email: "a@test.dev", Password: "secret",
	})
	if !errors.Is(err, gamedomain.ErrSystemUnavailable) {
		t.Fatalf("期望初始化失败透传系统错误, got=%v", err)
	}
}

func TestLogin_按邮箱登录(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byEmail["a@test.dev"] = &domain.Account{
		ID: 7, Username: "alice", Email: "a@test.dev", PasswordHash: "hash:secret",
	}
	players := &fakePlayerReader{players: map[int]*gamedomain.Player{
		7: {ID: 7, Username: "alice"},
	}}
	s := newAuthService(repo, players, &fakeGameInit{})

	resp, err := s.Login(context.Background(), dto.LoginReq{Email: "a@test.dev", Password: "secret"})
	if err != nil {
		t.Fatalf("期望登录成功, got=%v", err)
	}
	if resp.Token == "" || resp.Player.ID != 7 {
		t.Fatalf("期望响应带令牌与玩家快照, got=%+v", resp)
	}
}

func TestLogin_账号不存在与密码错误一律返回凭证无效(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.byEmail["a@test.dev"] = &domain.Account{
		ID: 7, Email: "a@test.dev", PasswordHash: "hash:secret",
	}
	s := newAuthService(repo, &fakePlayerReader{}, &fakeGameInit{})

	if _, err := s.Login(context.Background(), dto.LoginReq{Email: "missing@test.dev", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials, got=%v", err)
	}
	if _, err := s.Login(context.Background(), dto.LoginReq{Email: "a@test.dev", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("期望 ErrInvalidCredentials, got=%v", err)
	}
}
