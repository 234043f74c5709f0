package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"DawnEmpire/internal/game/app/model"
	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/gamedata"
	"DawnEmpire/modules/kit/logx"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gamedata.Load()
	m.Run()
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[int]*domain.Player

	debitCalls         int
	debitTrainingCalls int
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, playerID int) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return nil, domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	cp := *p
	return &cp, nil
}

// tryDebit 模拟仓储层的条件扣费：检查与扣减在同一把锁里完成，
// 并发扣同一笔余额只会有一次成功。
func (r *fakePlayerRepo) tryDebit(playerID int, cost domain.Resources) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debitCalls++
	p, ok := r.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	if !p.Resources.Covers(cost) {
		return domain.ErrInsufficientResources.WithData("playerId", playerID)
	}
	p.Resources = p.Resources.Sub(cost)
	return nil
}

func (r *fakePlayerRepo) tryDebitTraining(playerID int, cost domain.Resources) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debitTrainingCalls++
	p, ok := r.players[playerID]
	if !ok {
		return domain.ErrPlayerNotFound.WithData("playerId", playerID)
	}
	if p.Population >= p.MaxPopulation {
		return domain.ErrPopulationCapReached.WithData("playerId", playerID)
	}
	if !p.Resources.Covers(cost) {
		return domain.ErrInsufficientResources.WithData("playerId", playerID)
	}
	p.Resources = p.Resources.Sub(cost)
	p.Population++
	return nil
}

// refund 模拟事务回滚：落库失败时把扣掉的退回去。
func (r *fakePlayerRepo) refund(playerID int, cost domain.Resources, population int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[playerID]; ok {
		p.Resources = p.Resources.Add(cost)
		p.Population -= population
	}
}

type fakeBuildingRepo struct {
	players *fakePlayerRepo

	mu        sync.Mutex
	buildings map[int]*domain.Building
	nextID    int

	createErr error
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{buildings: make(map[int]*domain.Building), nextID: 1}
}

func (r *fakeBuildingRepo) Create(ctx context.Context, b *domain.Building) (*domain.Building, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	cp.ID = r.nextID
	r.nextID++
	r.buildings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeBuildingRepo) CreateWithDebit(ctx context.Context, b *domain.Building, cost domain.Resources) (*domain.Building, error) {
	if err := r.players.tryDebit(b.PlayerID, cost); err != nil {
		return nil, err
	}
	created, err := r.Create(ctx, b)
	if err != nil {
		r.players.refund(b.PlayerID, cost, 0)
		return nil, err
	}
	return created, nil
}

func (r *fakeBuildingRepo) GetByID(ctx context.Context, buildingID int) (*domain.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buildings[buildingID]
	if !ok {
		return nil, domain.ErrBuildingNotFound.WithData("buildingId", buildingID)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBuildingRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Building
	for _, b := range r.buildings {
		if b.PlayerID == playerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBuildingRepo) ExistsAt(ctx context.Context, playerID, gridX, gridY int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.buildings {
		if b.PlayerID == playerID && b.GridX == gridX && b.GridY == gridY {
			return true, nil
		}
	}
	return false, nil
}

type fakeUnitRepo struct {
	players *fakePlayerRepo

	units  map[int]*domain.Unit
	nextID int

	createErr error
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[int]*domain.Unit), nextID: 1}
}

func (r *fakeUnitRepo) Create(ctx context.Context, u *domain.Unit) (*domain.Unit, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *u
	cp.ID = r.nextID
	r.nextID++
	r.units[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUnitRepo) CreateWithDebit(ctx context.Context, u *domain.Unit, cost domain.Resources) (*domain.Unit, error) {
	if err := r.players.tryDebitTraining(u.PlayerID, cost); err != nil {
		return nil, err
	}
	created, err := r.Create(ctx, u)
	if err != nil {
		r.players.refund(u.PlayerID, cost, 1)
		return nil, err
	}
	return created, nil
}

func (r *fakeUnitRepo) GetByID(ctx context.Context, unitID int) (*domain.Unit, error) {
	u, ok := r.units[unitID]
	if !ok {
		return nil, domain.ErrUnitNotFound.WithData("unitId", unitID)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnitRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.Unit, error) {
	var out []*domain.Unit
	for _, u := range r.units {
		if u.PlayerID == playerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUnitRepo) UpdateTask(ctx context.Context, unitID int, task domain.Task, targetID *int) error {
	u, ok := r.units[unitID]
	if !ok || !u.IsTrained {
		return domain.ErrUnitNotTrained.WithData("unitId", unitID)
	}
	u.CurrentTask = task
	u.TaskTargetID = targetID
	return nil
}

type pushedEvent struct {
	playerID int
	name     string
	data     any
}

type fakeNotifier struct {
	events []pushedEvent
}

func (n *fakeNotifier) Push(playerID int, name string, data any) {
	n.events = append(n.events, pushedEvent{playerID: playerID, name: name, data: data})
}

type nopLogger struct{}

func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }
func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}

func newTestPlayer(id int) *domain.Player {
	return &domain.Player{
		ID:            id,
		Username:      "u",
		Email:         "u@test.dev",
		CurrentAge:    domain.AgeDawn,
		Resources:     domain.Resources{Food: 200, Wood: 200, Gold: 100, Stone: 100},
		Population:    3,
		MaxPopulation: 5,
	}
}

func newActionService(pRepo *fakePlayerRepo, bRepo *fakeBuildingRepo, uRepo *fakeUnitRepo,
	n *fakeNotifier, now time.Time, accel float64) *ActionService {
	bRepo.players = pRepo
	uRepo.players = pRepo
	return NewActionService(pRepo, bRepo, uRepo, n, nopLogger{},
		func() time.Time { return now }, accel)
}

func TestBuild_扣费并按建造时长排期(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	notifier := &fakeNotifier{}
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), notifier, now, 1)

	b, err := s.Build(context.Background(), 1, model.BuildReq{BuildingType: "HOUSE", GridX: 10, GridY: 10})
	if err != nil {
		t.Fatalf("期望建造成功, got=%v", err)
	}
	if b.IsComplete {
		t.Fatalf("期望新建筑处于建造中")
	}
	if got := pRepo.players[1].Resources; got != (domain.Resources{Food: 200, Wood: 170, Gold: 100, Stone: 100}) {
		t.Fatalf("期望扣除 30 木, got=%+v", got)
	}
	if want := now.Add(60 * time.Second); !b.ConstructionCompletesAt.Equal(want) {
		t.Fatalf("期望完工时刻=%v, got=%v", want, b.ConstructionCompletesAt)
	}
	if len(notifier.events) != 1 || notifier.events[0].name != "game-state-update" {
		t.Fatalf("期望推送一条 game-state-update, got=%+v", notifier.events)
	}
}

func TestBuild_时间加速按除数缩短工期(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	s := newActionService(pRepo, newFakeBuildingRepo(), newFakeUnitRepo(), &fakeNotifier{}, now, 2)

	b, err := s.Build(context.Background(), 1, model.BuildReq{BuildingType: "HOUSE", GridX: 10, GridY: 10})
	if err != nil {
		t.Fatalf("期望建造成功, got=%v", err)
	}
	if want := now.Add(30 * time.Second); !b.ConstructionCompletesAt.Equal(want) {
		t.Fatalf("期望加速后完工时刻=%v, got=%v", want, b.ConstructionCompletesAt)
	}
}

func TestBuild_各校验分支按序返回对应错误(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name    string
		setup   func(p *domain.Player, bRepo *fakeBuildingRepo)
		req     model.BuildReq
		wantErr error
	}{
		{
			name: "未知建筑类型",
			req:  model.BuildReq{BuildingType: "CASTLE", GridX: 1, GridY: 1},
			wantErr: domain.ErrInvalidBuildingType,
		},
		{
			name: "时代不满足",
			req:  model.BuildReq{BuildingType: "BARRACKS", GridX: 1, GridY: 1},
			wantErr: domain.ErrAgeLocked,
		},
		{
			name: "资源不足",
			setup: func(p *domain.Player, bRepo *fakeBuildingRepo) {
				p.Resources = domain.Resources{Food: 200, Wood: 100, Gold: 100, Stone: 100}
			},
			req:     model.BuildReq{BuildingType: "STORAGE_PIT", GridX: 1, GridY: 1},
			wantErr: domain.ErrInsufficientResources,
		},
		{
			name: "位置被占",
			setup: func(p *domain.Player, bRepo *fakeBuildingRepo) {
				_, _ = bRepo.Create(context.Background(), &domain.Building{PlayerID: 1, Type: "HOUSE", GridX: 1, GridY: 1})
			},
			req:     model.BuildReq{BuildingType: "HOUSE", GridX: 1, GridY: 1},
			wantErr: domain.ErrLocationOccupied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := newTestPlayer(1)
			bRepo := newFakeBuildingRepo()
			if tt.setup != nil {
				tt.setup(player, bRepo)
			}
			pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: player}}
			notifier := &fakeNotifier{}
			s := newActionService(pRepo, bRepo, newFakeUnitRepo(), notifier, now, 1)

			_, err := s.Build(context.Background(), 1, tt.req)
			if err == nil {
				t.Fatalf("期望返回错误")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("期望错误=%v, got=%v", tt.wantErr, err)
			}
			if len(notifier.events) != 0 {
				t.Fatalf("期望校验失败时不推送事件, got=%+v", notifier.events)
			}
		})
	}
}

func TestTrain_占用人口并以TRAINING状态入库(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	tc, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 1, Type: "TOWN_CENTER", IsComplete: true,
	})
	uRepo := newFakeUnitRepo()
	notifier := &fakeNotifier{}
	s := newActionService(pRepo, bRepo, uRepo, notifier, now, 1)

	u, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: tc.ID})
	if err != nil {
		t.Fatalf("期望训练成功, got=%v", err)
	}
	if u.IsTrained || u.CurrentTask != domain.TaskTraining {
		t.Fatalf("期望新单位处于训练中, got=%+v", u)
	}
	if got := pRepo.players[1].Population; got != 4 {
		t.Fatalf("期望人口占位到 4, got=%d", got)
	}
	if got := pRepo.players[1].Resources.Food; got != 150 {
		t.Fatalf("期望扣除 50 食物, got=%d", got)
	}
	if want := now.Add(60 * time.Second); !u.TrainingCompletesAt.Equal(want) {
		t.Fatalf("期望训练完成时刻=%v, got=%v", want, u.TrainingCompletesAt)
	}
}

func TestTrain_人口达上限应拒绝(t *testing.T) {
	now := time.Unix(1700000000, 0)
	player := newTestPlayer(1)
	player.Population = 5
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: player}}
	bRepo := newFakeBuildingRepo()
	tc, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 1, Type: "TOWN_CENTER", IsComplete: true,
	})
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), &fakeNotifier{}, now, 1)

	_, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: tc.ID})
	if !errors.Is(err, domain.ErrPopulationCapReached) {
		t.Fatalf("期望 ErrPopulationCapReached, got=%v", err)
	}
	if pRepo.debitTrainingCalls != 0 {
		t.Fatalf("期望预检失败时不发起扣费")
	}
}

func TestTrain_建筑不匹配或未完工应拒绝(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	house, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 1, Type: "HOUSE", IsComplete: true,
	})
	buildingSite, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 1, Type: "TOWN_CENTER", IsComplete: false,
	})
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), &fakeNotifier{}, now, 1)

	if _, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: house.ID}); !errors.Is(err, domain.ErrWrongBuilding) {
		t.Fatalf("期望建筑类型不匹配返回 ErrWrongBuilding, got=%v", err)
	}
	if _, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: buildingSite.ID}); !errors.Is(err, domain.ErrWrongBuilding) {
		t.Fatalf("期望未完工建筑返回 ErrWrongBuilding, got=%v", err)
	}
	if _, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: 404}); !errors.Is(err, domain.ErrBuildingNotFound) {
		t.Fatalf("期望建筑不存在返回 ErrBuildingNotFound, got=%v", err)
	}
}

func TestTrain_他人建筑按不存在处理(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	other, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 2, Type: "TOWN_CENTER", IsComplete: true,
	})
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), &fakeNotifier{}, now, 1)

	_, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: other.ID})
	if !errors.Is(err, domain.ErrBuildingNotFound) {
		t.Fatalf("期望 ErrBuildingNotFound, got=%v", err)
	}
}

func TestAssignTask_村民派活并推送事件(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	uRepo := newFakeUnitRepo()
	villager, _ := uRepo.Create(context.Background(), &domain.Unit{
		PlayerID: 1, Type: domain.UnitTypeVillager, IsTrained: true, CurrentTask: domain.TaskIdle,
	})
	notifier := &fakeNotifier{}
	s := newActionService(pRepo, newFakeBuildingRepo(), uRepo, notifier, now, 1)

	u, err := s.AssignTask(context.Background(), 1, villager.ID, model.AssignTaskReq{Task: "GATHER_WOOD"})
	if err != nil {
		t.Fatalf("期望派活成功, got=%v", err)
	}
	if u.CurrentTask != domain.TaskGatherWood {
		t.Fatalf("期望任务变为 GATHER_WOOD, got=%v", u.CurrentTask)
	}
	if len(notifier.events) != 1 || notifier.events[0].name != "unit-task-updated" {
		t.Fatalf("期望推送 unit-task-updated, got=%+v", notifier.events)
	}
}

func TestAssignTask_非法目标逐项拒绝(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	uRepo := newFakeUnitRepo()
	training, _ := uRepo.Create(context.Background(), &domain.Unit{
		PlayerID: 1, Type: domain.UnitTypeVillager, IsTrained: false, CurrentTask: domain.TaskTraining,
	})
	clubman, _ := uRepo.Create(context.Background(), &domain.Unit{
		PlayerID: 1, Type: "CLUBMAN", IsTrained: true, CurrentTask: domain.TaskIdle,
	})
	foreign, _ := uRepo.Create(context.Background(), &domain.Unit{
		PlayerID: 2, Type: domain.UnitTypeVillager, IsTrained: true, CurrentTask: domain.TaskIdle,
	})
	s := newActionService(pRepo, newFakeBuildingRepo(), uRepo, &fakeNotifier{}, now, 1)

	if _, err := s.AssignTask(context.Background(), 1, training.ID, model.AssignTaskReq{Task: "SLEEP"}); !errors.Is(err, domain.ErrInvalidTask) {
		t.Fatalf("期望 ErrInvalidTask, got=%v", err)
	}
	if _, err := s.AssignTask(context.Background(), 1, training.ID, model.AssignTaskReq{Task: "GATHER_FOOD"}); !errors.Is(err, domain.ErrUnitNotTrained) {
		t.Fatalf("期望 ErrUnitNotTrained, got=%v", err)
	}
	if _, err := s.AssignTask(context.Background(), 1, clubman.ID, model.AssignTaskReq{Task: "GATHER_FOOD"}); !errors.Is(err, domain.ErrNotAVillager) {
		t.Fatalf("期望 ErrNotAVillager, got=%v", err)
	}
	if _, err := s.AssignTask(context.Background(), 1, foreign.ID, model.AssignTaskReq{Task: "GATHER_FOOD"}); !errors.Is(err, domain.ErrUnitNotFound) {
		t.Fatalf("期望 ErrUnitNotFound, got=%v", err)
	}
	if _, err := s.AssignTask(context.Background(), 1, 404, model.AssignTaskReq{Task: "GATHER_FOOD"}); !errors.Is(err, domain.ErrUnitNotFound) {
		t.Fatalf("期望 ErrUnitNotFound, got=%v", err)
	}
}

func TestBuild_零成本零耗时建筑直接落成(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	notifier := &fakeNotifier{}
	s := newActionService(pRepo, newFakeBuildingRepo(), newFakeUnitRepo(), notifier, now, 1)

	b, err := s.Build(context.Background(), 1, model.BuildReq{BuildingType: "TOWN_CENTER", GridX: 5, GridY: 5})
	if err != nil {
		t.Fatalf("期望零成本建造成功, got=%v", err)
	}
	if !b.IsComplete {
		t.Fatalf("期望零耗时建筑创建即完工, got=%+v", b)
	}
	if !b.ConstructionCompletesAt.Equal(now) {
		t.Fatalf("期望完工时刻就是当前时刻, got=%v", b.ConstructionCompletesAt)
	}
	if got := pRepo.players[1].Resources; got != (domain.Resources{Food: 200, Wood: 200, Gold: 100, Stone: 100}) {
		t.Fatalf("期望资源不变, got=%+v", got)
	}
	if len(notifier.events) != 1 || notifier.events[0].name != "game-state-update" {
		t.Fatalf("期望推送一条 game-state-update, got=%+v", notifier.events)
	}
}

func TestBuild_落库失败不留下扣费(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	bRepo.createErr = domain.ErrSystemUnavailable
	notifier := &fakeNotifier{}
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), notifier, now, 1)

	_, err := s.Build(context.Background(), 1, model.BuildReq{BuildingType: "HOUSE", GridX: 10, GridY: 10})
	if !errors.Is(err, domain.ErrSystemUnavailable) {
		t.Fatalf("期望透传落库错误, got=%v", err)
	}
	if got := pRepo.players[1].Resources.Wood; got != 200 {
		t.Fatalf("期望扣费随事务回滚, 木=%d", got)
	}
	if len(bRepo.buildings) != 0 || len(notifier.events) != 0 {
		t.Fatalf("期望失败时既无建筑也无推送")
	}
}

func TestTrain_落库失败不留下扣费与人口占位(t *testing.T) {
	now := time.Unix(1700000000, 0)
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: newTestPlayer(1)}}
	bRepo := newFakeBuildingRepo()
	tc, _ := bRepo.Create(context.Background(), &domain.Building{
		PlayerID: 1, Type: "TOWN_CENTER", IsComplete: true,
	})
	uRepo := newFakeUnitRepo()
	uRepo.createErr = domain.ErrSystemUnavailable
	s := newActionService(pRepo, bRepo, uRepo, &fakeNotifier{}, now, 1)

	_, err := s.Train(context.Background(), 1, model.TrainReq{UnitType: "VILLAGER", BuildingID: tc.ID})
	if !errors.Is(err, domain.ErrSystemUnavailable) {
		t.Fatalf("期望透传落库错误, got=%v", err)
	}
	if p := pRepo.players[1]; p.Resources.Food != 200 || p.Population != 3 {
		t.Fatalf("期望扣费与人口占位随事务回滚, got=%+v", p)
	}
}

func TestBuild_并发重复提交只扣一次费(t *testing.T) {
	now := time.Unix(1700000000, 0)
	player := newTestPlayer(1)
	// 只够建一座 STORAGE_PIT（120 木）
	player.Resources = domain.Resources{Food: 200, Wood: 120, Gold: 100, Stone: 100}
	pRepo := &fakePlayerRepo{players: map[int]*domain.Player{1: player}}
	bRepo := newFakeBuildingRepo()
	s := newActionService(pRepo, bRepo, newFakeUnitRepo(), &fakeNotifier{}, now, 1)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.Build(context.Background(), 1,
				model.BuildReq{BuildingType: "STORAGE_PIT", GridX: n, GridY: n})
			errs <- err
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	var okCnt, insufficientCnt int
	for err := range errs {
		switch {
		case err == nil:
			okCnt++
		case errors.Is(err, domain.ErrInsufficientResources):
			insufficientCnt++
		default:
			t.Fatalf("意外错误: %v", err)
		}
	}
	if okCnt != 1 || insufficientCnt != 1 {
		t.Fatalf("期望恰好一次成功一次资源不足, 成功=%d 不足=%d", okCnt, insufficientCnt)
	}
	if got := pRepo.players[1].Resources.Wood; got != 0 {
		t.Fatalf("期望余额只被扣掉一次, 木=%d", got)
	}
	if len(bRepo.buildings) != 1 {
		t.Fatalf("期望只落库一座建筑, got=%d", len(bRepo.buildings))
	}
}
