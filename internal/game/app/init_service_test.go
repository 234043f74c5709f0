package app

import (
	"context"
	"testing"
	"time"

	"DawnEmpire/internal/game/domain"
	"DawnEmpire/internal/shared/gamedata"
)

type fakeMapResourceRepo struct {
	created []*domain.MapResource
}

func (r *fakeMapResourceRepo) BatchCreate(ctx context.Context, resources []*domain.MapResource) error {
	r.created = append(r.created, resources...)
	return nil
}

func (r *fakeMapResourceRepo) ListByPlayer(ctx context.Context, playerID int) ([]*domain.MapResource, error) {
	var out []*domain.MapResource
	for _, m := range r.created {
		if m.PlayerID == playerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestSetupNewPlayer_中心城镇中心加三个空闲村民(t *testing.T) {
	now := time.Unix(1700000000, 0)
	bRepo := newFakeBuildingRepo()
	uRepo := newFakeUnitRepo()
	mRepo := &fakeMapResourceRepo{}
	s := NewInitService(bRepo, uRepo, mRepo, nopLogger{}, func() time.Time { return now })

	if err := s.SetupNewPlayer(context.Background(), 1); err != nil {
		t.Fatalf("期望初始化成功, got=%v", err)
	}

	buildings, _ := bRepo.ListByPlayer(context.Background(), 1)
	if len(buildings) != 1 {
		t.Fatalf("期望恰好一座初始建筑, got=%d", len(buildings))
	}
	tc := buildings[0]
	center := gamedata.GridSize / 2
	if tc.Type != gamedata.BuildingTownCenter || !tc.IsComplete {
		t.Fatalf("期望网格中心是已完工的城镇中心, got=%+v", tc)
	}
	if tc.GridX != center || tc.GridY != center {
		t.Fatalf("期望城镇中心位于 (%d,%d), got=(%d,%d)", center, center, tc.GridX, tc.GridY)
	}
	if tc.HealthMax != gamedata.TownCenterHealth {
		t.Fatalf("期望城镇中心血量=%d, got=%d", gamedata.TownCenterHealth, tc.HealthMax)
	}

	units, _ := uRepo.ListByPlayer(context.Background(), 1)
	if len(units) != gamedata.StartingPopulation {
		t.Fatalf("期望 %d 个初始村民, got=%d", gamedata.StartingPopulation, len(units))
	}
	for _, u := range units {
		if u.Type != domain.UnitTypeVillager || !u.IsTrained || u.CurrentTask != domain.TaskIdle {
			t.Fatalf("期望初始村民已训练且空闲, got=%+v", u)
		}
	}
}

func TestSetupNewPlayer_资源点数量与落点约束(t *testing.T) {
	now := time.Unix(1700000000, 0)
	mRepo := &fakeMapResourceRepo{}
	s := NewInitService(newFakeBuildingRepo(), newFakeUnitRepo(), mRepo, nopLogger{}, func() time.Time { return now })

	if err := s.SetupNewPlayer(context.Background(), 1); err != nil {
		t.Fatalf("期望初始化成功, got=%v", err)
	}

	want := 0
	for _, c := range resourcePlacements {
		want += c
	}
	points, _ := mRepo.ListByPlayer(context.Background(), 1)
	if len(points) != want {
		t.Fatalf("期望铺设 %d 个资源点, got=%d", want, len(points))
	}

	center := gamedata.GridSize / 2
	seen := map[[2]int]struct{}{}
	for _, p := range points {
		if p.GridX == center && p.GridY == center {
			t.Fatalf("城镇中心所在格不应有资源点")
		}
		if p.GridX < 0 || p.GridX >= gamedata.GridSize || p.GridY < 0 || p.GridY >= gamedata.GridSize {
			t.Fatalf("资源点越界: %+v", p)
		}
		key := [2]int{p.GridX, p.GridY}
		if _, dup := seen[key]; dup {
			t.Fatalf("资源点落点重复: %+v", p)
		}
		seen[key] = struct{}{}
		def, ok := gamedata.GetMapResource(p.Type)
		if !ok {
			t.Fatalf("未知资源点类型: %q", p.Type)
		}
		if p.Amount != def.MaxAmount || p.MaxAmount != def.MaxAmount {
			t.Fatalf("期望储量满格且等于上限=%d, got=%d/%d", def.MaxAmount, p.Amount, p.MaxAmount)
		}
	}
}

func TestSetupNewPlayer_同一玩家布局可复现(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s1 := NewInitService(newFakeBuildingRepo(), newFakeUnitRepo(), &fakeMapResourceRepo{}, nopLogger{}, func() time.Time { return now })
	s2 := NewInitService(newFakeBuildingRepo(), newFakeUnitRepo(), &fakeMapResourceRepo{}, nopLogger{}, func() time.Time { return now })

	a := s1.seedMapResources(7)
	b := s2.seedMapResources(7)
	if len(a) != len(b) {
		t.Fatalf("期望两次播种数量一致, got=%d/%d", len(a), len(b))
	}
	for i := range a {
		if *a[i] != *b[i] {
			t.Fatalf("期望第 %d 个资源点一致, got=%+v vs %+v", i, a[i], b[i])
		}
	}
}
