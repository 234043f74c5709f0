package gamedata

import "testing"

func TestLoad_数值表一致性(t *testing.T) {
	Load()

	house, ok := GetBuilding("HOUSE")
	if !ok {
		t.Fatalf("期望存在 HOUSE 定义")
	}
	if house.Cost.Wood != 30 || house.BuildTime != 60 || house.PopulationProvided != 5 {
		t.Fatalf("HOUSE 数值不符: %+v", house)
	}

	villager, ok := GetUnit("VILLAGER")
	if !ok {
		t.Fatalf("期望存在 VILLAGER 定义")
	}
	if villager.RequiredBuilding != "TOWN_CENTER" || villager.Cost.Food != 50 {
		t.Fatalf("VILLAGER 数值不符: %+v", villager)
	}

	// 每个单位的出产建筑都必须有定义
	for _, ut := range []string{"VILLAGER", "CLUBMAN", "SLINGER", "SCOUT"} {
		u, ok := GetUnit(ut)
		if !ok {
			t.Fatalf("缺少单位定义 %q", ut)
		}
		if _, ok := GetBuilding(u.RequiredBuilding); !ok {
			t.Fatalf("单位 %q 引用了不存在的建筑 %q", ut, u.RequiredBuilding)
		}
	}

	if len(MapResourceTypes()) != 4 {
		t.Fatalf("期望 4 种地图资源, got=%d", len(MapResourceTypes()))
	}
}

func TestAgeRank_时代排序(t *testing.T) {
	cases := []struct {
		age  string
		rank int
	}{
		{"DAWN", 0},
		{"HEARTH", 1},
		{"EXPANSION", 2},
		{"GILDED", 3},
		{"IRON", -1},
	}
	for _, c := range cases {
		if got := AgeRank(c.age); got != c.rank {
			t.Fatalf("AgeRank(%q)=%d, want %d", c.age, got, c.rank)
		}
	}
}

func TestGetBuilding_未知类型(t *testing.T) {
	Load()
	if _, ok := GetBuilding("CASTLE"); ok {
		t.Fatalf("未定义的建筑类型不应命中")
	}
}
