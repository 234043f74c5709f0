package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// 静态数值表：建筑/单位/地图资源的全部平衡常量。
// 启动时从包目录下的 JSON 一次性加载，加载后只读；
// 任何不一致（重复类型、单位引用不存在的建筑、未知时代）直接 panic。

const (
	buildingsFile    = "Buildings.json"
	unitsFile        = "Units.json"
	mapResourcesFile = "MapResources.json"
)

// Cost 是一次消耗的四元组。
type Cost struct {
	Food  int `json:"food"`
	Wood  int `json:"wood"`
	Gold  int `json:"gold"`
	Stone int `json:"stone"`
}

type BuildingDefinition struct {
	Type               string `json:"type"`
	Name               string `json:"name"`
	RequiredAge        string `json:"requiredAge"`
	Cost               Cost   `json:"cost"`
	BuildTime          int    `json:"buildTime"` // 秒
	PopulationProvided int    `json:"populationProvided"`
	GridWidth          int    `json:"gridWidth"`
	GridHeight         int    `json:"gridHeight"`
	Description        string `json:"description"`
}

type UnitDefinition struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	RequiredAge      string `json:"requiredAge"`
	RequiredBuilding string `json:"requiredBuilding"`
	Cost             Cost   `json:"cost"`
	TrainingTime     int    `json:"trainingTime"` // 秒
	PopulationCost   int    `json:"populationCost"`
	Description      string `json:"description"`
}

type MapResourceDefinition struct {
	Type         string `json:"type"`
	ResourceType string `json:"resourceType"`
	GatherRate   int    `json:"gatherRate"`
	MaxAmount    int    `json:"maxAmount"`
}

// 全局常量（与数值表同级的起始配置）。
const (
	GridSize              = 50
	StartingPopulation    = 3
	StartingMaxPopulation = 5
	TownCenterHealth      = 2400
	DefaultBuildingHealth = 1000
	VillagerHealth        = 25
	VillagerAttack        = 3
	DefaultUnitHealth     = 25
	DefaultUnitAttack     = 5
)

// BuildingTownCenter 在初始化与血量特判里单独引用。
const BuildingTownCenter = "TOWN_CENTER"

// StartingResources 是注册时发给玩家的初始资源。
func StartingResources() Cost {
	return Cost{Food: 200, Wood: 200, Gold: 100, Stone: 100}
}

var ageRanks = map[string]int{
	"DAWN":      0,
	"HEARTH":    1,
	"EXPANSION": 2,
	"GILDED":    3,
}

// AgeRank 返回时代的序号（DAWN=0 … GILDED=3），未知时代返回 -1。
func AgeRank(age string) int {
	r, ok := ageRanks[age]
	if !ok {
		return -1
	}
	return r
}

type tables struct {
	buildings    map[string]*BuildingDefinition
	units        map[string]*UnitDefinition
	mapResources map[string]*MapResourceDefinition
}

var conf = &tables{}

type jsonIndex[T any] struct {
	Title string `json:"title"`
	List  []T    `json:"list"`
}

// Load 加载全部数值表。进程启动时调用一次。
func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load gamedata failed: runtime.Caller(0) error")
	}
	baseDir := filepath.Dir(file)

	conf.buildings = loadTable[BuildingDefinition](filepath.Join(baseDir, buildingsFile),
		func(d *BuildingDefinition) string { return d.Type })
	conf.units = loadTable[UnitDefinition](filepath.Join(baseDir, unitsFile),
		func(d *UnitDefinition) string { return d.Type })
	conf.mapResources = loadTable[MapResourceDefinition](filepath.Join(baseDir, mapResourcesFile),
		func(d *MapResourceDefinition) string { return d.Type })

	validate()
}

func loadTable[T any](path string, key func(*T) string) map[string]*T {
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("load gamedata failed: read %q: %w", path, err))
	}

	var idx jsonIndex[T]
	if err := json.Unmarshal(raw, &idx); err != nil {
		panic(fmt.Errorf("load gamedata failed: unmarshal %q: %w", path, err))
	}

	out := make(map[string]*T, len(idx.List))
	for i := range idx.List {
		item := idx.List[i]
		k := key(&item)
		if k == "" {
			panic(fmt.Errorf("load gamedata failed: empty type in %q", path))
		}
		if _, exists := out[k]; exists {
			panic(fmt.Errorf("load gamedata failed: duplicate type=%q in %q", k, path))
		}
		out[k] = &item
	}
	return out
}

// validate 保证数值表内部一致：时代已知、单位的出产建筑存在。
func validate() {
	for t, b := range conf.buildings {
		if AgeRank(b.RequiredAge) < 0 {
			panic(fmt.Errorf("gamedata: building %q has unknown age %q", t, b.RequiredAge))
		}
	}
	for t, u := range conf.units {
		if AgeRank(u.RequiredAge) < 0 {
			panic(fmt.Errorf("gamedata: unit %q has unknown age %q", t, u.RequiredAge))
		}
		if _, ok := conf.buildings[u.RequiredBuilding]; !ok {
			panic(fmt.Errorf("gamedata: unit %q requires unknown building %q", t, u.RequiredBuilding))
		}
	}
}

func GetBuilding(buildingType string) (*BuildingDefinition, bool) {
	d, ok := conf.buildings[buildingType]
	return d, ok
}

func GetUnit(unitType string) (*UnitDefinition, bool) {
	d, ok := conf.units[unitType]
	return d, ok
}

func GetMapResource(resourceType string) (*MapResourceDefinition, bool) {
	d, ok := conf.mapResources[resourceType]
	return d, ok
}

// MapResourceTypes 返回全部地图资源类型（供注册时铺设初始资源点）。
func MapResourceTypes() []*MapResourceDefinition {
	out := make([]*MapResourceDefinition, 0, len(conf.mapResources))
	for _, d := range conf.mapResources {
		out = append(out, d)
	}
	return out
}
