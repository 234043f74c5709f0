package domain

// Resources 是资源四元组。所有字段都是非负整数，
// 不变式由仓储层的条件更新保证（扣减永远不会把余额打成负数）。
type Resources struct {
	Food  int `json:"food"`
	Wood  int `json:"wood"`
	Gold  int `json:"gold"`
	Stone int `json:"stone"`
}

// Covers 报告每个分量是否都足以支付 cost。
func (r Resources) Covers(cost Resources) bool {
	return r.Food >= cost.Food &&
		r.Wood >= cost.Wood &&
		r.Gold >= cost.Gold &&
		r.Stone >= cost.Stone
}

func (r Resources) Add(other Resources) Resources {
	return Resources{
		Food:  r.Food + other.Food,
		Wood:  r.Wood + other.Wood,
		Gold:  r.Gold + other.Gold,
		Stone: r.Stone + other.Stone,
	}
}

func (r Resources) Sub(other Resources) Resources {
	return Resources{
		Food:  r.Food - other.Food,
		Wood:  r.Wood - other.Wood,
		Gold:  r.Gold - other.Gold,
		Stone: r.Stone - other.Stone,
	}
}

// IsZero 报告是否四个分量全为 0（引擎据此跳过无产出玩家）。
func (r Resources) IsZero() bool {
	return r == Resources{}
}
