package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_只按错误码匹配(t *testing.T) {
	base := NewBiz("INSUFFICIENT_RESOURCES", "资源不足")
	derived := base.WithData("cost", 30).WithData("reason", "WOOD_SHORT")

	if !errors.Is(derived, base) {
		t.Fatalf("期望派生错误与哨兵错误按 code 匹配")
	}
	if errors.Is(derived, NewBiz("AGE_LOCKED", "时代不足")) {
		t.Fatalf("不同 code 不应匹配")
	}
}

func TestWithData_不污染哨兵错误(t *testing.T) {
	sentinel := NewBiz("POPULATION_CAP", "人口已达上限")
	_ = sentinel.WithData("population", 3)

	if sentinel.Data() != nil {
		t.Fatalf("WithData 应派生新对象，哨兵错误 data=%v", sentinel.Data())
	}
}

func TestWithCause_系统错误只捕获一次栈(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	first := ErrUnavailable.WithCause(cause)
	if len(first.Stack()) == 0 {
		t.Fatalf("期望系统错误首次挂 cause 时捕获栈")
	}

	second := ErrInternal.WithCause(first)
	if len(second.Stack()) != 0 {
		t.Fatalf("下层已有栈时不应重复捕获")
	}
	if !errors.Is(second, ErrUnavailable) {
		t.Fatalf("期望沿 cause 链可溯源到 ErrUnavailable")
	}
}

func TestReason_从data中提取(t *testing.T) {
	err := NewBiz("INVALID_TYPE", "无效类型").WithData("reason", "UNKNOWN_BUILDING")
	if err.Reason() != "UNKNOWN_BUILDING" {
		t.Fatalf("reason=%q", err.Reason())
	}
	if NewBiz("X", "").Reason() != "" {
		t.Fatalf("无 data 时 reason 应为空")
	}
}
