package pool

import (
	"github.com/timandy/routine"
)

// ownerGuard 记录创建池的协程，开启 OwnerOnly 时限制只能由它操作
type ownerGuard struct {
	enabled bool
	goid    uint64
}

func newOwnerGuard(enabled bool) ownerGuard {
	return ownerGuard{
		enabled: enabled,
		goid:    routine.Goid(),
	}
}

func (g ownerGuard) check(name string) error {
	if !g.enabled || routine.Goid() == g.goid {
		return nil
	}
	return poolError(name, ErrNotOwner)
}
