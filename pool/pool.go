package pool

import (
	"fmt"
	"sync"
	"time"

	"github.com/magic-lib/go-plat-utils/logs"
	"github.com/samber/lo"
)

// CommPool 通用资源池。资源按创建顺序排队借出，归还后可被再次借出，池不会销毁资源。
// T 作为资源的身份标识，指针类型按地址区分。
type CommPool[T comparable] struct {
	cfg ResPoolConfig[T]

	idle    []*resInfo[T]     // 空闲资源，先进先出
	managed map[T]*resInfo[T] // 本池创建过的全部资源
	tracker *borrowTracker    // 借出中的资源
	metrics *Metrics
	owner   ownerGuard

	mu sync.Mutex
}

// Stats 资源池快照
type Stats struct {
	Name      string
	Idle      int
	Borrowed  int
	Managed   int
	Minimum   *int
	Maximum   *int
	BoundMode BoundMode
}

// NewResPool 创建一个新的资源池，设置了 Minimum 时预先创建对应数量的资源
func NewResPool[T comparable](cfg *ResPoolConfig[T]) (*CommPool[T], error) {
	if cfg == nil {
		return nil, ErrFactoryRequired
	}
	p := new(CommPool[T])
	p.cfg = *cfg
	if err := p.cfg.validate(); err != nil {
		return nil, err
	}
	p.cfg.Minimum = copyBound(cfg.Minimum)
	p.cfg.Maximum = copyBound(cfg.Maximum)
	p.managed = make(map[T]*resInfo[T])
	p.tracker = newBorrowTracker()
	p.metrics = newMetrics(p.cfg.Name, p.cfg.Registerer)
	p.owner = newOwnerGuard(p.cfg.OwnerOnly)

	if p.cfg.Minimum != nil {
		p.idle = make([]*resInfo[T], 0, *p.cfg.Minimum)
		for i := 0; i < *p.cfg.Minimum; i++ {
			if _, err := p.generate(); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// generate 调用创建函数生成一个资源并放入空闲列表
func (p *CommPool[T]) generate() (*resInfo[T], error) {
	if p.cfg.Maximum != nil && p.boundSize() >= *p.cfg.Maximum {
		p.metrics.CapacityRejects.Inc()
		return nil, poolError(p.cfg.Name, ErrCapacityExceeded)
	}
	obj, err := p.cfg.New()
	if err != nil {
		logs.DefaultLogger().Error("[res-pool] create resource error:", err.Error())
		return nil, poolError(p.cfg.Name, fmt.Errorf("create resource: %w", err))
	}
	_, ok, err := lookupManaged(p.managed, obj)
	if err != nil {
		return nil, poolError(p.cfg.Name, fmt.Errorf("%w: %v", ErrConfiguration, err))
	}
	if ok {
		return nil, poolError(p.cfg.Name, ErrDuplicateObject)
	}
	res := newResInfo(obj)
	p.idle = append(p.idle, res)
	p.managed[obj] = res
	p.metrics.Generated.Inc()
	p.observe()
	return res, nil
}

// lookupManaged 查找资源，动态类型不可哈希(如 CommPool[any] 中的切片)时返回错误
func lookupManaged[T comparable](managed map[T]*resInfo[T], obj T) (res *resInfo[T], ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, ok = nil, false
			err = fmt.Errorf("unhashable object %T: %v", any(obj), r)
		}
	}()
	res, ok = managed[obj]
	return res, ok, nil
}

// boundSize Maximum 比较的当前数量
func (p *CommPool[T]) boundSize() int {
	if p.cfg.BoundMode == BoundTotal {
		return len(p.managed)
	}
	return len(p.idle)
}

// Borrow 借出最早进入空闲列表的资源，没有空闲资源时创建一个
func (p *CommPool[T]) Borrow() (*Lease[T], error) {
	if err := p.owner.check(p.cfg.Name); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.idle) <= 0 {
		if _, err := p.generate(); err != nil {
			return nil, err
		}
	}
	res := p.idle[0]
	p.idle[0] = nil
	p.idle = p.idle[1:]

	res.state = stateBorrowed
	res.usedTime = time.Now()
	p.tracker.add(res.id, res.usedTime)
	p.metrics.Borrows.Inc()
	p.observe()
	return newLease(p, res), nil
}

// BorrowObject 借出资源，返回资源本身和归还函数
func (p *CommPool[T]) BorrowObject() (T, func() error, error) {
	lease, err := p.Borrow()
	if err != nil {
		var zero T
		return zero, nil, err
	}
	return lease.Get(), lease.Release, nil
}

// ReturnObject 将资源放回空闲列表末尾，资源必须由本池创建
func (p *CommPool[T]) ReturnObject(obj T) error {
	if err := p.owner.check(p.cfg.Name); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	res, ok, err := lookupManaged(p.managed, obj)
	if err != nil || !ok {
		p.metrics.ForeignReturns.Inc()
		logs.DefaultLogger().Warn("[res-pool] return foreign object:", displayName(p.cfg.Name))
		return poolError(p.cfg.Name, ErrForeignObject)
	}
	if p.cfg.StrictReturn && res.state == stateIdle {
		return poolError(p.cfg.Name, ErrDoubleReturn)
	}
	res.state = stateIdle
	p.idle = append(p.idle, res)
	p.tracker.remove(res.id)
	p.metrics.Returns.Inc()
	p.observe()
	return nil
}

// Exec 借出一个资源执行 fun，结束后归还
func (p *CommPool[T]) Exec(fun func(c T) error) (err error) {
	lease, err := p.Borrow()
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lease.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return fun(lease.Get())
}

func (p *CommPool[T]) observe() {
	p.metrics.Idle.Set(float64(len(p.idle)))
	p.metrics.Managed.Set(float64(len(p.managed)))
}

// Name 池名称
func (p *CommPool[T]) Name() string {
	return p.cfg.Name
}

// Objects 当前可借出的资源数量
func (p *CommPool[T]) Objects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Minimum 配置的最小数量，未设置时第二个返回值为 false
func (p *CommPool[T]) Minimum() (int, bool) {
	if p.cfg.Minimum == nil {
		return 0, false
	}
	return *p.cfg.Minimum, true
}

// Maximum 配置的最大数量，未设置时第二个返回值为 false
func (p *CommPool[T]) Maximum() (int, bool) {
	if p.cfg.Maximum == nil {
		return 0, false
	}
	return *p.cfg.Maximum, true
}

// Managed 本池创建过的资源总数
func (p *CommPool[T]) Managed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.managed)
}

// Borrowed 借出中的资源数量，重复归还时同 Overdue 一样会偏少
func (p *CommPool[T]) Borrowed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.borrowedLocked()
}

func (p *CommPool[T]) borrowedLocked() int {
	return lo.CountBy(lo.Values(p.managed), func(res *resInfo[T]) bool {
		return res.state == stateBorrowed
	})
}

// Overdue 借出超过 MaxUsage 仍未归还的资源ID。
// 非严格模式下重复归还同一资源会让统计偏少，只有每次借出恰好归还一次时结果才准确。
func (p *CommPool[T]) Overdue() []string {
	return p.tracker.overdue(time.Now(), p.cfg.MaxUsage)
}

// Stats 返回当前状态快照
func (p *CommPool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Name:      p.cfg.Name,
		Idle:      len(p.idle),
		Borrowed:  p.borrowedLocked(),
		Managed:   len(p.managed),
		Minimum:   copyBound(p.cfg.Minimum),
		Maximum:   copyBound(p.cfg.Maximum),
		BoundMode: p.cfg.BoundMode,
	}
}
