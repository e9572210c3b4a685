package pool

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultMaxUsage = 1 * time.Minute

// BoundMode 决定 Maximum 限制的对象
type BoundMode int

const (
	// BoundIdle 创建新资源时比较空闲列表长度，借出的资源不计入
	BoundIdle BoundMode = iota
	// BoundTotal 比较池创建过的资源总数
	BoundTotal
)

func (m BoundMode) String() string {
	switch m {
	case BoundIdle:
		return "idle"
	case BoundTotal:
		return "total"
	default:
		return fmt.Sprintf("BoundMode(%d)", int(m))
	}
}

// ResPoolConfig 资源池结构体，传入参数
type ResPoolConfig[T comparable] struct {
	Name         string                // 池名称，用于错误、日志和监控
	New          func() (T, error)     // 创建新资源的函数
	Minimum      *int                  // 初始化时预创建数量，nil 表示不预创建
	Maximum      *int                  // 最大资源数量，nil 表示不限制
	BoundMode    BoundMode             // Maximum 的判定方式
	StrictReturn bool                  // 是否拒绝重复归还
	OwnerOnly    bool                  // 是否只允许创建池的协程使用
	MaxUsage     time.Duration         // 借出超过该时长记为超期
	Registerer   prometheus.Registerer // 监控注册器，nil 不注册
}

// Bound 返回 n 的指针，方便填写 Minimum/Maximum
func Bound(n int) *int {
	return &n
}

func copyBound(n *int) *int {
	if n == nil {
		return nil
	}
	return Bound(*n)
}

// FactoryOf 把不会失败的构造函数包装为 New
func FactoryOf[T any](fn func() T) func() (T, error) {
	return func() (T, error) {
		return fn(), nil
	}
}

func (c *ResPoolConfig[T]) validate() error {
	if c.New == nil {
		return poolError(c.Name, ErrFactoryRequired)
	}
	if c.Minimum != nil && *c.Minimum < 0 {
		return poolError(c.Name, fmt.Errorf("%w: minimum must not be negative", ErrConfiguration))
	}
	if c.Maximum != nil && *c.Maximum < 0 {
		return poolError(c.Name, fmt.Errorf("%w: maximum must not be negative", ErrConfiguration))
	}
	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return poolError(c.Name, fmt.Errorf("%w: minimum cannot exceed maximum", ErrConfiguration))
	}
	if c.BoundMode != BoundIdle && c.BoundMode != BoundTotal {
		return poolError(c.Name, fmt.Errorf("%w: unknown bound mode %s", ErrConfiguration, c.BoundMode))
	}
	if c.MaxUsage <= 0 {
		c.MaxUsage = defaultMaxUsage
	}
	return nil
}
