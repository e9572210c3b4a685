package pool

import (
	"sync/atomic"
	"time"
)

// Lease 借出凭证，Release 将资源归还给借出它的池，只能成功归还一次
type Lease[T comparable] struct {
	pool     *CommPool[T]
	res      *resInfo[T]
	usedTime time.Time
	released atomic.Bool
}

var _ Resource[any] = (*Lease[any])(nil)

func newLease[T comparable](p *CommPool[T], res *resInfo[T]) *Lease[T] {
	return &Lease[T]{pool: p, res: res, usedTime: res.usedTime}
}

// Get 借出的资源
func (l *Lease[T]) Get() T {
	return l.res.resource
}

func (l *Lease[T]) Id() string {
	return l.res.id
}

func (l *Lease[T]) CreateTime() time.Time {
	return l.res.createTime
}

// UsedTime 借出时间
func (l *Lease[T]) UsedTime() time.Time {
	return l.usedTime
}

// Released 是否已归还
func (l *Lease[T]) Released() bool {
	return l.released.Load()
}

// Release 归还资源，重复调用返回 ErrLeaseReleased；归还失败时凭证仍可再次使用
func (l *Lease[T]) Release() error {
	if !l.released.CompareAndSwap(false, true) {
		return poolError(l.pool.cfg.Name, ErrLeaseReleased)
	}
	if err := l.pool.ReturnObject(l.res.resource); err != nil {
		l.released.Store(false)
		return err
	}
	return nil
}
