package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration 配置错误，如 minimum 大于 maximum
	ErrConfiguration = errors.New("invalid pool configuration")
	// ErrCapacityExceeded 池已满，无法再创建新资源
	ErrCapacityExceeded = errors.New("cannot generate new object for full pool")
	// ErrForeignObject 归还了不是本池创建的资源
	ErrForeignObject = errors.New("pool does not manage this object")
	// ErrFactoryRequired 未设置创建函数
	ErrFactoryRequired = errors.New("new function is required")
	// ErrDoubleReturn 严格模式下重复归还
	ErrDoubleReturn = errors.New("object is already idle")
	// ErrLeaseReleased 租约已释放
	ErrLeaseReleased = errors.New("lease already released")
	// ErrNotOwner 非创建者协程调用
	ErrNotOwner = errors.New("pool used outside its owner goroutine")
	// ErrDuplicateObject 创建函数返回了池中已有的资源
	ErrDuplicateObject = errors.New("factory returned an object the pool already manages")
	// ErrPoolExists 重复注册
	ErrPoolExists = errors.New("pool already registered")
)

func poolError(name string, err error) error {
	if name == "" {
		return err
	}
	return fmt.Errorf("pool %s: %w", name, err)
}

// displayName 未命名的池在日志和监控中显示为 default
func displayName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
