// Package factory 提供常用资源的创建函数，可直接作为 pool.ResPoolConfig 的 New 使用
package factory

import (
	"sync/atomic"
	"time"
)

// Object 带序号的简单资源
type Object struct {
	Seq        int64
	CreateTime time.Time
}

// Sequence 每次调用创建一个序号递增的 *Object，序号从1开始
func Sequence() func() (*Object, error) {
	var seq atomic.Int64
	return func() (*Object, error) {
		return &Object{
			Seq:        seq.Add(1),
			CreateTime: time.Now(),
		}, nil
	}
}

// Counted 包装创建函数，记录被调用的次数
func Counted[T any](newFunc func() (T, error), calls *atomic.Int64) func() (T, error) {
	return func() (T, error) {
		calls.Add(1)
		return newFunc()
	}
}
