package pool

import (
	"time"

	"github.com/magic-lib/go-plat-utils/id-generator/id"
	"github.com/magic-lib/go-plat-utils/utils"
)

type resState int

const (
	stateIdle resState = iota
	stateBorrowed
)

// Resource 借出资源的只读视图
type Resource[T any] interface {
	Get() T
	Id() string
	CreateTime() time.Time
	UsedTime() time.Time
}

// resInfo 用于记录资源及其获取时间
type resInfo[T any] struct {
	id         string    //资源ID
	resource   T         //具体资源
	state      resState  //空闲或借出
	usedTime   time.Time //最近一次借出时间
	createTime time.Time //创建时间
}

var _ Resource[any] = (*resInfo[any])(nil)

func newResInfo[T any](res T) *resInfo[T] {
	idStr := id.NewUUID()
	if idStr == "" {
		idStr = utils.RandomString(10)
	}
	return &resInfo[T]{
		id:         idStr,
		resource:   res,
		state:      stateIdle,
		createTime: time.Now(),
	}
}

func (r *resInfo[T]) Get() T {
	return r.resource
}
func (r *resInfo[T]) Id() string {
	return r.id
}
func (r *resInfo[T]) CreateTime() time.Time {
	return r.createTime
}
func (r *resInfo[T]) UsedTime() time.Time {
	return r.usedTime
}
