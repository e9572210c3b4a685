package pool

import (
	cmap "github.com/orcaman/concurrent-map"
)

var (
	globalPool = cmap.New()
)

// GetGlobalPool 获取全局注册的池，类型由调用方断言
func GetGlobalPool(namespace, name string) any {
	key := getNsKey(namespace, name)
	if v, ok := globalPool.Get(key); ok {
		return v
	}
	return nil
}

// SetGlobalPool 注册全局池，同名时替换
func SetGlobalPool[T comparable](namespace, name string, pool *CommPool[T]) {
	if pool == nil {
		return
	}
	globalPool.Set(getNsKey(namespace, name), pool)
}

// GlobalPool 获取全局池并断言为 *CommPool[T]
func GlobalPool[T comparable](namespace, name string) (*CommPool[T], bool) {
	p, ok := GetGlobalPool(namespace, name).(*CommPool[T])
	return p, ok
}

// RemoveGlobalPool 删除全局池
func RemoveGlobalPool(namespace, name string) {
	globalPool.Remove(getNsKey(namespace, name))
}
