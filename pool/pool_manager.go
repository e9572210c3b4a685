package pool

import (
	"fmt"
	"slices"

	"github.com/magic-lib/go-plat-utils/logs"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/sync/singleflight"
)

// PoolManager 资源池注册表，按 namespace+name 维护同类型的池
type PoolManager[T comparable] struct {
	pools cmap.ConcurrentMap[string, *CommPool[T]]
	group singleflight.Group
}

// NewPoolManager 创建一个资源池管理器
func NewPoolManager[T comparable]() *PoolManager[T] {
	return &PoolManager[T]{
		pools: cmap.New[*CommPool[T]](),
	}
}

// getNsKey 获取namespace下的key，规范化
func getNsKey(ns string, key string) string {
	if ns != "" {
		return fmt.Sprintf("{%s}%s", ns, key)
	}
	return key
}

// SetPool 设置池，已存在时替换。被替换的池不会被关闭，已借出的资源仍归还给原来的池
func (gpm *PoolManager[T]) SetPool(namespace, name string, pool *CommPool[T]) {
	if pool == nil {
		return
	}
	key := getNsKey(namespace, name)
	if gpm.pools.Has(key) {
		logs.DefaultLogger().Warn("[pool-manager] replace pool:", key)
	}
	gpm.pools.Set(key, pool)
}

// Register 注册池，已存在时返回 ErrPoolExists
func (gpm *PoolManager[T]) Register(namespace, name string, pool *CommPool[T]) error {
	if pool == nil {
		return fmt.Errorf("pool %s: %w", getNsKey(namespace, name), ErrFactoryRequired)
	}
	key := getNsKey(namespace, name)
	if !gpm.pools.SetIfAbsent(key, pool) {
		return fmt.Errorf("pool %s: %w", key, ErrPoolExists)
	}
	return nil
}

func (gpm *PoolManager[T]) GetPool(namespace, name string) *CommPool[T] {
	key := getNsKey(namespace, name)
	if v, ok := gpm.pools.Get(key); ok {
		return v
	}
	return nil
}

// GetOrCreate 获取池，不存在时用 cfg 创建，并发调用只创建一次
func (gpm *PoolManager[T]) GetOrCreate(namespace, name string, cfg *ResPoolConfig[T]) (*CommPool[T], error) {
	key := getNsKey(namespace, name)
	if v, ok := gpm.pools.Get(key); ok {
		return v, nil
	}
	v, err, _ := gpm.group.Do(key, func() (interface{}, error) {
		if existing, ok := gpm.pools.Get(key); ok {
			return existing, nil
		}
		if cfg == nil {
			return nil, fmt.Errorf("pool %s: %w", key, ErrFactoryRequired)
		}
		newCfg := *cfg
		if newCfg.Name == "" {
			newCfg.Name = key
		}
		created, err := NewResPool(&newCfg)
		if err != nil {
			return nil, err
		}
		gpm.pools.Set(key, created)
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CommPool[T]), nil
}

// Remove 移除池，返回被移除的池
func (gpm *PoolManager[T]) Remove(namespace, name string) *CommPool[T] {
	v, ok := gpm.pools.Pop(getNsKey(namespace, name))
	if !ok {
		return nil
	}
	return v
}

// Names 已注册的key，排序后返回
func (gpm *PoolManager[T]) Names() []string {
	keys := gpm.pools.Keys()
	slices.Sort(keys)
	return keys
}
