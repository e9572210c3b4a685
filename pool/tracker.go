package pool

import (
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

// borrowTracker 记录借出中的资源及借出时间，只做统计，不回收
type borrowTracker struct {
	leases *gocache.Cache
}

func newBorrowTracker() *borrowTracker {
	return &borrowTracker{
		leases: gocache.New(gocache.NoExpiration, 0),
	}
}

func (t *borrowTracker) add(resId string, usedTime time.Time) {
	t.leases.Set(resId, usedTime, gocache.NoExpiration)
}

func (t *borrowTracker) remove(resId string) {
	t.leases.Delete(resId)
}

// overdue 返回借出时间超过 maxUsage 的资源ID，按ID排序
func (t *borrowTracker) overdue(now time.Time, maxUsage time.Duration) []string {
	expired := lo.PickBy(t.leases.Items(), func(_ string, item gocache.Item) bool {
		usedTime, ok := item.Object.(time.Time)
		return ok && now.Sub(usedTime) > maxUsage
	})
	ids := lo.Keys(expired)
	slices.Sort(ids)
	return ids
}
