package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ReportKeyPrefix = "attendance:report:"
	reportIndexKey  = "attendance:report:index:"
)

func GetReportKey(employeeID, start, end string) string {
	return fmt.Sprintf("%s%s:%s:%s", ReportKeyPrefix, employeeID, start, end)
}

// GetReportIndexKey names the set of cached report keys for one employee.
func GetReportIndexKey(employeeID string) string {
	return reportIndexKey + employeeID
}

// Cache stores built reports in Redis. A nil client turns every call into a no-op.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *Cache {
	l := zap.L().Named("attendance.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.cache")
	}
	return &Cache{rdb: rdb, ttl: ttl, logger: l}
}

func (c *Cache) Get(ctx context.Context, key string) (Report, bool) {
	if c == nil || c.rdb == nil {
		return Report{}, false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return Report{}, false
	}
	var rep Report
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		return Report{}, false
	}
	return rep, true
}

func (c *Cache) Set(ctx context.Context, rep Report) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	key := GetReportKey(rep.EmployeeID, rep.Start, rep.End)
	index := GetReportIndexKey(rep.EmployeeID)

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, index, key)
	pipe.Expire(ctx, index, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateEmployee drops every cached report of the employee.
func (c *Cache) InvalidateEmployee(ctx context.Context, employeeID string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	index := GetReportIndexKey(employeeID)
	keys, err := c.rdb.SMembers(ctx, index).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys = append(keys, index)
	return c.rdb.Del(ctx, keys...).Err()
}
