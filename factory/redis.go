package factory

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/magic-lib/go-plat-startupcfg/startupcfg"
	"github.com/magic-lib/go-plat-utils/conv"
	"github.com/magic-lib/go-plat-utils/logs"
	redisv9 "github.com/redis/go-redis/v9"
)

var defaultPingTimeout = 3 * time.Second

// Redis 返回创建 redis 客户端的函数。每个客户端只持有一个连接，由资源池负责复用。
// PingTimeout 大于0时创建后检查连接。
func Redis(redisCfg *startupcfg.RedisConfig) func() (*redis.Client, error) {
	return func() (*redis.Client, error) {
		if redisCfg == nil {
			return nil, fmt.Errorf("redis config is nil")
		}
		cli := redis.NewClient(RedisOption(redisCfg))
		if redisCfg.PingTimeout <= 0 {
			return cli, nil
		}
		if err := checkConnection(cli, redisCfg.PingTimeout); err != nil {
			logs.DefaultLogger().Error("[factory-redis] ping error:", err.Error())
			_ = cli.Close()
			return nil, err
		}
		return cli, nil
	}
}

// RedisOption 根据配置生成单连接的 redis.Options
func RedisOption(redisCfg startupcfg.Database) *redis.Options {
	dialOpt := &redis.Options{}
	if dataInt, ok := conv.Int64(redisCfg.DatabaseName()); ok {
		dialOpt.DB = int(dataInt)
	}
	dialOpt.Username = redisCfg.User()
	dialOpt.Password = redisCfg.Password()

	if useTLS(redisCfg) {
		dialOpt.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         redisCfg.ServerAddress(),
		}
	}

	dialOpt.Addr = redisCfg.ServerAddress()
	dialOpt.Network = redisCfg.ProtocolName()
	dialOpt.PoolSize = 1
	dialOpt.MinIdleConns = 0
	return dialOpt
}

// useTLS 优先读取 RedisConfig.TLS，其次读取扩展配置 tls
func useTLS(redisCfg startupcfg.Database) bool {
	if rc, ok := redisCfg.(*startupcfg.RedisConfig); ok && rc != nil && rc.TLS {
		return true
	}
	if oneTls, ok := redisCfg.Extend("tls"); ok {
		tlsBool, ok := conv.Bool(oneTls)
		return ok && tlsBool
	}
	return false
}

// RedisRing 返回创建 redis v9 Ring 客户端的函数
func RedisRing(opt *redisv9.RingOptions) func() (*redisv9.Ring, error) {
	return func() (*redisv9.Ring, error) {
		if opt == nil || len(opt.Addrs) == 0 {
			return nil, fmt.Errorf("redis ring addrs is empty")
		}
		ringOpt := *opt
		return redisv9.NewRing(&ringOpt), nil
	}
}

func checkConnection(conn *redis.Client, pingTimeout time.Duration) error {
	timeout := defaultPingTimeout
	if pingTimeout > 0 {
		timeout = pingTimeout
	}
	newCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return conn.Ping(newCtx).Err()
}
