package ioc

import (
	"time"

	"github.com/ego-component/eetcd"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/meoying/dlock-go"
	dlockredis "github.com/meoying/dlock-go/redis"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	// MySQL 驱动
	_ "github.com/go-sql-driver/mysql"

	"communication-platform/internal/pkg/idempotent"
	"communication-platform/internal/pkg/ratelimit"
	"communication-platform/internal/repository/dao"
)

func InitDB() *egorm.Component {
	db := egorm.Load("mysql").Build()
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr string `yaml:"addr"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("redis", &cfg); err != nil {
		panic(err)
	}
	return redis.NewClient(&redis.Options{Addr: cfg.Addr})
}

func InitDistributedLock(client *redis.Client) dlock.Client {
	return dlockredis.NewClient(client)
}

func InitLocalCache() *ca.Cache {
	const defaultExpiration = 10 * time.Minute
	const cleanupInterval = time.Minute
	return ca.New(defaultExpiration, cleanupInterval)
}

func InitEtcdClient() *eetcd.Component {
	return eetcd.Load("etcd").Build()
}

func InitLimiter(client *redis.Client) ratelimit.Limiter {
	const window = time.Second
	const rate = 100
	return ratelimit.NewRedisSlidingWindowLimiter(client, window, rate)
}

func InitIdempotencyService(client *redis.Client) idempotent.IdempotencyService {
	type Config struct {
		// mode为bloom时用布隆过滤器方案，要求Redis带RedisBloom模块
		Mode string `yaml:"mode"`
	}
	const expiry = 24 * time.Hour
	var cfg Config
	_ = econf.UnmarshalKey("idempotency", &cfg)
	if cfg.Mode == "bloom" {
		return idempotent.NewRedisMix(client, expiry)
	}
	return idempotent.NewRedisIdempotencyService(client, expiry)
}
