package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
)
var ctx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb
}

// ConnectRedis sets the global client. Redis is an optional dependency:
// every helper below is nil-safe and cache reads fall through to the DB.
func ConnectRedis() {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		log.Printf("REDIS_ADDRESS not set; running without cache")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("failed to connect redis at %s: %v; running without cache", address, err)
		return
	}
	rdb = client
	log.Printf("connected to redis")
}

func GetRedisObject(key string, dest interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	err = json.Unmarshal([]byte(val), &dest)
	if err != nil {
		return false, err
	}
	return true, nil
}

func SetRedisObject(key string, obj interface{}, expiration time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, string(b), expiration).Err()
}

func RemoveRedisKey(key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key).Err()
}
