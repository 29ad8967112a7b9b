package inmemorycache

import (
	"time"

	"github.com/coocood/freecache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/flowsentry/flowsentry/pkg/metric"
)

const (
	inMemoryCacheSizeInBytes = "IN_MEMORY_CACHE_SIZE_IN_BYTES"
	defaultCacheSizeInBytes  = 32 * 1024 * 1024

	metricUpdateInterval = 1 * time.Minute
	infiniteExpiry       = -1

	hitRateMetric       = "in_memory_cache_hit_rate"
	itemCountMetric     = "in_memory_cache_item_count"
	evacuateCountMetric = "in_memory_cache_evacuate_count"
)

// V1 wraps freecache behind the InMemoryCache interface.
type V1 struct {
	cacheName  string
	inMemCache *freecache.Cache
}

func newV1InMemoryCache(cacheName string) InMemoryCache {
	sizeInBytes := defaultCacheSizeInBytes
	if viper.IsSet(inMemoryCacheSizeInBytes) {
		sizeInBytes = viper.GetInt(inMemoryCacheSizeInBytes)
	} else {
		log.Warn().Msgf("env::%s is not set, defaulting to %d bytes", inMemoryCacheSizeInBytes, sizeInBytes)
	}

	v1 := &V1{
		cacheName:  cacheName,
		inMemCache: freecache.NewCache(sizeInBytes),
	}
	go v1.publishMetric()
	return v1
}

func (imc *V1) Get(key []byte) ([]byte, error) {
	return imc.inMemCache.Get(key)
}

func (imc *V1) Set(key, value []byte) error {
	return imc.inMemCache.Set(key, value, infiniteExpiry)
}

func (imc *V1) SetEx(key, value []byte, expiryInSec int) error {
	return imc.inMemCache.Set(key, value, expiryInSec)
}

func (imc *V1) Delete(key []byte) bool {
	return imc.inMemCache.Del(key)
}

// publishMetric publishes the in-memory-cache stats every metricUpdateInterval
func (imc *V1) publishMetric() {
	ticker := time.NewTicker(metricUpdateInterval)
	defer ticker.Stop()
	tags := metric.BuildTag(metric.NewTag("cache_name", imc.cacheName))
	for range ticker.C {
		metric.Gauge(hitRateMetric, imc.inMemCache.HitRate(), tags)
		metric.Gauge(itemCountMetric, float64(imc.inMemCache.EntryCount()), tags)
		metric.Gauge(evacuateCountMetric, float64(imc.inMemCache.EvacuateCount()), tags)
	}
}
