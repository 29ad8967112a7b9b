package predict

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spaolacci/murmur3"

	"github.com/flowsentry/flowsentry/pkg/inmemorycache"
	"github.com/flowsentry/flowsentry/pkg/metric"
)

const cacheKeyPrefix = "pr:v1:"

// cacheKey hashes the coerced vector. The pipeline is deterministic and
// read-only for the process lifetime, so identical vectors always map to the
// same response.
func cacheKey(vector []float64) []byte {
	buf := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	h1, h2 := murmur3.Sum128(buf)

	key := make([]byte, len(cacheKeyPrefix)+16)
	copy(key, cacheKeyPrefix)
	binary.LittleEndian.PutUint64(key[len(cacheKeyPrefix):], h1)
	binary.LittleEndian.PutUint64(key[len(cacheKeyPrefix)+8:], h2)
	return key
}

func lookupCachedResponse(cache inmemorycache.InMemoryCache, key []byte, tags []string) (*PredictResponse, bool) {
	raw, err := cache.Get(key)
	if err != nil {
		metric.Incr("prediction_cache_miss", tags)
		return nil, false
	}
	var response PredictResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal cached prediction")
		metric.Incr("prediction_cache_miss", tags)
		return nil, false
	}
	metric.Incr("prediction_cache_hit", tags)
	return &response, true
}

func storeCachedResponse(cache inmemorycache.InMemoryCache, key []byte, response *PredictResponse, ttlSec int) {
	raw, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal prediction for caching")
		return
	}
	if ttlSec > 0 {
		err = cache.SetEx(key, raw, ttlSec)
	} else {
		err = cache.Set(key, raw)
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to store prediction in cache")
	}
}
