package service

import (
	"context"
	"encoding/json"
	"errors"
	"escolavision_backend/internal/config"
	"escolavision_backend/internal/util"
	"escolavision_backend/pkg/logger"
	"escolavision_backend/pkg/tracing"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const geoCachePrefix = "geo:"

// GeoCache 地理数据缓存，未命中时返回 ErrCacheMiss
type GeoCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

var ErrCacheMiss = errors.New("cache miss")

// RedisGeoCache 基于 Redis 的缓存实现
type RedisGeoCache struct {
	Client *redis.Client
}

func (c *RedisGeoCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return v, err
}

func (c *RedisGeoCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

// GeoService 代理 geoapi.es，API key 只保存在服务器端
type GeoService struct {
	mu     sync.RWMutex
	cfg    config.GeoAPIConfig
	client *http.Client
	cache  GeoCache
}

// NewGeoService cache 可以为 nil（未配置 Redis）
func NewGeoService(cfg config.GeoAPIConfig, cache GeoCache) *GeoService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GeoService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		cache:  cache,
	}
}

// UpdateConfig 配置文件热更新时调用
func (s *GeoService) UpdateConfig(cfg config.GeoAPIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *GeoService) current() config.GeoAPIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *GeoService) Comunidades(ctx context.Context) (json.RawMessage, error) {
	return s.fetch(ctx, "comunidades", nil)
}

func (s *GeoService) Provincias(ctx context.Context, ccom string) (json.RawMessage, error) {
	if err := validateGeoCode("CCOM", ccom); err != nil {
		return nil, err
	}
	return s.fetch(ctx, "provincias", url.Values{"CCOM": {ccom}})
}

func (s *GeoService) Municipios(ctx context.Context, cpro string) (json.RawMessage, error) {
	if err := validateGeoCode("CPRO", cpro); err != nil {
		return nil, err
	}
	return s.fetch(ctx, "municipios", url.Values{"CPRO": {cpro}})
}

// validateGeoCode 国家统计局（INE）编码，两位数字
func validateGeoCode(name, code string) error {
	if util.Validate.Var(code, "required,numeric,len=2") != nil {
		return fmt.Errorf("%w: %s debe ser un código de dos dígitos", util.ErrInvalidInput, name)
	}
	return nil
}

func (s *GeoService) fetch(ctx context.Context, resource string, params url.Values) (json.RawMessage, error) {
	cacheKey := geoCachePrefix + resource
	if len(params) > 0 {
		cacheKey += ":" + params.Encode()
	}

	if s.cache != nil {
		if v, err := s.cache.Get(ctx, cacheKey); err == nil {
			return json.RawMessage(v), nil
		} else if !errors.Is(err, ErrCacheMiss) {
			logger.Log.Warn("Geo cache unavailable", zap.Error(err))
		}
	}

	cfg := s.current()
	data, err := s.upstream(ctx, cfg, resource, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, cacheKey, string(data), cfg.CacheTTL); err != nil {
			logger.Log.Warn("Failed to cache geo data", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return data, nil
}

func (s *GeoService) upstream(ctx context.Context, cfg config.GeoAPIConfig, resource string, params url.Values) (json.RawMessage, error) {
	ctx, span := tracing.Tracer.Start(ctx, "geoapi "+resource)
	defer span.End()

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("type", "JSON")
	q.Set("key", cfg.Key)
	sandbox := "0"
	if cfg.Sandbox {
		sandbox = "1"
	}
	q.Set("sandbox", sandbox)

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/" + resource + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geoapi respondió %d", util.ErrUpstream, resp.StatusCode)
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: respuesta de geoapi sin data", util.ErrUpstream)
	}
	return json.RawMessage(data.Raw), nil
}
