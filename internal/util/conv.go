package util

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ParseID 解析查询参数或 JSON 中的 ID，兼容 "5"、5、5.0 等写法；负数与小数无效
func ParseID(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
	case float32:
		if float64(n) != math.Trunc(float64(n)) {
			return 0, false
		}
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, false
		}
	}
	id, err := cast.ToUintE(v)
	if err != nil {
		return 0, false
	}
	return id, true
}
