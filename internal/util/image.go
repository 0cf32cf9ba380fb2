package util

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "application/json"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}

// NormalizeBase64Image 去掉 data URL 前缀，校验长度并确认内容是图片。
// 空字符串原样返回（表示没有图片）。
func NormalizeBase64Image(value string, maxChars int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	if strings.HasPrefix(value, "data:") {
		idx := strings.Index(value, ",")
		if idx < 0 {
			return "", fmt.Errorf("%w: data URL sin contenido", ErrInvalidInput)
		}
		value = value[idx+1:]
	}

	if maxChars > 0 && len(value) > maxChars {
		return "", fmt.Errorf("%w: la imagen supera los %d caracteres", ErrInvalidInput, maxChars)
	}

	// Android 的 Base64.DEFAULT 每 76 个字符换行
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(compact, "="))
		if err != nil {
			return "", fmt.Errorf("%w: la imagen no es base64 válido", ErrInvalidInput)
		}
	}

	mimeType, err := ValidateMimeType(bytes.NewReader(raw), []string{MimeImage})
	if err != nil || !IsImage(mimeType) {
		return "", fmt.Errorf("%w: el contenido no es una imagen (%s)", ErrInvalidInput, mimeType)
	}

	return value, nil
}
