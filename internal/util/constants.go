package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
	MimeJSON  = "application/json"
)

// 移动端滑块的取值范围与默认位置
const (
	SliderMin     = 0.0
	SliderMax     = 10.0
	SliderDefault = 5.0
)

// NumAreas 结果字符串固定包含 5 个领域
const NumAreas = 5
