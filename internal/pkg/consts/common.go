package consts

const (
	MimePrefixImage = "image"
)

// 集合名
const (
	CollStations = "stations"
	CollPrograms = "programs"
	CollMedia    = "media"
	CollJocks    = "jocks"
	CollUsers    = "users"
)

// MediaOrphanKey 补偿删除失败的对象 key 集合，由定时任务兜底回收
const MediaOrphanKey = "media:orphan_keys"

// TokenDenyPrefix 已注销 Token 的签名黑名单
const TokenDenyPrefix = "auth:deny:"

const (
	// MaxUploadSize 单文件上传上限
	MaxUploadSize = 10 << 20
	// CacheControlImmutable 对象存储上传时的缓存头
	CacheControlImmutable = "max-age=31536000"
)
