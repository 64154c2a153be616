package config

// Config 配置主体
type Config struct {
	Server      ServerConfig `mapstructure:"server"`
	Environment string       `mapstructure:"environment"`
	Mongo       MongoConfig  `mapstructure:"mongo"`
	Redis       RedisConfig  `mapstructure:"redis"`
	MinIO       MinIOConfig  `mapstructure:"minio"`
	JWT         JWTConfig    `mapstructure:"jwt"`
	SMTP        SMTPConfig   `mapstructure:"smtp"`
	Upload      UploadConfig `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig 文档数据库配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Bucket     string `mapstructure:"bucket"`
	Region     string `mapstructure:"region"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	PublicBase string `mapstructure:"public_base"`
}

// JWTConfig 鉴权配置（协作方）
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// SMTPConfig 邮件配置（协作方，联系消息通知使用）
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// UploadConfig 上传配置
type UploadConfig struct {
	MaxSizeMB      int `mapstructure:"max_size_mb"`
	DefaultQuality int `mapstructure:"default_quality"`
}
