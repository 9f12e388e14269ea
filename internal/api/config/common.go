package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Sweep  SweepConfig  `mapstructure:"sweep"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"` // dev 或 prod，决定对象存储 key 前缀
}

// IsProd 是否为生产环境
func (s ServerConfig) IsProd() bool {
	return s.Env == "prod" || s.Env == "production"
}

// EnvPrefix 对象存储 key 的环境前缀
func (s ServerConfig) EnvPrefix() string {
	if s.IsProd() {
		return "prod"
	}
	return "dev"
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// JWTConfig JWT签发配置
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// MinIOConfig 对象存储配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// SweepConfig 孤儿媒体清理配置
type SweepConfig struct {
	Enable  bool `mapstructure:"enable"`  // 是否注册每日定时清理
	Execute bool `mapstructure:"execute"` // true 执行删除，false 仅预览
}
