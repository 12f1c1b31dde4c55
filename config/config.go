package config

type GinConfig struct {
	Addr        string `yaml:"addr" mapstructure:"addr"`
	Mode        string `yaml:"mode" mapstructure:"mode"`
	EnablePprof bool   `yaml:"enablePprof" mapstructure:"enablePprof"`
}

func (GinConfig) Key() string {
	return "gin"
}

type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

func (LoggerConfig) Key() string {
	return "logger"
}

type MongoConfig struct {
	URI      string `yaml:"uri" mapstructure:"uri"`
	Database string `yaml:"database" mapstructure:"database"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

func (MongoConfig) Key() string {
	return "mongo"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (RedisConfig) Key() string {
	return "redis"
}

type KafkaConfig struct {
	Addrs         []string `yaml:"addrs" mapstructure:"addrs"`
	NotifyTopic   string   `yaml:"notifyTopic" mapstructure:"notifyTopic"`     // 通知事件写入的 topic
	JudgeTopic    string   `yaml:"judgeTopic" mapstructure:"judgeTopic"`       // 评测结果 topic
	ConsumerGroup string   `yaml:"consumerGroup" mapstructure:"consumerGroup"` // 评测结果消费组
}

func (KafkaConfig) Key() string {
	return "kafka"
}

type MySQLConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

func (MySQLConfig) Key() string {
	return "mysql"
}

// StoreConfig 状态存储驱动, mongo 或 memory
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
}

func (StoreConfig) Key() string {
	return "store"
}

// BusConfig 通知总线驱动, 可选 redis, kafka, noop, 多个驱动时扇出
type BusConfig struct {
	Drivers []string `yaml:"drivers" mapstructure:"drivers"`
	Timeout int      `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

func (BusConfig) Key() string {
	return "bus"
}

type StatusConfig struct {
	RecomputeRetries int `yaml:"recomputeRetries" mapstructure:"recomputeRetries"`
}

func (StatusConfig) Key() string {
	return "status"
}

type UserCacheConfig struct {
	Expiration int `yaml:"expiration" mapstructure:"expiration"` // 单位: 秒
}

func (UserCacheConfig) Key() string {
	return "userCache"
}

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type ReconcilerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	ActiveWindow int `yaml:"activeWindow" mapstructure:"activeWindow"` // 结束后仍需校正的时长, 单位: 小时
}

func (ReconcilerConfig) Key() string {
	return "reconciler"
}
