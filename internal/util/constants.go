package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	DBDriverMySQL    = "mysql"
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Redis key / channel
const (
	RedisEngineEventsChannel = "engine_events"
	// RedisNextChallengePrefix 用户 + 语言，后接项目范围（0 表示不限）
	RedisNextChallengePrefix = "engine:next:%d:%s:"
	RedisNextChallengeKey    = RedisNextChallengePrefix + "%d"
)
