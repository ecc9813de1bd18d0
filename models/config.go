package models

// Config holds the database, redis and HTTP settings of the server.
// JSON keys follow config.json; every field can be overridden from the environment.
type Config struct {
	DBDriver                 string   `json:"db_driver"` // "postgres" or "sqlite"
	DatabaseURL              string   `json:"database_url"`
	DBHost                   string   `json:"db_host"`
	DBUser                   string   `json:"db_user"`
	DBPassword               string   `json:"db_password"`
	DBName                   string   `json:"db_name"`
	DBSSLMode                string   `json:"db_sslmode"`
	DBMaxOpenConns           int      `json:"db_max_open_conns"`
	DBMaxIdleConns           int      `json:"db_max_idle_conns"`
	DBConnMaxLifetimeSeconds int      `json:"db_conn_max_lifetime_seconds"`
	RedisAddr                string   `json:"redis_addr"`
	RedisPassword            string   `json:"redis_password"`
	RedisDB                  int      `json:"redis_db"`
	Port                     string   `json:"port"`
	AllowOrigins             []string `json:"allow_origins"`
	RoomTTLHours             int      `json:"room_ttl_hours"`
	ReadyTTLMinutes          int      `json:"ready_ttl_minutes"`
}
