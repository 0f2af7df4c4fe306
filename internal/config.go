package internal

import "time"

// BrokerConfig is the credential broker's environment configuration.
// ABLY_API_KEY is the provider signing key; it must never be logged.
type BrokerConfig struct {
	AblyAPIKey      string        `env:"ABLY_API_KEY"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,default=1h"`
	SessionSecret   string        `env:"SESSION_SECRET,required=true"`
	SessionLifetime time.Duration `env:"SESSION_LIFETIME,default=24h"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080"`
	DebugPort       int           `env:"DEBUG_PORT,default=8081"`
}

// ClientConfig is the terminal client's environment configuration.
type ClientConfig struct {
	BrokerURL   string `env:"BROKER_URL,default=http://localhost:8080"`
	ClientID    string `env:"CHAT_CLIENT_ID"`
	ChannelName string `env:"CHAT_CHANNEL,default=status-updates"`
	UserName    string `env:"CHAT_USER_NAME,default=anonymous"`
	UserEmail   string `env:"CHAT_USER_EMAIL"`
	LogLevel    string `env:"LOG_LEVEL,default=INFO"`
}
