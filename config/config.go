package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	JWTSecret    string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// GetJWTSecret returns the token signing secret from the config
func (c *AppConfig) GetJWTSecret() string {
	return c.JWTSecret
}
