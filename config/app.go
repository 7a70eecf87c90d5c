package config

type App struct {
	Port              string `env:"APP_PORT" default:"8080"`
	DatabaseURL       string `env:"DATABASE_URL,required"`
	JWTSecret         string `env:"JWT_SECRET,required"`
	QRISAPIKey        string `env:"QRIS_API_KEY"`
	QRISCallbackToken string `env:"QRIS_CALLBACK_TOKEN"`
	Env               string `env:"APP_ENV" default:"dev"`
}
