package config

// EnvFile is the optional dotenv file read by Load.
const EnvFile = ".env"

// HealthPortDisabled turns off the health/metrics server.
const HealthPortDisabled = "0"
