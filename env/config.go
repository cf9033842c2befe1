package env

// Config contains the configurations which are controlled by the ENV vars.
type Config struct {
	ProfilePath string `envconfig:"HARE_PROFILE_FILE"`
}
