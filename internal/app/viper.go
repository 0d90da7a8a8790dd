package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/saradorri/ffarena/internal/config"
	"github.com/spf13/viper"
)

func (a *application) setupViper(path string) error {
	// A .env next to the config files seeds the environment for local runs
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not read .env file: %w", err)
	}

	// Get environment (default to development)
	env := config.GetEnvironment()

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	viper.SetConfigType("yml")

	viper.AddConfigPath(path)

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvPrefix("FF_ARENA")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	var c config.Config
	err = viper.Unmarshal(&c)
	if err != nil {
		return err
	}
	c.ApplyDefaults()
	a.config = &c

	fmt.Println("[x] Config loaded successfully")
	return nil
}
