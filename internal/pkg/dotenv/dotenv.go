package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load читает .env, если он есть, и применяет флаги командной строки поверх окружения.
func Load() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var portFlag, seedsFlag string
	flag.StringVar(&portFlag, "port", "", "Server port (overrides PORT environment variable)")
	flag.StringVar(&seedsFlag, "seeds", "", "Seeds directory (overrides SEEDS_DIR environment variable)")
	flag.Parse()

	overrides := map[string]string{
		"PORT":      portFlag,
		"SEEDS_DIR": seedsFlag,
	}
	for name, value := range overrides {
		if value == "" {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("failed to set %s environment variable: %w", name, err)
		}
	}
	return nil
}
