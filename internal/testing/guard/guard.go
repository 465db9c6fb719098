package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("ACCESSD_TEST_MODE") == "" {
			_ = os.Setenv("ACCESSD_TEST_MODE", "1")
		}
	})
}
