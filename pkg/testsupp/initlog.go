package testsupp

import (
	"log/slog"
	"os"
	"testing"

	"github.com/acronis/go-foamdict/pkg/logging"
)

func InitLog(t *testing.T) {
	t.Helper()

	slog.SetDefault(logging.New(os.Stdout, true))
}
