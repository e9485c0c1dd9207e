package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anonto42/chefhub/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestInitFirebaseRequiresCredentials(t *testing.T) {
	ctx := context.Background()

	_, err := InitFirebase(ctx, "", logger.NewNop())
	assert.ErrorContains(t, err, "not provided")

	_, err = InitFirebase(ctx, filepath.Join(t.TempDir(), "missing.json"), logger.NewNop())
	assert.ErrorContains(t, err, "not found")
}
