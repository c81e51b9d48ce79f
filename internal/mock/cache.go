package mock

import (
	"context"
	"time"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	DetailsOut []byte

	// errors
	GetDetailsErr error
	DelDetailsErr error

	// call flags
	GetDetailsCalled bool
	SetDetailsCalled bool
	DelDetailsCalled bool
	DelDetailsCount  int
}

func (c *Cache) GetAssetDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c.GetDetailsCalled = true
	if c.GetDetailsErr != nil {
		return nil, c.GetDetailsErr
	}
	return c.DetailsOut, nil
}

func (c *Cache) SetAssetDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.SetDetailsCalled = true
	c.DetailsOut = data
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id uuid.UUID) error {
	c.DelDetailsCalled = true
	c.DelDetailsCount++
	return c.DelDetailsErr
}
