package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	"github.com/Mkaniukov/carwash-crm/internal/service/catalog/models"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/ptr"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewServiceStore(), logger.NewNop())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := svc.Create(ctx, &models.CreateServiceRequest{
		Name:            "  Premium wash ",
		Price:           4500,
		DurationMinutes: 60,
		Description:     ptr.Ptr("inside and outside"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Premium wash", created.Name)
	assert.Equal(t, "inside and outside", created.Description)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	invalid := []models.CreateServiceRequest{
		{Name: " ", DurationMinutes: 30},
		{Name: "Basic", Price: -1, DurationMinutes: 30},
		{Name: "Basic", DurationMinutes: 0},
		{Name: "Basic", DurationMinutes: 600},
	}
	for _, req := range invalid {
		_, err := svc.Create(ctx, &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
