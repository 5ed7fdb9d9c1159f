package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"
)

type BOMServiceTestSuite struct {
	suite.Suite
	store   *repositories.Store
	logRepo repositories.StockLogRepository
	service BOMService
}

func (suite *BOMServiceTestSuite) SetupTest() {
	suite.store = repositories.NewStore()
	suite.logRepo = repositories.NewStockLogRepo(suite.store)
	suite.service = NewBOMService(suite.store, repositories.NewBOMRepo(suite.store), suite.logRepo)
}

func TestBOMServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BOMServiceTestSuite))
}

func (suite *BOMServiceTestSuite) TestCreate() {
	bom, err := suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Description:    "Widget recipe",
		Components:     map[string]int{"C1": 2},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "W1", bom.ProductBarcode)

	entries := suite.logRepo.List()
	require.Len(suite.T(), entries, 1)
	assert.Equal(suite.T(), models.ActionBOMCreate, entries[0].Action)
	assert.Equal(suite.T(), "W1", entries[0].Barcode)
	assert.Equal(suite.T(), map[string]int{"C1": 2}, entries[0].Details["components"])
}

func (suite *BOMServiceTestSuite) TestCreate_Duplicate() {
	_, err := suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Components:     map[string]int{"C1": 2},
	})
	require.NoError(suite.T(), err)

	_, err = suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Components:     map[string]int{"C1": 3},
	})

	var conflictErr *apperrors.ConflictError
	require.ErrorAs(suite.T(), err, &conflictErr)
}

func (suite *BOMServiceTestSuite) TestCreate_Invalid() {
	cases := []struct {
		name string
		bom  *models.BOM
	}{
		{"missing barcode", &models.BOM{Components: map[string]int{"C1": 1}}},
		{"no components", &models.BOM{ProductBarcode: "W1"}},
		{"zero quantity", &models.BOM{ProductBarcode: "W1", Components: map[string]int{"C1": 0}}},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.service.Create(context.Background(), tc.bom)
			var validationErr *apperrors.ValidationError
			require.ErrorAs(suite.T(), err, &validationErr)
		})
	}
}

func (suite *BOMServiceTestSuite) TestUpdate_ReplacesRecipe() {
	_, err := suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Components:     map[string]int{"C1": 2},
	})
	require.NoError(suite.T(), err)

	updated, err := suite.service.Update(context.Background(), "W1", &models.BOM{
		Description: "v2",
		Components:  map[string]int{"C2": 5},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]int{"C2": 5}, updated.Components)

	entries := suite.logRepo.List()
	require.Len(suite.T(), entries, 2)
	assert.Equal(suite.T(), models.ActionBOMUpdate, entries[1].Action)
}

func (suite *BOMServiceTestSuite) TestUpdate_NotFound() {
	_, err := suite.service.Update(context.Background(), "W1", &models.BOM{
		Components: map[string]int{"C1": 1},
	})

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(suite.T(), err, &notFoundErr)
}

func (suite *BOMServiceTestSuite) TestDelete() {
	_, err := suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Components:     map[string]int{"C1": 2},
	})
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.service.Delete(context.Background(), "W1"))

	boms, err := suite.service.List(context.Background())
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), boms)

	entries := suite.logRepo.List()
	require.Len(suite.T(), entries, 2)
	assert.Equal(suite.T(), models.ActionBOMUpdate, entries[1].Action)
	assert.Equal(suite.T(), true, entries[1].Details["deleted"])
}

func (suite *BOMServiceTestSuite) TestReturnedBOMsAreDetached() {
	_, err := suite.service.Create(context.Background(), &models.BOM{
		ProductBarcode: "W1",
		Components:     map[string]int{"C1": 2},
	})
	require.NoError(suite.T(), err)

	listed, err := suite.service.List(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), listed, 1)

	_, err = suite.service.Update(context.Background(), "W1", &models.BOM{
		Components: map[string]int{"C2": 9},
	})
	require.NoError(suite.T(), err)

	// Recipes handed out before the update must not see it.
	assert.Equal(suite.T(), map[string]int{"C1": 2}, listed[0].Components)

	// Nor may callers reach the registry through a returned component map.
	listed[0].Components["C1"] = 100
	after, err := suite.service.List(context.Background())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), after, 1)
	assert.Equal(suite.T(), map[string]int{"C2": 9}, after[0].Components)
}

func (suite *BOMServiceTestSuite) TestDelete_NotFound() {
	err := suite.service.Delete(context.Background(), "W1")

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(suite.T(), err, &notFoundErr)
}
