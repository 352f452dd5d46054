package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
	apphttp "github.com/jhoicas/seraphine/internal/interfaces/http"
	"github.com/jhoicas/seraphine/pkg/logger"
)

const driverError = "insert product: ERROR: numeric field overflow (SQLSTATE 22003)"

type brokenProducts struct {
	fakeProducts
}

func (f *brokenProducts) Create(context.Context, *entity.Product) error {
	return errors.New(driverError)
}

type brokenTx struct {
	products *brokenProducts
}

func (tx *brokenTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(tx.products, &fakeMovements{})
}

func TestRespondError_500NoExponeElErrorInterno(t *testing.T) {
	var logs bytes.Buffer
	products := &brokenProducts{}
	uc := usecase.NewProductUseCase(products, &brokenTx{products: products}, nil)
	h := apphttp.NewProductHandler(uc, apphttp.ImportLimits{})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Level: "info", Out: &logs})))
	app.Post("/api/products/import", apphttp.AuthMiddleware(testJWTSecret), h.Import)

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", strings.NewReader("A;111;;;1;2;0;3;0"))
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "SQLSTATE")

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno", out.Message)

	assert.Contains(t, logs.String(), "SQLSTATE 22003")
	assert.Contains(t, logs.String(), `"status":500`)
}
