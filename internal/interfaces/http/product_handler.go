package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/pkg/textenc"
)

// ImportLimits límites de POST /api/products/import.
type ImportLimits struct {
	MaxBytes        int
	DefaultEncoding string
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	limits ImportLimits
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, limits ImportLimits) *ProductHandler {
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 2 << 20
	}
	if limits.DefaultEncoding == "" {
		limits.DefaultEncoding = textenc.Auto
	}
	return &ProductHandler{uc: uc, limits: limits}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), organizationID, in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), organizationID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Nombre o código de barras"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), organizationID, c.Query("q"), limit, offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), organizationID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), organizationID, c.Params("id")); err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importar productos por lotes
// @Description  Una línea por producto: nombre;código;categoría;forma;compra;venta;tva;stock;umbral[;notas].
// @Description  El cuerpo es texto plano o multipart con el campo "file".
// @Tags         products
// @Security     Bearer
// @Accept       plain
// @Accept       mpfd
// @Produce      json
// @Param        dry_run      query  bool    false  "Solo validar, no crear"
// @Param        skip_header  query  bool    false  "Ignorar la primera línea"
// @Param        encoding     query  string  false  "auto, utf-8, windows-1252, iso-8859-1"
// @Success      200  {object}  dto.ImportResponse
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	userID := GetUserID(c)
	if organizationID == "" || userID == "" {
		return unauthorized(c)
	}

	enc := c.Query("encoding", h.limits.DefaultEncoding)
	if !textenc.Supported(enc) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ENCODING", Message: fmt.Sprintf("encoding no soportado: %q", enc)})
	}

	data, err := h.readImportBody(c)
	if err != nil {
		if errors.Is(err, errImportTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
				Code: "PAYLOAD_TOO_LARGE", Message: fmt.Sprintf("el archivo supera %d bytes", h.limits.MaxBytes),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}

	text, err := textenc.Decode(data, enc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ENCODING", Message: err.Error()})
	}

	opts := dto.ImportOptions{
		DryRun:     c.QueryBool("dry_run", false),
		SkipHeader: c.QueryBool("skip_header", false),
	}
	out, err := h.uc.Import(c.UserContext(), organizationID, userID, text, opts)
	if err != nil {
		return respondError(c, err, "")
	}
	if !opts.DryRun && out.Created > 0 {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

var errImportTooLarge = errors.New("import demasiado grande")

// readImportBody devuelve el contenido del campo multipart "file" o, si no hay, el cuerpo crudo.
func (h *ProductHandler) readImportBody(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > int64(h.limits.MaxBytes) {
			return nil, errImportTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir archivo: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, int64(h.limits.MaxBytes)+1))
		if err != nil {
			return nil, fmt.Errorf("leer archivo: %w", err)
		}
		if len(data) > h.limits.MaxBytes {
			return nil, errImportTooLarge
		}
		return data, nil
	}
	body := c.Body()
	if len(body) > h.limits.MaxBytes {
		return nil, errImportTooLarge
	}
	if len(body) == 0 {
		return nil, errors.New("cuerpo vacío: enviar texto o un archivo en el campo file")
	}
	// fasthttp reutiliza el buffer del cuerpo tras el handler
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}
