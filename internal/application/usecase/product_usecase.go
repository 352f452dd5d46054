package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/ports"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/catalog"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
	"github.com/jhoicas/seraphine/pkg/logger"
	"github.com/jhoicas/seraphine/pkg/metrics"
)

// ProductUseCase casos de uso del catálogo: CRUD e importación por lotes.
// Stock y precio de compra se mueven vía inventory.StockUseCase.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner ports.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner ports.TxRunner, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, log: log.Component("products"), now: time.Now}
}

// Create crea un producto. Devuelve domain.ErrDuplicate si el código de barras ya existe en la organización.
func (uc *ProductUseCase) Create(ctx context.Context, organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Barcode = strings.TrimSpace(in.Barcode)
	if in.Name == "" || in.Stock < 0 || in.Threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	var ok bool
	if in.PurchasePrice, ok = catalog.NormalizeAmount(in.PurchasePrice); !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice, ok = catalog.NormalizeAmount(in.SellingPrice); !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.VATRate, ok = catalog.NormalizeVATRate(in.VATRate); !ok {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, err := uc.repo.GetByBarcode(ctx, organizationID, in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.Category == "" {
		in.Category = catalog.DefaultCategory
	}
	now := uc.now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Barcode:        in.Barcode,
		Category:       in.Category,
		DosageForm:     in.DosageForm,
		PurchasePrice:  in.PurchasePrice,
		SellingPrice:   in.SellingPrice,
		VATRate:        in.VATRate,
		Stock:          in.Stock,
		Threshold:      in.Threshold,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto de la organización. nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Update actualiza los campos descriptivos. nil si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Barcode != nil {
		barcode := strings.TrimSpace(*in.Barcode)
		if barcode != "" && barcode != product.Barcode {
			existing, err := uc.repo.GetByBarcode(ctx, organizationID, barcode)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.Barcode = barcode
	}
	if in.Category != nil {
		product.Category = *in.Category
		if product.Category == "" {
			product.Category = catalog.DefaultCategory
		}
	}
	if in.DosageForm != nil {
		product.DosageForm = *in.DosageForm
	}
	if in.SellingPrice != nil {
		price, ok := catalog.NormalizeAmount(*in.SellingPrice)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = price
	}
	if in.VATRate != nil {
		rate, ok := catalog.NormalizeVATRate(*in.VATRate)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		product.VATRate = rate
	}
	if in.Threshold != nil {
		if *in.Threshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Threshold = *in.Threshold
	}
	if in.Notes != nil {
		product.Notes = *in.Notes
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos de la organización con paginación; search filtra por nombre o código.
func (uc *ProductUseCase) List(ctx context.Context, organizationID, search string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto de la organización.
func (uc *ProductUseCase) Delete(ctx context.Context, organizationID, id string) error {
	return uc.repo.Delete(ctx, organizationID, id)
}

// Import procesa un lote de texto "nombre;código;…" (ver catalog.ParseBatchProducts).
// Las líneas inválidas y los códigos de barras duplicados (en BD o dentro del mismo lote) se
// devuelven como errores de línea; el resto se crea en una sola transacción. Con DryRun no se
// escribe nada y se devuelven los borradores aceptados.
func (uc *ProductUseCase) Import(ctx context.Context, organizationID, userID, text string, opts dto.ImportOptions) (*dto.ImportResponse, error) {
	if opts.SkipHeader {
		text = catalog.BlankFirstLine(text)
	}
	parsed := catalog.ParseBatchProducts(text)

	out := &dto.ImportResponse{
		DryRun: opts.DryRun,
		Items:  []dto.ProductResponse{},
		Errors: parsed.Errors,
	}

	var duplicates []catalog.LineError
	if opts.DryRun {
		accepted, dups, err := filterDuplicates(ctx, uc.repo, organizationID, parsed)
		if err != nil {
			return nil, err
		}
		duplicates = dups
		out.Drafts = make([]catalog.ProductDraft, 0, len(accepted))
		for _, a := range accepted {
			out.Drafts = append(out.Drafts, a.draft)
		}
	} else {
		err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
			accepted, dups, err := filterDuplicates(ctx, productRepo, organizationID, parsed)
			if err != nil {
				return err
			}
			duplicates = dups
			created := make([]dto.ProductResponse, 0, len(accepted))
			for _, a := range accepted {
				p, err := uc.createFromDraft(ctx, productRepo, movementRepo, organizationID, userID, a)
				if err != nil {
					return err
				}
				created = append(created, *ToProductResponse(p))
			}
			out.Items = created
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("importar productos: %w", err)
		}
		out.Created = len(out.Items)
	}

	out.Errors = mergeLineErrors(parsed.Errors, duplicates)
	metrics.RecordImport(opts.DryRun, len(parsed.Items)-len(duplicates), len(parsed.Errors), len(duplicates))
	uc.log.Info().
		Str("organization_id", organizationID).
		Bool("dry_run", opts.DryRun).
		Int("parsed", len(parsed.Items)).
		Int("created", out.Created).
		Int("errors", len(out.Errors)).
		Msg("importación de productos")
	return out, nil
}

type numberedDraft struct {
	line  int
	draft catalog.ProductDraft
}

// filterDuplicates separa los borradores cuyo código de barras ya existe en la organización
// o se repite en una línea anterior del mismo lote.
func filterDuplicates(ctx context.Context, repo repository.ProductRepository, organizationID string, parsed catalog.ParseResult) ([]numberedDraft, []catalog.LineError, error) {
	accepted := make([]numberedDraft, 0, len(parsed.Items))
	var dups []catalog.LineError
	seen := make(map[string]int)
	for i, d := range parsed.Items {
		line := parsed.Lines[i]
		if d.Barcode != "" {
			if first, ok := seen[d.Barcode]; ok {
				dups = append(dups, catalog.LineError{
					Line:    line,
					Message: fmt.Sprintf("línea %d: código de barras %s repetido (línea %d)", line, d.Barcode, first),
				})
				continue
			}
			existing, err := repo.GetByBarcode(ctx, organizationID, d.Barcode)
			if err != nil {
				return nil, nil, err
			}
			if existing != nil {
				dups = append(dups, catalog.LineError{
					Line:    line,
					Message: fmt.Sprintf("línea %d: código de barras %s ya existe (%s)", line, d.Barcode, existing.Name),
				})
				continue
			}
			seen[d.Barcode] = line
		}
		accepted = append(accepted, numberedDraft{line: line, draft: d})
	}
	return accepted, dups, nil
}

// createFromDraft persiste el producto y, si trae stock inicial, registra el ajuste de apertura.
func (uc *ProductUseCase) createFromDraft(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	organizationID, userID string,
	nd numberedDraft,
) (*entity.Product, error) {
	now := uc.now()
	d := nd.draft
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           d.Name,
		Barcode:        d.Barcode,
		Category:       d.Category,
		DosageForm:     d.DosageForm,
		PurchasePrice:  d.PurchasePrice,
		SellingPrice:   d.SellingPrice,
		VATRate:        d.VATRate,
		Stock:          d.Stock,
		Threshold:      d.Threshold,
		Notes:          d.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("línea %d: %w", nd.line, err)
	}
	if d.Stock > 0 {
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			OrganizationID: organizationID,
			ProductID:      product.ID,
			Type:           entity.MovementTypeAdjustment,
			Quantity:       d.Stock,
			UnitPrice:      d.PurchasePrice,
			Total:          d.PurchasePrice.Mul(decimal.NewFromInt(d.Stock)),
			StockAfter:     d.Stock,
			Reference:      fmt.Sprintf("import línea %d", nd.line),
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return nil, fmt.Errorf("línea %d: %w", nd.line, err)
		}
	}
	return product, nil
}

func mergeLineErrors(a, b []catalog.LineError) []catalog.LineError {
	out := make([]catalog.LineError, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// ToProductResponse convierte la entidad al DTO de salida. nil -> nil.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Barcode:        p.Barcode,
		Category:       p.Category,
		DosageForm:     p.DosageForm,
		PurchasePrice:  p.PurchasePrice,
		SellingPrice:   p.SellingPrice,
		VATRate:        p.VATRate,
		Stock:          p.Stock,
		Threshold:      p.Threshold,
		LowStock:       p.IsLowStock(),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
