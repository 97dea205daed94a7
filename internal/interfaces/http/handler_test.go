package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/inventory-admin/internal/application/analytics"
	"github.com/jhoicas/inventory-admin/internal/application/auth"
	"github.com/jhoicas/inventory-admin/internal/application/dto"
	"github.com/jhoicas/inventory-admin/internal/application/export"
	"github.com/jhoicas/inventory-admin/internal/application/inventory"
	"github.com/jhoicas/inventory-admin/internal/application/ports"
	"github.com/jhoicas/inventory-admin/internal/application/usecase"
	"github.com/jhoicas/inventory-admin/internal/domain/entity"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/csvfile"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/imaging"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/queue"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/inventory-admin/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventory-admin/internal/interfaces/http"
	"github.com/jhoicas/inventory-admin/pkg/idgen"
	pkgjwt "github.com/jhoicas/inventory-admin/pkg/jwt"
	"github.com/jhoicas/inventory-admin/pkg/logger"
)

const (
	adminID = "00000000-0000-0000-0000-00000000000a"
	staffID = "00000000-0000-0000-0000-00000000000b"
)

type testServer struct {
	app       *fiber.App
	store     *memory.Store
	queue     *queue.MemoryQueue
	processor *export.Processor
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []entity.User{
		{ID: adminID, FirstName: "Ana", LastName: "Admin", Email: "ana@example.com", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: entity.UserActive},
		{ID: staffID, FirstName: "Beto", Email: "beto@example.com", PasswordHash: string(hash), Role: entity.RoleStaff, Status: entity.UserActive},
	} {
		u := u
		require.NoError(t, s.Users().Create(ctx, &u))
	}

	uploads, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	exportsDir, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	gen, err := idgen.New(1)
	require.NoError(t, err)
	q := queue.NewMemoryQueue(10)

	catalogUC := usecase.NewCatalogUseCase(s, s.Catalog(), s.Items(), s.Activity())
	itemUC := usecase.NewItemUseCase(s, s.Items(), s.Activity(), catalogUC, gen,
		imaging.NewProcessor(), uploads, pdf.NewLabelRenderer())
	stockUC := inventory.NewStockUseCase(s, s.Items(), s.Movements(), s.Batches(), s.Damaged())
	writers := []ports.TableWriter{csvfile.NewWriter(), spreadsheet.NewWriter(), pdf.NewTableWriter()}
	readers := map[string]ports.TableReader{
		"csv":        csvfile.NewReader(),
		"csv-latin1": csvfile.NewLatin1Reader(),
		"xlsx":       spreadsheet.NewReader(),
	}
	sources := export.Sources{Items: s.Items(), Movements: s.Movements(), Damaged: s.Damaged(), Activity: s.Activity()}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(s.Users(), s.Activity(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		ItemUC:      itemUC,
		StockUC:     stockUC,
		CatalogUC:   catalogUC,
		UserUC:      usecase.NewUserUseCase(s.Users(), s.Activity()),
		ActivityUC:  usecase.NewActivityUseCase(s.Activity()),
		ExportUC:    export.NewExportUseCase(s.Exports(), s.Activity(), q, exportsDir),
		Importer:    export.NewImporter(itemUC, s.Activity(), readers, logger.Nop(), writers...),
		DashboardUC: appanalytics.NewDashboardUseCase(s.Analytics(), s.Activity()),
		Users:       s.Users(),
		JWTSecret:   testJWTSecret,
		UploadDir:   uploads.Root(),
	})
	return &testServer{
		app:       app,
		store:     s,
		queue:     q,
		processor: export.NewProcessor(s.Exports(), s.Users(), sources, exportsDir, nil, logger.Nop(), writers...),
	}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call hace la petición con JSON opcional y devuelve status y cuerpo.
func (ts *testServer) call(t *testing.T, method, path, auth string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (ts *testServer) upload(t *testing.T, path, auth, field, filename string, data []byte) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func (ts *testServer) createItem(t *testing.T, qty int) dto.ItemResponse {
	t.Helper()
	status, body := ts.call(t, http.MethodPost, "/api/items", bearer(t, staffID, entity.RoleStaff), map[string]any{
		"brand": "Apple", "model": "iPhone 15", "color": "Negro",
		"cost_price": "1000", "retail_price": "1500", "quantity": qty,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.ItemResponse](t, body)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode[dto.LoginResponse](t, body)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	status, body = ts.call(t, http.MethodGet, "/api/auth/me", "Bearer "+out.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ana@example.com", decode[dto.UserResponse](t, body).Email)

	status, _ = ts.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@example.com", "password": "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = ts.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.Contains(t, errResp.Fields, "email")
}

func TestProtectedRoutes_RequierenToken(t *testing.T) {
	ts := newTestServer(t)
	status, _ := ts.call(t, http.MethodGet, "/api/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUsuarioDesactivado_PierdeAcceso(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)

	status, _ := ts.call(t, http.MethodPut, "/api/users/"+staffID, bearer(t, adminID, entity.RoleAdmin), map[string]string{
		"first_name": "Beto", "email": "beto@example.com", "role": "staff", "status": "inactive",
	})
	require.Equal(t, http.StatusOK, status)

	status, body := ts.call(t, http.MethodGet, "/api/items", staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "USER_INACTIVE")
}

func TestRolDelTokenNoSuperaAlDeLaBase(t *testing.T) {
	ts := newTestServer(t)
	// token con rol admin para un usuario que en la base es staff
	status, _ := ts.call(t, http.MethodGet, "/api/users", bearer(t, staffID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ── Ítems y stock ────────────────────────────────────────────────────────────

func TestItems_CRUD(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	item := ts.createItem(t, 12)
	assert.Equal(t, "ready_stock", item.Status)
	assert.NotEmpty(t, item.ItemCode)
	assert.NotEmpty(t, item.SKU)

	status, body := ts.call(t, http.MethodGet, "/api/items/lookup/"+item.Barcode, staff, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, item.ID, decode[dto.ItemResponse](t, body).ID)

	status, body = ts.call(t, http.MethodGet, "/api/items?search=iphone&limit=5", staff, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ListResponse[dto.ItemResponse]](t, body)
	assert.Equal(t, 1, list.Page.Total)

	status, _ = ts.call(t, http.MethodGet, "/api/items?status=roto", staff, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = ts.call(t, http.MethodPut, "/api/items/"+item.ID, staff, map[string]any{
		"brand": "Apple", "model": "iPhone 15", "color": "Azul", "cost_price": "1000", "retail_price": "1600",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "Azul", decode[dto.ItemResponse](t, body).Color)

	status, body = ts.call(t, http.MethodPut, "/api/items/"+item.ID, staff, map[string]any{
		"brand": "Apple", "model": "iPhone 15", "color": "Azul",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	kept := decode[dto.ItemResponse](t, body)
	assert.Equal(t, "1600", kept.RetailPrice.String(), "sin precios en el body se conservan")
	assert.Equal(t, "1000", kept.CostPrice.String())

	status, _ = ts.call(t, http.MethodDelete, "/api/items/"+item.ID, staff, nil)
	assert.Equal(t, http.StatusForbidden, status, "staff no puede borrar ítems")

	status, _ = ts.call(t, http.MethodDelete, "/api/items/"+item.ID, bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = ts.call(t, http.MethodGet, "/api/items/"+item.ID, staff, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, body).Code)
}

func TestStock_EntradaSalidaYDanios(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	item := ts.createItem(t, 0)
	assert.Equal(t, "out_of_stock", item.Status)

	status, body := ts.call(t, http.MethodPost, "/api/stock/in", staff, map[string]any{"item_id": item.ID, "quantity": 10, "unit_cost": "900"})
	require.Equal(t, http.StatusCreated, status, string(body))
	op := decode[dto.StockOperationResponse](t, body)
	assert.Equal(t, 10, op.Item.Quantity)
	require.NotNil(t, op.Batch)

	status, body = ts.call(t, http.MethodPost, "/api/stock/out", staff, map[string]any{"item_id": item.ID, "quantity": 50})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, body).Code)

	status, body = ts.call(t, http.MethodGet, "/api/items/"+item.ID+"/fifo?quantity=4", staff, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, _ = ts.call(t, http.MethodPost, "/api/damaged", staff, map[string]any{"item_id": item.ID, "quantity": 2, "reason": "pantalla rota"})
	require.Equal(t, http.StatusCreated, status)

	status, body = ts.call(t, http.MethodGet, "/api/damaged", staff, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.DamagedResponse]](t, body).Page.Total)

	status, body = ts.call(t, http.MethodGet, "/api/items/"+item.ID+"/movements?type=out", staff, nil)
	require.Equal(t, http.StatusOK, status)
	movs := decode[dto.ListResponse[dto.MovementResponse]](t, body)
	require.Len(t, movs.Items, 1)
	assert.Equal(t, 8, movs.Items[0].BalanceAfter)

	status, _ = ts.call(t, http.MethodPost, "/api/stock/in", staff, map[string]any{"item_id": item.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestItemImage_SubirYEtiqueta(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	item := ts.createItem(t, 1)

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	status, body := ts.upload(t, "/api/items/"+item.ID+"/image", staff, "image", "foto.png", buf.Bytes())
	require.Equal(t, http.StatusOK, status, string(body))
	withImage := decode[dto.ItemResponse](t, body)
	require.NotEmpty(t, withImage.ImageURL)

	req := httptest.NewRequest(http.MethodGet, withImage.ImageURL, nil)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, _ = ts.upload(t, "/api/items/"+item.ID+"/image", staff, "image", "nota.txt", []byte("no soy imagen"))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	req = httptest.NewRequest(http.MethodGet, "/api/items/"+item.ID+"/label", nil)
	req.Header.Set("Authorization", staff)
	resp, err = ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestImport_CSV(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	csv := "brand,model,color,quantity\nXiaomi,Redmi 13,Verde,3\n,Sin marca,Rojo,1\n"

	status, body := ts.upload(t, "/api/items/import", staff, "file", "items.csv", []byte(csv))
	require.Equal(t, http.StatusOK, status, string(body))
	res := decode[dto.ImportResult](t, body)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)

	status, _ = ts.upload(t, "/api/items/import", staff, "file", "items.txt", []byte(csv))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	status, _ = ts.call(t, http.MethodGet, "/api/items/import/template?format=csv", staff, nil)
	assert.Equal(t, http.StatusOK, status)
}

// ── Catálogo y usuarios ──────────────────────────────────────────────────────

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)

	status, body := ts.call(t, http.MethodPost, "/api/brands", staff, map[string]string{"name": "Motorola"})
	require.Equal(t, http.StatusCreated, status, string(body))
	brand := decode[dto.BrandResponse](t, body)

	status, _ = ts.call(t, http.MethodPost, "/api/brands", staff, map[string]string{"name": "MOTOROLA"})
	assert.Equal(t, http.StatusConflict, status)

	status, body = ts.call(t, http.MethodPost, "/api/brands/"+brand.ID+"/models", staff, map[string]string{"name": "Edge 50"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = ts.call(t, http.MethodGet, "/api/brands/"+brand.ID+"/models", staff, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.ModelResponse](t, body), 1)

	status, _ = ts.call(t, http.MethodDelete, "/api/brands/"+brand.ID, staff, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = ts.call(t, http.MethodDelete, "/api/brands/"+brand.ID, bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestUsers_AdminNoSeBorraASiMismo(t *testing.T) {
	ts := newTestServer(t)
	admin := bearer(t, adminID, entity.RoleAdmin)

	status, body := ts.call(t, http.MethodDelete, "/api/users/"+adminID, admin, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "SELF_ACTION", decode[dto.ErrorResponse](t, body).Code)

	status, body = ts.call(t, http.MethodPost, "/api/users", admin, map[string]string{
		"first_name": "Caro", "email": "caro@example.com", "password": "clave-segura", "role": "staff",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, _ = ts.call(t, http.MethodPost, "/api/users", admin, map[string]string{
		"first_name": "Caro", "email": "CARO@example.com", "password": "clave-segura", "role": "staff",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = ts.call(t, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, decode[dto.ListResponse[dto.UserResponse]](t, body).Page.Total)
}

// ── Exportaciones y dashboard ────────────────────────────────────────────────

func TestExport_SolicitarProcesarDescargar(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	ts.createItem(t, 3)

	status, body := ts.call(t, http.MethodPost, "/api/exports", staff, map[string]any{"type": "items", "format": "csv"})
	require.Equal(t, http.StatusAccepted, status, string(body))
	n := decode[dto.ExportNotificationResponse](t, body)
	assert.Equal(t, entity.ExportPending, n.Status)

	status, _ = ts.call(t, http.MethodGet, "/api/exports/"+n.ID+"/download", staff, nil)
	assert.Equal(t, http.StatusConflict, status)

	payload, err := ts.queue.Dequeue(context.Background())
	require.NoError(t, err)
	require.NoError(t, ts.processor.Handle(context.Background(), payload))

	status, body = ts.call(t, http.MethodGet, "/api/exports", staff, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ExportListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ExportCompleted, list.Items[0].Status)
	assert.Equal(t, 1, list.Unread)

	req := httptest.NewRequest(http.MethodGet, "/api/exports/"+n.ID+"/download", nil)
	req.Header.Set("Authorization", staff)
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Apple")

	// otro usuario no ve el aviso
	status, _ = ts.call(t, http.MethodDelete, "/api/exports/"+n.ID, bearer(t, adminID, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(t, http.MethodPost, "/api/exports", staff, map[string]any{"type": "ventas", "format": "csv"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)
	staff := bearer(t, staffID, entity.RoleStaff)
	ts.createItem(t, 2)

	status, body := ts.call(t, http.MethodGet, "/api/dashboard/summary", staff, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	summary := decode[dto.DashboardSummaryDTO](t, body)
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, 2, summary.TotalUnits)

	status, body = ts.call(t, http.MethodGet, "/api/dashboard/charts?days=7", staff, nil)
	require.Equal(t, http.StatusOK, status)
	charts := decode[dto.DashboardChartsDTO](t, body)
	assert.Equal(t, 7, charts.Days)
	assert.Len(t, charts.Movements, 7)

	status, _ = ts.call(t, http.MethodGet, "/api/activity?type=item_created", staff, nil)
	assert.Equal(t, http.StatusOK, status)
}
