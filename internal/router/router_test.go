package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/handlers"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/scheduler"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	t       *testing.T
	router  *gin.Engine
	tokens  *auth.TokenManager
	orders  *testutil.Orders
	reports string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("router-secret", time.Hour)
	require.NoError(t, err)

	orders := testutil.NewOrders()
	origins := []string{"http://localhost:3000"}
	feed := handlers.NewOrderFeed(origins)
	dir := filepath.Join(t.TempDir(), "relatorios")

	r := NewRouter(Dependencies{
		Tokens:         tokens,
		Auth:           services.NewAuthService(testutil.NewUsers(), tokens),
		Clients:        services.NewClientService(testutil.NewClients()),
		Products:       services.NewProductService(testutil.NewProducts()),
		Orders:         services.NewOrderService(orders, feed),
		Reports:        services.NewReportService(orders, testutil.NewReports(), dir),
		Feed:           feed,
		Ping:           func(context.Context) error { return nil },
		AllowedOrigins: origins,
		AuthRateLimit:  1000,
		AuthRateBurst:  1000,
	})

	return &testApp{t: t, router: r, tokens: tokens, orders: orders, reports: dir}
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

func (a *testApp) token(role models.Role) string {
	a.t.Helper()

	token, err := a.tokens.Generate(models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "x@example.com", Role: role})
	require.NoError(a.t, err)

	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var msg string
	require.NoError(t, json.Unmarshal(decode(t, rec)["message"], &msg))

	return msg
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	register := map[string]string{"email": "ana@example.com", "password": "segredo123", "name": "Ana", "tipo": "ADMIN"}

	rec := app.do(http.MethodPost, "/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "segredo123")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = app.do(http.MethodPost, "/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email já cadastrado", message(t, rec))

	rec = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(decode(t, rec)["token"], &token))

	claims, err := app.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	rec = app.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ana@example.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Credenciais inválidas", message(t, rec))
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "nope", "password": "123", "name": "", "tipo": "Admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, message(t, rec), "Erro de validação")
}

func TestProductRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(models.RoleAdmin)

	for i, price := range []string{"5.00", "10.00", "15.00", "20.00", "25.00"} {
		rec := app.do(http.MethodPost, "/api/produtos", admin, map[string]interface{}{
			"nome": "Produto " + price, "descricao": "d", "preco": price, "quantidadeEmEstoque": i,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := app.do(http.MethodGet, "/api/produtos?precoMin=10&precoMax=20", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var products []models.Product
	require.NoError(t, json.Unmarshal(decode(t, rec)["produtos"], &products))
	require.Len(t, products, 3)
	for _, p := range products {
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(10)) && p.Price.LessThanOrEqual(decimal.NewFromInt(20)))
	}

	rec = app.do(http.MethodGet, "/api/produtos?precoMin=30&precoMax=20", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/api/produtos", app.token(models.RoleCliente), map[string]interface{}{
		"nome": "x", "descricao": "d", "preco": 1, "quantidadeEmEstoque": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodGet, "/api/produtos/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Produto não encontrado", message(t, rec))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/pedidos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodGet, "/api/relatorios?periodo=2024-01-01:2024-01-31", app.token(models.RoleCliente), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestClientOwnership(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(models.RoleAdmin)

	ownerID := uuid.New()
	ownerToken, err := app.tokens.Generate(models.User{BaseModel: models.BaseModel{ID: ownerID}, Email: "dono@example.com", Role: models.RoleCliente})
	require.NoError(t, err)

	rec := app.do(http.MethodPost, "/api/clientes", admin, map[string]interface{}{
		"nomeCompleto": "Ana Souza", "contato": "11 9999", "endereco": "Rua A", "status": true, "usuarioId": ownerID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var client models.Client
	require.NoError(t, json.Unmarshal(decode(t, rec)["cliente"], &client))

	rec = app.do(http.MethodGet, "/api/clientes/"+client.ID.String(), ownerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/clientes/"+client.ID.String(), app.token(models.RoleCliente), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodGet, "/api/clientes?nomeCompleto=ana", app.token(models.RoleCliente), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec)["clientes"]))

	rec = app.do(http.MethodDelete, "/api/clientes/"+client.ID.String(), ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(http.MethodDelete, "/api/clientes/"+client.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.token(models.RoleCliente)

	rec := app.do(http.MethodPost, "/api/pedidos", token, map[string]interface{}{
		"idCliente": uuid.NewString(),
		"itens": []map[string]interface{}{
			{"idProduto": uuid.NewString(), "quantidade": 2, "precoPorUnidade": "10.00", "subtotal": "999"},
			{"idProduto": uuid.NewString(), "quantidade": 1, "precoPorUnidade": 3.5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(decode(t, rec)["pedido"], &order))
	assert.Equal(t, models.StatusRecebido, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("23.5")))

	rec = app.do(http.MethodPut, "/api/pedidos/"+order.ID.String(), token, map[string]interface{}{
		"status": "ENVIADO",
		"itens":  []map[string]interface{}{{"idProduto": uuid.NewString(), "quantidade": 3, "precoPorUnidade": "2.00"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Order
	require.NoError(t, json.Unmarshal(decode(t, rec)["pedido"], &updated))
	assert.Equal(t, models.StatusEnviado, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("6")))
	for _, old := range order.Items {
		assert.NotEqual(t, old.ID, updated.Items[0].ID)
	}

	rec = app.do(http.MethodPost, "/api/pedidos", token, map[string]interface{}{"idCliente": uuid.NewString(), "itens": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPut, "/api/pedidos/"+order.ID.String(), token, map[string]interface{}{"status": "PERDIDO"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodDelete, "/api/pedidos/"+order.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(http.MethodGet, "/api/pedidos/"+order.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pedido não encontrado", message(t, rec))
}

func TestReportRoutes(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(models.RoleAdmin)

	rec := app.do(http.MethodGet, "/api/relatorios?periodo=2024-01-01:2024-01-31", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, err := os.Stat(app.reports)
	assert.True(t, os.IsNotExist(err))

	rec = app.do(http.MethodGet, "/api/relatorios?periodo=2024-02-01:2024-01-01", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/api/relatorios", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	order := models.Order{
		ClientID:  uuid.New(),
		Status:    models.StatusEntregue,
		Total:     decimal.RequireFromString("12.00"),
		OrderDate: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Items:     []models.OrderItem{{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromInt(4), Subtotal: decimal.NewFromInt(12)}},
	}
	require.NoError(t, app.orders.Create(context.Background(), &order))

	rec = app.do(http.MethodGet, "/api/relatorios?periodo=2024-01-01:2024-01-31", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio-2024-01-01_2024-01-31.csv")
	assert.Contains(t, rec.Body.String(), "ID Pedido,Data do Pedido,Status,Total,Quantidade de Itens")
	assert.Contains(t, rec.Body.String(), ",,Total,12.00,3")

	rec = app.do(http.MethodGet, "/api/relatorios/historico", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var history []models.Report
	require.NoError(t, json.Unmarshal(decode(t, rec)["relatorios"], &history))
	require.Len(t, history, 1)
	assert.Equal(t, models.TriggerManual, history[0].Trigger)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "up", health["database"])
	assert.Equal(t, float64(0), health["subscribers"])
	assert.NotContains(t, health, "scheduler")

	rec = app.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lojinha_orders_created_total")
}

func TestHealthIncludesSchedulerStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("router-secret", time.Hour)
	require.NoError(t, err)

	orders := testutil.NewOrders()
	reports := services.NewReportService(orders, testutil.NewReports(), t.TempDir())
	sched := scheduler.NewScheduler(reports, nil)

	r := NewRouter(Dependencies{
		Tokens:         tokens,
		Auth:           services.NewAuthService(testutil.NewUsers(), tokens),
		Clients:        services.NewClientService(testutil.NewClients()),
		Products:       services.NewProductService(testutil.NewProducts()),
		Orders:         services.NewOrderService(orders, nil),
		Reports:        reports,
		Feed:           handlers.NewOrderFeed(nil),
		Ping:           func(context.Context) error { return nil },
		Scheduler:      sched,
		AllowedOrigins: []string{"http://localhost:3000"},
		AuthRateLimit:  1000,
		AuthRateBurst:  1000,
	})

	// no orders yesterday, so the run records ErrNoSales
	sched.RunOnce()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Scheduler map[string]interface{} `json:"scheduler"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, float64(0), health.Scheduler["jobs"])
	assert.Contains(t, health.Scheduler, "last_run")
	assert.Equal(t, services.ErrNoSales.Error(), health.Scheduler["last_error"])
}

func TestCORS(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/produtos", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouterWithoutOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenManager("router-secret", time.Hour)
	require.NoError(t, err)

	var r *gin.Engine
	require.NotPanics(t, func() {
		r = NewRouter(Dependencies{
			Tokens:        tokens,
			Auth:          services.NewAuthService(testutil.NewUsers(), tokens),
			Clients:       services.NewClientService(testutil.NewClients()),
			Products:      services.NewProductService(testutil.NewProducts()),
			Orders:        services.NewOrderService(testutil.NewOrders(), nil),
			Reports:       services.NewReportService(testutil.NewOrders(), testutil.NewReports(), t.TempDir()),
			Feed:          handlers.NewOrderFeed(nil),
			Ping:          func(context.Context) error { return nil },
			AuthRateLimit: 1000,
			AuthRateBurst: 1000,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/produtos", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
