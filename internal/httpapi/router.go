package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pastelaria/internal/domain"
	"github.com/vladislavdragonenkov/pastelaria/internal/metrics"
	ordersvc "github.com/vladislavdragonenkov/pastelaria/internal/service/orders"
)

// Handler обслуживает REST-поверхность: клиенты, каталог и заказы.
type Handler struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	manager   ordersvc.Manager
	validator *ordersvc.Validator
	logger    *log.Entry
}

// NewHandler собирает handler поверх репозиториев и менеджера заказов.
func NewHandler(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	manager ordersvc.Manager,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "httpapi")
	}
	return &Handler{
		customers: customers,
		products:  products,
		orders:    orders,
		manager:   manager,
		validator: ordersvc.NewValidator(customers, products),
		logger:    logger,
	}
}

// serverError логирует причину и отдаёт клиенту обезличенный 500.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	writeError(w, http.StatusInternalServerError, "Erro interno do servidor.")
}

// NewRouter строит маршрутизатор со стандартным набором middleware.
// orderMetrics опционален: без него маршруты работают без учёта длительности.
func NewRouter(h *Handler, orderMetrics *metrics.OrderMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	if orderMetrics != nil {
		r.Use(metricsMiddleware(orderMetrics))
	}

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.createCustomer)
		r.Get("/", h.listCustomers)
		r.Get("/{id}", h.getCustomer)
		r.Put("/{id}", h.updateCustomer)
		r.Delete("/{id}", h.deleteCustomer)
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
	})

	return r
}

// requestLogger пишет завершённые запросы в структурированный лог.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithFields(log.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("request completed")
		})
	}
}

// metricsMiddleware записывает длительность запроса по шаблону маршрута,
// а не по сырому пути, чтобы не раздувать кардинальность метрики.
func metricsMiddleware(orderMetrics *metrics.OrderMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			orderMetrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start))
		})
	}
}
