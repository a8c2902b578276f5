// Package mockgw implements a local stand-in for the WIMS warehouse/order
// gateway: the same eight endpoints the storefront client consumes, backed
// by an in-memory catalog, per-token baskets and an order list. It exists
// for local development and for exercising the real client end to end in
// tests.
package mockgw

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/wims/storefront/internal/models"
)

// Server holds the mock gateway's handlers.
type Server struct {
	repo  *Repository
	users map[string]string
	log   *slog.Logger
}

// NewServer creates a mock gateway accepting the given username/password
// pairs at login.
func NewServer(users map[string]string, log *slog.Logger) *Server {
	if len(users) == 0 {
		users = map[string]string{"demo": "demo"}
	}
	return &Server{
		repo:  NewRepository(),
		users: users,
		log:   log,
	}
}

// Router builds the full middleware stack and route table.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/um/User/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.BearerAuth)

		r.Get("/im/getAllCategories", s.handleCategories)
		r.Post("/im/Warehouse/filter", s.handleFilterProducts)
		r.Get("/bm/getBasket", s.handleGetBasket)
		r.Post("/bm/addToBasket", s.handleAddToBasket)
		r.Delete("/bm/removefromBasket/{productId}", s.handleRemoveFromBasket)
		r.Post("/om/createOrder", s.handleCreateOrder)
		r.Post("/om/filter", s.handleFilterOrders)
	})

	return r
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Timestamp: now()})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	password, ok := s.users[req.Username]
	if !ok || password != req.Password {
		s.log.Warn("login rejected", "username", req.Username)
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := uuid.New().String()
	s.repo.IssueToken(token)
	s.log.Info("login successful", "username", req.Username)

	s.writeJSON(w, http.StatusOK, map[string]string{"jwtToken": token})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.repo.Categories())
}

func (s *Server) handleFilterProducts(w http.ResponseWriter, r *http.Request) {
	var filter models.ProductFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	products, err := s.repo.FilterProducts(filter)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	s.writeJSON(w, http.StatusOK, s.repo.Basket(token))
}

func (s *Server) handleAddToBasket(w http.ResponseWriter, r *http.Request) {
	var req models.AddToBasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Products) == 0 {
		s.writeError(w, http.StatusBadRequest, "no products to add")
		return
	}

	token := tokenFromContext(r.Context())
	s.repo.AddToBasket(token, req.Products)
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "added to basket"})
}

func (s *Server) handleRemoveFromBasket(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	token := tokenFromContext(r.Context())

	if err := s.repo.RemoveFromBasket(token, productID); err != nil {
		s.writeError(w, http.StatusNotFound, "product not in basket")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "removed from basket"})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		s.writeError(w, http.StatusBadRequest, "order must contain at least one item")
		return
	}

	buyer := req.Buyer
	order := models.Order{
		ID:          uuid.New().String(),
		OrderID:     uuid.New().String(),
		Status:      req.Status,
		Description: req.Description,
		Price:       req.Price,
		CreatedAt:   now(),
		Buyer:       &buyer,
		Items:       req.Items,
	}
	s.repo.AddOrder(order)
	s.log.Info("order created", "order_id", order.ID, "items_count", len(order.Items))

	s.writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleFilterOrders(w http.ResponseWriter, r *http.Request) {
	var filter models.OrderFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.writeJSON(w, http.StatusOK, s.repo.FilterOrders(filter))
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response carrying the message under the
// "message" key, which is where the client looks for it.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}
