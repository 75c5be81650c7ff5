package grocery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"GroceryHub/pkg/kit"
)

// ListMailer sends a rendered shopping list to the configured recipients.
// Implemented by internal/mailer; nil disables the email route.
type ListMailer interface {
	SendList(ctx context.Context, store string, lines []CartLine, total float64, recipients string) error
}

// Pinger reports whether durable storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	Manager *Manager
	Mailer  ListMailer
	Persist Pinger
	Log     *zap.Logger
}

const maxBodyBytes = 1 << 20

func (s *Server) Routes(emailLimiter *kit.IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/stores", s.listStores)
	r.Get("/stores/{store}/items", s.listItems)
	r.Get("/stores/{store}/categories", s.listCategories)
	r.Post("/stores/{store}/items", s.addItem)
	r.Delete("/stores/{store}/items/{id}", s.deleteItem)
	r.Patch("/catalog/items/{id}", s.updateItem)

	r.Get("/cart", s.listCart)
	r.Post("/cart/items", s.addToCart)
	r.Patch("/cart/items/{id}", s.updateQuantity)
	r.Delete("/cart/items/{id}", s.removeFromCart)
	r.Delete("/cart", s.clearCart)
	r.Get("/cart/total", s.cartTotal)

	r.Post("/archives", s.archive)
	r.Get("/archives", s.listArchives)
	r.Get("/archives/summary", s.archiveSummary)
	r.Post("/archives/{index}/restore", s.restoreArchive)
	r.Delete("/archives/{index}", s.deleteArchive)
	r.Delete("/archives", s.deleteArchives)

	r.Get("/budget/status", s.budgetStatus)
	r.Put("/budget", s.setBudget)
	r.Put("/stores/{store}/budget", s.setStoreBudget)
	r.Put("/settings/email", s.setEmail)

	if emailLimiter != nil {
		r.With(emailLimiter.Middleware).Post("/stores/{store}/email", s.sendListEmail)
	} else {
		r.Post("/stores/{store}/email", s.sendListEmail)
	}

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.Persist == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Persist.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listStores(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"stores":  s.Manager.StoreNames(),
		"budgets": s.Manager.StoreBudgets(),
	})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	store := chi.URLParam(r, "store")
	category := r.URL.Query().Get("category")
	kit.WriteJSON(w, http.StatusOK, s.Manager.ListItems(store, category))
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Manager.Categories(chi.URLParam(r, "store")))
}

type addItemReq struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	item, err := s.Manager.AddItem(chi.URLParam(r, "store"), req.Name, req.Category, req.Price, req.Unit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var upd ItemUpdate
	if err := decodeBody(w, r, &upd); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Manager.UpdateItem(chi.URLParam(r, "id"), upd); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"updated": true})
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	removed, err := s.Manager.DeleteItem(chi.URLParam(r, "store"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, removed)
}

func (s *Server) listCart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kit.WriteJSON(w, http.StatusOK, s.Manager.ListCart(q.Get("store"), q.Get("sort")))
}

type addToCartReq struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := s.Manager.AddToCart(req.ItemID, req.Quantity); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"added": true})
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Manager.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"updated": true})
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	removed := s.Manager.RemoveFromCart(chi.URLParam(r, "id"))
	kit.WriteJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.Manager.ClearCart()
	kit.WriteJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

func (s *Server) cartTotal(w http.ResponseWriter, r *http.Request) {
	store := r.URL.Query().Get("store")
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"store": store,
		"total": s.Manager.CartTotal(store),
		"count": s.Manager.StoreItemCount(store),
	})
}

type archiveReq struct {
	Store string `json:"store"`
}

func (s *Server) archive(w http.ResponseWriter, r *http.Request) {
	var req archiveReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	entry, err := s.Manager.ArchiveStore(req.Store)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, entry)
}

func (s *Server) listArchives(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Manager.Archives())
}

func (s *Server) archiveSummary(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.Manager.Summary()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	kit.WriteJSON(w, http.StatusOK, summary)
}

func (s *Server) restoreArchive(w http.ResponseWriter, r *http.Request) {
	index, err := archiveIndex(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad index", nil)
		return
	}

	entry, err := s.Manager.RestoreArchive(index)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"restored": len(entry.Items),
		"store":    entry.Store,
		"date":     entry.DateLabel,
	})
}

func (s *Server) deleteArchive(w http.ResponseWriter, r *http.Request) {
	index, err := archiveIndex(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad index", nil)
		return
	}

	removed, err := s.Manager.DeleteArchive(index)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"deleted": true,
		"store":   removed.Store,
		"date":    removed.DateLabel,
	})
}

type deleteArchivesReq struct {
	Indices []int `json:"indices"`
}

func (s *Server) deleteArchives(w http.ResponseWriter, r *http.Request) {
	var req deleteArchivesReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	deleted := s.Manager.DeleteArchives(req.Indices)
	kit.WriteJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) budgetStatus(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Manager.BudgetStatus())
}

type budgetReq struct {
	Amount float64 `json:"amount"`
}

func (s *Server) setBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Manager.SetBudget(req.Amount); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"budget": req.Amount})
}

func (s *Server) setStoreBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	store := chi.URLParam(r, "store")
	if err := s.Manager.SetStoreBudget(store, req.Amount); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"store": store, "budget": req.Amount})
}

type emailSettingReq struct {
	Address string `json:"address"`
}

func (s *Server) setEmail(w http.ResponseWriter, r *http.Request) {
	var req emailSettingReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	s.Manager.SetEmailAddress(req.Address)
	kit.WriteJSON(w, http.StatusOK, map[string]any{"address": req.Address})
}

func (s *Server) sendListEmail(w http.ResponseWriter, r *http.Request) {
	if s.Mailer == nil {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "email not configured", nil)
		return
	}

	store := chi.URLParam(r, "store")
	lines := s.Manager.ListCart(store, SortName)
	if len(lines) == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "no items in list", map[string]any{"store": store})
		return
	}

	err := s.Mailer.SendList(r.Context(), store, lines, s.Manager.CartTotal(store), s.Manager.EmailAddress())
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("send list email failed", zap.Error(err), zap.String("store", store))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "email send failed", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"sent": true, "store": store})
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrDuplicate):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBadIndex):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrNothingToArchive):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	default:
		if s.Log != nil {
			s.Log.Error("unexpected error", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func archiveIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
