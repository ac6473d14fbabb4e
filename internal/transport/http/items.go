package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/harikeerthpv07/BarterSystem/internal/app"
	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

// ItemService is the minimal interface needed for item endpoints.
type ItemService interface {
	CreateItem(ctx context.Context, actorID string, in app.CreateItemInput) (domain.Item, error)
	ListAvailable(ctx context.Context) ([]domain.Item, error)
	UpdateItem(ctx context.Context, actorID, itemID string, in app.CreateItemInput) (domain.Item, error)
	DeleteItem(ctx context.Context, actorID, itemID string) error
}

// HandleItems serves /items: listing is public, creation requires a token.
func HandleItems(svc ItemService, verifier TokenVerifier) http.HandlerFunc {
	create := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		var req itemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		item, err := svc.CreateItem(r.Context(), id.UserID, app.CreateItemInput{
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toItemResponse(item))
	}))

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := svc.ListAvailable(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]itemResponse, 0, len(items))
			for _, item := range items {
				resp = append(resp, toItemResponse(item))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			create.ServeHTTP(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleItemByID serves /items/{id}: owner-only update and soft delete.
func HandleItemByID(svc ItemService, verifier TokenVerifier) http.Handler {
	return RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := parseItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		id, ok := identity(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodPut:
			var req itemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			item, err := svc.UpdateItem(r.Context(), id.UserID, itemID, app.CreateItemInput{
				Title:       req.Title,
				Description: req.Description,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toItemResponse(item))
		case http.MethodDelete:
			if err := svc.DeleteItem(r.Context(), id.UserID, itemID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}))
}

func parseItemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "items" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type itemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		OwnerID:     item.OwnerID,
		Title:       item.Title,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
	}
}
