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

// OfferService is the minimal interface needed for offer mutations.
type OfferService interface {
	CreateOffer(ctx context.Context, actorID string, in app.CreateOfferInput) (domain.Offer, error)
	AcceptOffer(ctx context.Context, actorID, offerID string) error
	RejectOffer(ctx context.Context, actorID, offerID string) error
}

// OfferQueryService is the minimal interface needed for offer listings.
type OfferQueryService interface {
	ListReceived(ctx context.Context, actorID string) ([]domain.Offer, error)
	ListSent(ctx context.Context, actorID string) ([]domain.OfferView, error)
}

// HandleCreateOffer serves POST /offers.
func HandleCreateOffer(svc OfferService, verifier TokenVerifier) http.Handler {
	return RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		id, ok := identity(w, r)
		if !ok {
			return
		}

		var req createOfferRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID == "" || req.OfferedItemID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "item_id and offered_item_id are required")
			return
		}

		offer, err := svc.CreateOffer(r.Context(), id.UserID, app.CreateOfferInput{
			ItemID:        req.ItemID,
			OfferedItemID: req.OfferedItemID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toOfferResponse(offer))
	}))
}

// HandleOfferRoutes serves everything under /offers/: the received and sent
// listings plus the accept/reject transitions.
func HandleOfferRoutes(svc OfferService, queries OfferQueryService, verifier TokenVerifier) http.Handler {
	return RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity(w, r)
		if !ok {
			return
		}

		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 2 && parts[1] == "received":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			offers, err := queries.ListReceived(r.Context(), id.UserID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]offerResponse, 0, len(offers))
			for _, offer := range offers {
				resp = append(resp, toOfferResponse(offer))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)

		case len(parts) == 2 && parts[1] == "sent":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			views, err := queries.ListSent(r.Context(), id.UserID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			resp := make([]offerViewResponse, 0, len(views))
			for _, view := range views {
				resp = append(resp, offerViewResponse{
					offerResponse:    toOfferResponse(view.Offer),
					ItemTitle:        view.ItemTitle,
					OfferedItemTitle: view.OfferedItemTitle,
					ItemOwnerID:      view.ItemOwnerID,
				})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)

		case len(parts) == 3 && parts[2] == "accept":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			if err := svc.AcceptOffer(r.Context(), id.UserID, parts[1]); err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(messageResponse{Message: "offer accepted and items exchanged"})

		case len(parts) == 3 && parts[2] == "reject":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			if err := svc.RejectOffer(r.Context(), id.UserID, parts[1]); err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(messageResponse{Message: "offer rejected"})

		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}))
}

type createOfferRequest struct {
	ItemID        string `json:"item_id"`
	OfferedItemID string `json:"offered_item_id"`
}

type offerResponse struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	OfferedBy     string    `json:"offered_by"`
	OfferedItemID string    `json:"offered_item_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type offerViewResponse struct {
	offerResponse
	ItemTitle        string `json:"item_title"`
	OfferedItemTitle string `json:"offered_item_title"`
	ItemOwnerID      string `json:"item_owner_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toOfferResponse(offer domain.Offer) offerResponse {
	return offerResponse{
		ID:            offer.ID,
		ItemID:        offer.ItemID,
		OfferedBy:     offer.OfferedBy,
		OfferedItemID: offer.OfferedItemID,
		Status:        string(offer.Status),
		CreatedAt:     offer.CreatedAt,
	}
}
