package http

import (
	"encoding/json"
	"net/http"

	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidID            = "invalid_id"
	codeTitleRequired        = "title_required"
	codeUserExists           = "user_exists"
	codeInvalidCredentials   = "invalid_credentials"
	codeUnauthorized         = "unauthorized"
	codeForbidden            = "forbidden"
	codeItemNotOwned         = "item_not_owned"
	codeItemUnavailable      = "item_unavailable"
	codeOfferedItemNotOwned  = "offered_item_not_owned"
	codeOfferNotOwned        = "offer_not_owned"
	codeOfferNotPending      = "offer_not_pending"
	codeSelfOffer            = "self_offer"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service sentinels onto the HTTP surface exactly
// once. Authorization denials (including collapsed not-found) are 403;
// acting on a terminal offer or a non-available item is 409; anything
// unmapped is an opaque 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrTitleRequired:
		writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
	case domain.ErrSelfOffer:
		writeError(w, http.StatusBadRequest, codeSelfOffer, err.Error())
	case domain.ErrItemNotOwned:
		writeError(w, http.StatusForbidden, codeItemNotOwned, err.Error())
	case domain.ErrOfferedItemNotOwned:
		writeError(w, http.StatusForbidden, codeOfferedItemNotOwned, err.Error())
	case domain.ErrOfferNotOwned:
		writeError(w, http.StatusForbidden, codeOfferNotOwned, err.Error())
	case domain.ErrItemUnavailable:
		writeError(w, http.StatusConflict, codeItemUnavailable, err.Error())
	case domain.ErrOfferNotPending:
		writeError(w, http.StatusConflict, codeOfferNotPending, err.Error())
	case domain.ErrUserExists:
		writeError(w, http.StatusConflict, codeUserExists, err.Error())
	case domain.ErrInvalidCredentials:
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
