package animals

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// RegisterRoutes monta las rutas del hato sobre el subrouter /animals.
// records registra sus rutas en el mismo subrouter.
func RegisterRoutes(ar chi.Router, svc *Service) {
	ar.Post("/", createAnimalHandler(svc))
	ar.Get("/", listAnimalsHandler(svc))

	ar.Get("/{animalID}", getAnimalHandler(svc))
	ar.Patch("/{animalID}", updateAnimalHandler(svc))
	ar.Delete("/{animalID}", deleteAnimalHandler(svc))

	ar.Put("/{animalID}/mother", assignMotherHandler(svc))

	ar.Post("/{animalID}/sale", listForSaleHandler(svc))
	ar.Delete("/{animalID}/sale", withdrawFromSaleHandler(svc))
}

func RegisterMarketplaceRoutes(r chi.Router, svc *Service) {
	r.Route("/marketplace", func(mr chi.Router) {
		mr.Get("/", marketplaceHandler(svc))
		mr.Post("/{animalID}/reserve", reserveHandler(svc))
		mr.Post("/{animalID}/confirm", confirmPurchaseHandler(svc))
		mr.Post("/{animalID}/cancel", cancelPurchaseHandler(svc))
	})
}

type documentsPayload struct {
	TransitPermit       string `json:"transit_permit"`
	SaleInvoice         string `json:"sale_invoice"`
	MovementCertificate string `json:"movement_certificate"`
	SanitaryCertificate string `json:"sanitary_certificate"`
	BrandPatent         string `json:"brand_patent"`
	Photo               string `json:"photo"`
}

type documentsPatchPayload struct {
	TransitPermit       *string `json:"transit_permit"`
	SaleInvoice         *string `json:"sale_invoice"`
	MovementCertificate *string `json:"movement_certificate"`
	SanitaryCertificate *string `json:"sanitary_certificate"`
	BrandPatent         *string `json:"brand_patent"`
	Photo               *string `json:"photo"`
}

// createAnimalRequest es el cuerpo para registrar un animal.
type createAnimalRequest struct {
	Name                 string           `json:"name"`
	IdentificationNumber string           `json:"identification_number"` // XXX-NNNNNN-NNNNN, opcional
	Species              string           `json:"species"`
	Breed                string           `json:"breed"`
	BirthDate            string           `json:"birth_date"` // YYYY-MM-DD opcional
	Sex                  string           `json:"sex" enums:"M,H"`
	Stage                string           `json:"stage"`
	MotherID             string           `json:"mother_id"`
	Documents            documentsPayload `json:"documents"`
}

type updateAnimalRequest struct {
	Name                 *string                `json:"name"`
	IdentificationNumber *string                `json:"identification_number"`
	Species              *string                `json:"species"`
	Breed                *string                `json:"breed"`
	Sex                  *string                `json:"sex"`
	Stage                *string                `json:"stage"`
	Documents            *documentsPatchPayload `json:"documents"`
}

type assignMotherRequest struct {
	MotherID string `json:"mother_id"`
}

type listForSaleRequest struct {
	Price decimal.Decimal `json:"price"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID                   string           `json:"id"`
	OwnerID              string           `json:"owner_id"`
	Name                 string           `json:"name"`
	IdentificationNumber string           `json:"identification_number"`
	Species              string           `json:"species"`
	Breed                string           `json:"breed"`
	BirthDate            *time.Time       `json:"birth_date,omitempty"`
	Sex                  Sex              `json:"sex"`
	Stage                Stage            `json:"stage"`
	ForSale              bool             `json:"for_sale"`
	SalePrice            *decimal.Decimal `json:"sale_price,omitempty"`
	SaleStatus           SaleStatus       `json:"sale_status,omitempty"`
	BuyerID              string           `json:"buyer_id,omitempty"`
	Documents            documentsPayload `json:"documents"`
	DocumentsComplete    bool             `json:"documents_complete"`
	MotherID             string           `json:"mother_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Registra un animal en el hato del usuario. El número de identificación se normaliza a mayúsculas y debe tener formato XXX-NNNNNN-NNNNN y ser único dentro del hato.
// @Tags animals
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {object} errorsResponse "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {object} errorsResponse "número de identificación duplicado"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		a, err := svc.Create(r.Context(), userID, CreateInput{
			Name:                 req.Name,
			IdentificationNumber: req.IdentificationNumber,
			Species:              req.Species,
			Breed:                req.Breed,
			BirthDate:            bd,
			Sex:                  req.Sex,
			Stage:                req.Stage,
			MotherID:             req.MotherID,
			Documents: Documents{
				TransitPermit:       req.Documents.TransitPermit,
				SaleInvoice:         req.Documents.SaleInvoice,
				MovementCertificate: req.Documents.MovementCertificate,
				SanitaryCertificate: req.Documents.SanitaryCertificate,
				BrandPatent:         req.Documents.BrandPatent,
				Photo:               req.Documents.Photo,
			},
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar mi hato
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 401 {string} string "unauthorized"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// getAnimalHandler godoc
// @Summary Ver animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		a, err := svc.GetOwned(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Editar animal
// @Description PATCH parcial. birth_date acepta YYYY-MM-DD o null para limpiar. No aplica a animales reservados o vendidos.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {object} errorsResponse "validación"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {object} errorsResponse "reservado o vendido"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		// El map detecta si birth_date vino (y si vino null).
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updateAnimalRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd := OptionalDate{}
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		in := UpdateInput{
			Name:                 req.Name,
			IdentificationNumber: req.IdentificationNumber,
			Species:              req.Species,
			Breed:                req.Breed,
			Sex:                  req.Sex,
			Stage:                req.Stage,
			BirthDate:            bd,
		}
		if d := req.Documents; d != nil {
			in.Documents = DocumentsPatch{
				TransitPermit:       d.TransitPermit,
				SaleInvoice:         d.SaleInvoice,
				MovementCertificate: d.MovementCertificate,
				SanitaryCertificate: d.SanitaryCertificate,
				BrandPatent:         d.BrandPatent,
				Photo:               d.Photo,
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), userID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

// deleteAnimalHandler godoc
// @Summary Eliminar animal
// @Tags animals
// @Param animalID path string true "ID del animal"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {object} errorsResponse "venta en proceso"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"), userID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// assignMotherHandler godoc
// @Summary Asignar madre a una cría
// @Description La madre debe ser hembra, del mismo hato, no estar muerta/robada ni vendida.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID de la cría"
// @Param payload body assignMotherRequest true "Madre"
// @Success 200 {object} animalResponse
// @Failure 400 {object} errorsResponse "madre inválida"
// @Router /animals/{animalID}/mother [put]
func assignMotherHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req assignMotherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.AssignMother(r.Context(), chi.URLParam(r, "animalID"), userID, req.MotherID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// listForSaleHandler godoc
// @Summary Publicar animal en el marketplace
// @Tags marketplace
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body listForSaleRequest true "Precio"
// @Success 200 {object} animalResponse
// @Failure 409 {object} errorsResponse "vendido o en proceso"
// @Router /animals/{animalID}/sale [post]
func listForSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req listForSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.ListForSale(r.Context(), chi.URLParam(r, "animalID"), userID, req.Price)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// withdrawFromSaleHandler godoc
// @Summary Retirar publicación
// @Tags marketplace
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 409 {object} errorsResponse "no publicado, vendido o en proceso"
// @Router /animals/{animalID}/sale [delete]
func withdrawFromSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		a, err := svc.WithdrawFromSale(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// marketplaceHandler godoc
// @Summary Animales en venta de otros ganaderos
// @Tags marketplace
// @Produce json
// @Success 200 {array} animalResponse
// @Router /marketplace [get]
func marketplaceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := svc.Marketplace(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// reserveHandler godoc
// @Summary Iniciar compra (escrow)
// @Description Deja el animal en_proceso a nombre del comprador hasta confirmar o cancelar.
// @Tags marketplace
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 409 {object} errorsResponse "no disponible"
// @Router /marketplace/{animalID}/reserve [post]
func reserveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		a, err := svc.Reserve(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// confirmPurchaseHandler godoc
// @Summary Confirmar compra
// @Description Marca el registro del vendedor como vendido y crea el animal en el hato del comprador.
// @Tags marketplace
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse "animal del comprador"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {object} errorsResponse "estado inválido"
// @Router /marketplace/{animalID}/confirm [post]
func confirmPurchaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		a, err := svc.ConfirmPurchase(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// cancelPurchaseHandler godoc
// @Summary Cancelar compra en proceso
// @Tags marketplace
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Router /marketplace/{animalID}/cancel [post]
func cancelPurchaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		a, err := svc.CancelPurchase(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: messages(verr.Problems)})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrAlreadySold),
		errors.Is(err, ErrSaleInProcess),
		errors.Is(err, ErrNotForSale),
		errors.Is(err, ErrBadState),
		errors.Is(err, ErrDuplicateIdentification):
		writeJSON(w, http.StatusConflict, errorsResponse{Errors: []string{err.Error()}})
	case errors.Is(err, ErrMotherRequired),
		errors.Is(err, ErrMotherNotFemale),
		errors.Is(err, ErrMotherUnavailable),
		errors.Is(err, ErrMotherSold),
		errors.Is(err, ErrOwnAnimal),
		errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorsResponse{Errors: []string{err.Error()}})
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func messages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func toAnimalResponses(items []Animal) []animalResponse {
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	return out
}

func toAnimalResponse(a Animal) animalResponse {
	resp := animalResponse{
		ID:                   a.ID,
		OwnerID:              a.OwnerID,
		Name:                 a.Name,
		IdentificationNumber: a.IdentificationNumber,
		Species:              a.Species,
		Breed:                a.Breed,
		BirthDate:            a.BirthDate,
		Sex:                  a.Sex,
		Stage:                a.Stage,
		ForSale:              a.ForSale,
		SaleStatus:           a.SaleStatus,
		BuyerID:              a.BuyerID,
		Documents: documentsPayload{
			TransitPermit:       a.Documents.TransitPermit,
			SaleInvoice:         a.Documents.SaleInvoice,
			MovementCertificate: a.Documents.MovementCertificate,
			SanitaryCertificate: a.Documents.SanitaryCertificate,
			BrandPatent:         a.Documents.BrandPatent,
			Photo:               a.Documents.Photo,
		},
		DocumentsComplete: a.DocumentsComplete,
		MotherID:          a.MotherID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.SalePrice.Valid {
		p := a.SalePrice.Decimal
		resp.SalePrice = &p
	}
	return resp
}

// writeJSON está duplicado en cada módulo con handlers (animals/records/statistics),
// igual que antes: todavía no vale la pena un paquete compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
