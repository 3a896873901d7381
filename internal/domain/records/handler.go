package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta vacunas y pesajes bajo el subrouter /animals.
func RegisterRoutes(ar chi.Router, svc *Service) {
	ar.Post("/{animalID}/vaccinations", createVaccinationHandler(svc))
	ar.Get("/{animalID}/vaccinations", listVaccinationsHandler(svc))

	ar.Post("/{animalID}/weights", createWeightHandler(svc))
	ar.Get("/{animalID}/weights", listWeightsHandler(svc))
}

// createVaccinationRequest es el cuerpo para registrar una vacuna.
type createVaccinationRequest struct {
	VaccineType     string `json:"vaccine_type"`
	ApplicationDate string `json:"application_date"` // YYYY-MM-DD
	NextDoseDate    string `json:"next_dose_date"`   // YYYY-MM-DD opcional
	Notes           string `json:"notes"`
}

type createWeightRequest struct {
	Weight       float64 `json:"weight"` // kg
	RecordedDate string  `json:"recorded_date"`
	Notes        string  `json:"notes"`
}

type vaccinationResponse struct {
	ID              string     `json:"id"`
	AnimalID        string     `json:"animal_id"`
	VaccineType     string     `json:"vaccine_type"`
	ApplicationDate time.Time  `json:"application_date"`
	NextDoseDate    *time.Time `json:"next_dose_date,omitempty"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
}

type weightResponse struct {
	ID           string    `json:"id"`
	AnimalID     string    `json:"animal_id"`
	Weight       float64   `json:"weight"`
	RecordedDate time.Time `json:"recorded_date"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// createVaccinationHandler godoc
// @Summary Registrar vacuna
// @Description Agrega una vacuna al historial sanitario del animal. Solo el dueño del animal.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param animalID path string true "ID del animal"
// @Param payload body createVaccinationRequest true "Vacuna; fechas YYYY-MM-DD"
// @Success 201 {object} vaccinationResponse
// @Failure 400 {string} string "invalid json / fecha inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/vaccinations [post]
func createVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req createVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		applied, err := time.Parse(dateLayout, strings.TrimSpace(req.ApplicationDate))
		if err != nil {
			http.Error(w, "application_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		var next *time.Time
		if s := strings.TrimSpace(req.NextDoseDate); s != "" {
			t, err := time.Parse(dateLayout, s)
			if err != nil {
				http.Error(w, "next_dose_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		v, err := svc.RecordVaccination(r.Context(), chi.URLParam(r, "animalID"), userID, VaccinationInput{
			VaccineType:     req.VaccineType,
			ApplicationDate: applied,
			NextDoseDate:    next,
			Notes:           req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

// listVaccinationsHandler godoc
// @Summary Historial de vacunas
// @Tags records
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} vaccinationResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/vaccinations [get]
func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListVaccinations(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createWeightHandler godoc
// @Summary Registrar pesaje
// @Tags records
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body createWeightRequest true "Peso en kg; recorded_date YYYY-MM-DD"
// @Success 201 {object} weightResponse
// @Failure 400 {string} string "invalid json / peso o fecha inválidos"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/weights [post]
func createWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req createWeightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		recorded, err := time.Parse(dateLayout, strings.TrimSpace(req.RecordedDate))
		if err != nil {
			http.Error(w, "recorded_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		wt, err := svc.RecordWeight(r.Context(), chi.URLParam(r, "animalID"), userID, WeightInput{
			Weight:       req.Weight,
			RecordedDate: recorded,
			Notes:        req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toWeightResponse(wt))
	}
}

// listWeightsHandler godoc
// @Summary Historial de pesajes
// @Tags records
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} weightResponse
// @Router /animals/{animalID}/weights [get]
func listWeightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListWeights(r.Context(), chi.URLParam(r, "animalID"), userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]weightResponse, 0, len(items))
		for _, wt := range items {
			out = append(out, toWeightResponse(wt))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

const dateLayout = "2006-01-02"

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrAnimalNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:              v.ID,
		AnimalID:        v.AnimalID,
		VaccineType:     v.VaccineType,
		ApplicationDate: v.ApplicationDate,
		NextDoseDate:    v.NextDoseDate,
		Notes:           v.Notes,
		CreatedAt:       v.CreatedAt,
	}
}

func toWeightResponse(w Weight) weightResponse {
	return weightResponse{
		ID:           w.ID,
		AnimalID:     w.AnimalID,
		Weight:       w.Weight,
		RecordedDate: w.RecordedDate,
		Notes:        w.Notes,
		CreatedAt:    w.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
