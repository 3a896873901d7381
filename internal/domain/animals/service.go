package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("animal not found")
	ErrForbidden               = errors.New("forbidden")
	ErrBadState                = errors.New("invalid sale state")
	ErrDuplicateIdentification = errors.New("ya existe un animal con ese número de identificación")
	ErrOwnAnimal               = errors.New("no puedes comprar un animal propio")
	ErrFutureBirthDate         = errors.New("la fecha de nacimiento no puede ser futura")

	// ErrSaleConflict lo devuelve Repository.UpdateSale; el service lo traduce.
	ErrSaleConflict = errors.New("sale status changed concurrently")
)

// ValidationError agrupa todos los problemas de un registro para mostrarlos juntos.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error { return e.Problems }

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name                 string
	IdentificationNumber string
	Species              string
	Breed                string
	BirthDate            *time.Time
	Sex                  string
	Stage                string
	MotherID             string
	Documents            Documents
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Animal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Animal{}, ErrInvalidInput
	}

	sex, ok := parseSex(in.Sex)
	if !ok {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:                   uuid.NewString(),
		OwnerID:              ownerID,
		Name:                 strings.TrimSpace(in.Name),
		IdentificationNumber: NormalizeIdentificationNumber(in.IdentificationNumber),
		Species:              strings.TrimSpace(in.Species),
		Breed:                strings.TrimSpace(in.Breed),
		BirthDate:            in.BirthDate,
		Sex:                  sex,
		Stage:                Stage(strings.TrimSpace(in.Stage)),
		Documents:            trimDocuments(in.Documents),
		MotherID:             strings.TrimSpace(in.MotherID),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.check(ctx, a, false); err != nil {
		return Animal{}, err
	}

	a.DocumentsComplete = DocumentsComplete(a)
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// GetOwned carga el animal y exige que pertenezca a ownerID.
func (s *Service) GetOwned(ctx context.Context, id, ownerID string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.OwnerID != ownerID {
		return Animal{}, ErrForbidden
	}
	return a, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// OptionalDate distingue "no enviado" de "enviado como null" en un PATCH.
type OptionalDate struct {
	Present bool
	Value   *time.Time
}

// DocumentsPatch: nil = no tocar, "" = quitar el documento.
type DocumentsPatch struct {
	TransitPermit       *string
	SaleInvoice         *string
	MovementCertificate *string
	SanitaryCertificate *string
	BrandPatent         *string
	Photo               *string
}

type UpdateInput struct {
	Name                 *string
	IdentificationNumber *string
	Species              *string
	Breed                *string
	Sex                  *string
	Stage                *string
	BirthDate            OptionalDate
	Documents            DocumentsPatch
}

func (s *Service) Update(ctx context.Context, id, ownerID string, in UpdateInput) (Animal, error) {
	a, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return Animal{}, err
	}
	if err := editable(a); err != nil {
		return Animal{}, err
	}
	from := a.SaleStatus

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.IdentificationNumber != nil {
		a.IdentificationNumber = NormalizeIdentificationNumber(*in.IdentificationNumber)
	}
	if in.Species != nil {
		a.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		sex, ok := parseSex(*in.Sex)
		if !ok {
			return Animal{}, ErrInvalidInput
		}
		a.Sex = sex
	}
	if in.Stage != nil {
		a.Stage = Stage(strings.TrimSpace(*in.Stage))
	}
	if in.BirthDate.Present {
		a.BirthDate = in.BirthDate.Value
	}
	applyDocuments(&a.Documents, in.Documents)

	if err := s.check(ctx, a, true); err != nil {
		return Animal{}, err
	}

	a.DocumentsComplete = DocumentsComplete(a)
	a.UpdatedAt = s.now()
	if err := s.saveSale(ctx, a, from, ErrSaleInProcess); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	a, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if a.SaleStatus == SaleStatusInProcess {
		return ErrSaleInProcess
	}
	return s.repo.Delete(ctx, a.ID)
}

// AssignMother vincula una madre a una cría. motherID vacío quita el vínculo,
// salvo que el animal sea cría (en ese caso la madre es obligatoria).
func (s *Service) AssignMother(ctx context.Context, calfID, ownerID, motherID string) (Animal, error) {
	calf, err := s.GetOwned(ctx, calfID, ownerID)
	if err != nil {
		return Animal{}, err
	}
	if err := editable(calf); err != nil {
		return Animal{}, err
	}
	from := calf.SaleStatus

	motherID = strings.TrimSpace(motherID)
	var mother *Animal
	if motherID != "" {
		m, err := s.loadMother(ctx, calf, motherID)
		if err != nil {
			return Animal{}, err
		}
		mother = &m
	}

	if err := ValidateMother(mother, calf.Stage.IsCalf()); err != nil {
		return Animal{}, err
	}

	calf.MotherID = motherID
	calf.UpdatedAt = s.now()
	if err := s.saveSale(ctx, calf, from, ErrSaleInProcess); err != nil {
		return Animal{}, err
	}
	return calf, nil
}

func (s *Service) loadMother(ctx context.Context, calf Animal, motherID string) (Animal, error) {
	if motherID == calf.ID {
		return Animal{}, ErrInvalidInput
	}
	m, err := s.repo.GetByID(ctx, motherID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Animal{}, ErrMotherRequired
		}
		return Animal{}, err
	}
	// la madre tiene que estar en el mismo hato
	if m.OwnerID != calf.OwnerID {
		return Animal{}, ErrMotherRequired
	}
	return m, nil
}

// check corre las reglas comunes a alta y edición.
func (s *Service) check(ctx context.Context, a Animal, isEdit bool) error {
	problems := ValidateAnimalComplete(a, isEdit)

	if a.BirthDate != nil && a.BirthDate.After(s.now()) {
		problems = append(problems, ErrFutureBirthDate)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}

	if err := s.ensureUniqueIdentification(ctx, a.OwnerID, a.IdentificationNumber, a.ID); err != nil {
		return err
	}

	if !isEdit && a.MotherID != "" {
		m, err := s.loadMother(ctx, a, a.MotherID)
		if err != nil {
			return err
		}
		if err := ValidateMother(&m, a.Stage.IsCalf()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ensureUniqueIdentification(ctx context.Context, ownerID, identificationNumber, selfID string) error {
	if identificationNumber == "" {
		return nil
	}
	existing, err := s.repo.FindByIdentification(ctx, ownerID, identificationNumber)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return ErrDuplicateIdentification
}

// -------------------------
// Marketplace
// -------------------------

// ListForSale publica el animal con un precio.
func (s *Service) ListForSale(ctx context.Context, id, ownerID string, price decimal.Decimal) (Animal, error) {
	a, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return Animal{}, err
	}
	if err := CanListForSale(a); err != nil {
		return Animal{}, err
	}
	if !price.IsPositive() {
		return Animal{}, ErrInvalidInput
	}

	from := a.SaleStatus
	a.ForSale = true
	a.SaleStatus = SaleStatusForSale
	a.SalePrice = decimal.NewNullDecimal(price)
	a.UpdatedAt = s.now()

	if err := s.saveSale(ctx, a, from, ErrSaleInProcess); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// WithdrawFromSale quita la publicación; solo si nadie la reservó.
func (s *Service) WithdrawFromSale(ctx context.Context, id, ownerID string) (Animal, error) {
	a, err := s.GetOwned(ctx, id, ownerID)
	if err != nil {
		return Animal{}, err
	}
	switch a.SaleStatus {
	case SaleStatusForSale:
	case SaleStatusSold:
		return Animal{}, ErrAlreadySold
	case SaleStatusInProcess:
		return Animal{}, ErrSaleInProcess
	default:
		return Animal{}, ErrNotForSale
	}

	a.ForSale = false
	a.SaleStatus = ""
	a.SalePrice = decimal.NullDecimal{}
	a.UpdatedAt = s.now()

	if err := s.saveSale(ctx, a, SaleStatusForSale, ErrSaleInProcess); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Marketplace lista lo publicado por otros dueños.
func (s *Service) Marketplace(ctx context.Context, viewerID string) ([]Animal, error) {
	items, err := s.repo.ListForSale(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Animal, 0, len(items))
	for _, a := range items {
		if a.OwnerID == viewerID || !a.ForSale {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Reserve abre el escrow: el animal queda en_proceso a nombre del comprador.
func (s *Service) Reserve(ctx context.Context, id, buyerID string) (Animal, error) {
	buyerID = strings.TrimSpace(buyerID)
	if buyerID == "" {
		return Animal{}, ErrInvalidInput
	}
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.OwnerID == buyerID {
		return Animal{}, ErrOwnAnimal
	}
	if err := CanBePurchased(a); err != nil {
		return Animal{}, err
	}

	a.SaleStatus = SaleStatusInProcess
	a.BuyerID = buyerID
	a.UpdatedAt = s.now()

	// otro comprador pudo reservar entre la lectura y la escritura
	if err := s.saveSale(ctx, a, SaleStatusForSale, ErrSaleInProcess); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// ConfirmPurchase cierra la venta (pago capturado). El registro del vendedor
// queda como vendido y el comprador recibe su propia copia del animal.
func (s *Service) ConfirmPurchase(ctx context.Context, id, buyerID string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.SaleStatus != SaleStatusInProcess {
		return Animal{}, ErrBadState
	}
	if a.BuyerID != buyerID {
		return Animal{}, ErrForbidden
	}
	if err := s.ensureUniqueIdentification(ctx, buyerID, a.IdentificationNumber, ""); err != nil {
		return Animal{}, err
	}

	now := s.now()
	reserved := a

	// primero se cierra el registro del vendedor: solo una confirmación gana
	a.ForSale = false
	a.SaleStatus = SaleStatusSold
	a.UpdatedAt = now
	if err := s.saveSale(ctx, a, SaleStatusInProcess, ErrBadState); err != nil {
		return Animal{}, err
	}

	bought := reserved
	bought.ID = uuid.NewString()
	bought.OwnerID = buyerID
	bought.ForSale = false
	bought.SalePrice = decimal.NullDecimal{}
	bought.SaleStatus = ""
	bought.BuyerID = ""
	bought.MotherID = ""
	bought.CreatedAt = now
	bought.UpdatedAt = now

	if err := s.repo.Create(ctx, bought); err != nil {
		if rbErr := s.repo.UpdateSale(ctx, reserved, SaleStatusSold); rbErr != nil {
			return Animal{}, errors.Join(err, fmt.Errorf("rollback seller record %s: %w", reserved.ID, rbErr))
		}
		return Animal{}, err
	}
	return bought, nil
}

// CancelPurchase regresa el animal a en_venta. Lo pueden cancelar comprador o vendedor.
func (s *Service) CancelPurchase(ctx context.Context, id, userID string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.SaleStatus != SaleStatusInProcess {
		return Animal{}, ErrBadState
	}
	if userID == "" || (userID != a.BuyerID && userID != a.OwnerID) {
		return Animal{}, ErrForbidden
	}

	a.SaleStatus = SaleStatusForSale
	a.ForSale = true
	a.BuyerID = ""
	a.UpdatedAt = s.now()

	if err := s.saveSale(ctx, a, SaleStatusInProcess, ErrBadState); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// helpers

// saveSale escribe con UpdateSale y convierte la carrera perdida en lost.
func (s *Service) saveSale(ctx context.Context, a Animal, from SaleStatus, lost error) error {
	err := s.repo.UpdateSale(ctx, a, from)
	if errors.Is(err, ErrSaleConflict) {
		return lost
	}
	return err
}

// editable: un animal reservado o vendido ya no se edita.
func editable(a Animal) error {
	switch a.SaleStatus {
	case SaleStatusInProcess:
		return ErrSaleInProcess
	case SaleStatusSold:
		return ErrAlreadySold
	}
	return nil
}

func parseSex(raw string) (Sex, bool) {
	switch Sex(strings.ToUpper(strings.TrimSpace(raw))) {
	case SexMale:
		return SexMale, true
	case SexFemale:
		return SexFemale, true
	default:
		return "", false
	}
}

func trimDocuments(d Documents) Documents {
	return Documents{
		TransitPermit:       strings.TrimSpace(d.TransitPermit),
		SaleInvoice:         strings.TrimSpace(d.SaleInvoice),
		MovementCertificate: strings.TrimSpace(d.MovementCertificate),
		SanitaryCertificate: strings.TrimSpace(d.SanitaryCertificate),
		BrandPatent:         strings.TrimSpace(d.BrandPatent),
		Photo:               strings.TrimSpace(d.Photo),
	}
}

func applyDocuments(d *Documents, p DocumentsPatch) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&d.TransitPermit, p.TransitPermit)
	set(&d.SaleInvoice, p.SaleInvoice)
	set(&d.MovementCertificate, p.MovementCertificate)
	set(&d.SanitaryCertificate, p.SanitaryCertificate)
	set(&d.BrandPatent, p.BrandPatent)
	set(&d.Photo, p.Photo)
}
