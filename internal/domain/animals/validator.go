package animals

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Reglas puras sobre un Animal. No hacen I/O ni guardan estado: el caller decide
// si bloquea la escritura según el error devuelto (nil = válido).

var (
	ErrAlreadySold   = errors.New("el animal ya fue vendido")
	ErrSaleInProcess = errors.New("el animal tiene una venta en proceso")
	ErrNotForSale    = errors.New("el animal no está publicado para venta")

	ErrMotherRequired    = errors.New("una cría requiere una madre registrada")
	ErrMotherNotFemale   = errors.New("la madre debe ser hembra")
	ErrMotherUnavailable = errors.New("la madre no está disponible (muerta o robada)")
	ErrMotherSold        = errors.New("la madre ya fue vendida")

	ErrTagFormat = errors.New("número de identificación inválido")
)

const (
	TagPattern = "XXX-NNNNNN-NNNNN"
	TagExample = "MEX-123456-00001"
)

var tagFormat = regexp.MustCompile(`^[A-Z]{3}-[0-9]{6}-[0-9]{5}$`)

// CanListForSale: no se puede publicar algo vendido o con venta en curso.
func CanListForSale(a Animal) error {
	switch a.SaleStatus {
	case SaleStatusSold:
		return ErrAlreadySold
	case SaleStatusInProcess:
		return ErrSaleInProcess
	}
	return nil
}

// CanBePurchased exige publicación activa y sin venta en curso.
func CanBePurchased(a Animal) error {
	if !a.ForSale {
		return ErrNotForSale
	}
	switch a.SaleStatus {
	case SaleStatusSold:
		return ErrAlreadySold
	case SaleStatusInProcess:
		return ErrSaleInProcess
	}
	return nil
}

// DocumentsComplete solo revisa presencia (no vacío) de los cinco documentos + foto.
func DocumentsComplete(a Animal) bool {
	d := a.Documents
	for _, v := range []string{
		d.TransitPermit,
		d.SaleInvoice,
		d.MovementCertificate,
		d.SanitaryCertificate,
		d.BrandPatent,
		d.Photo,
	} {
		if v == "" {
			return false
		}
	}
	return true
}

// ValidateMother valida la madre asignada a una cría. Si no es cría, no aplica.
func ValidateMother(mother *Animal, isCalf bool) error {
	if !isCalf {
		return nil
	}
	if mother == nil {
		return ErrMotherRequired
	}
	if mother.Sex != SexFemale {
		return ErrMotherNotFemale
	}
	if mother.Stage.IsDead() || mother.Stage.IsStolen() {
		return ErrMotherUnavailable
	}
	if mother.SaleStatus == SaleStatusSold {
		return ErrMotherSold
	}
	return nil
}

// NormalizeIdentificationNumber recorta y pasa a mayúsculas.
func NormalizeIdentificationNumber(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateTagFormat valida el formato de arete XXX-NNNNNN-NNNNN tras normalizar.
func ValidateTagFormat(raw string) error {
	if !tagFormat.MatchString(NormalizeIdentificationNumber(raw)) {
		return fmt.Errorf("%w: el formato esperado es %s (ej. %s)", ErrTagFormat, TagPattern, TagExample)
	}
	return nil
}

// ValidateIdentificationNumber: el campo es opcional. Vacío o solo espacios
// cuenta como ausente.
func ValidateIdentificationNumber(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return ValidateTagFormat(raw)
}

// ValidateAnimalComplete junta todos los errores de formato del registro.
// isEdit todavía no cambia nada; queda para reglas propias de edición.
func ValidateAnimalComplete(a Animal, isEdit bool) []error {
	var errs []error
	if a.IdentificationNumber != "" {
		if err := ValidateIdentificationNumber(a.IdentificationNumber); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
