package animals

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sex se guarda como en los registros de campo: M (macho) / H (hembra).
// @Enum M, H
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "H"
)

// SaleStatus distingue publicado, en escrow y vendido. Vacío = nunca publicado.
// @Enum en_venta, en_proceso, vendido
type SaleStatus string

const (
	SaleStatusForSale   SaleStatus = "en_venta"
	SaleStatusInProcess SaleStatus = "en_proceso"
	SaleStatusSold      SaleStatus = "vendido"
)

// Stage es texto libre (registros viejos traen cualquier cosa).
// Las comparaciones son siempre en minúsculas y por substring.
type Stage string

const (
	StageCria            Stage = "Cría"
	StageBecerra         Stage = "Becerra"
	StageBecerro         Stage = "Becerro"
	StageDestetado       Stage = "Destetado"
	StageNovillo         Stage = "Novillo"
	StageToroEngorda     Stage = "Toro de engorda"
	StageToroReproductor Stage = "Toro reproductor"
	StageVacaLechera     Stage = "Vaca lechera"
	StageVacaSeca        Stage = "Vaca seca"
	StageActivo          Stage = "Activo"
	StageMuerto          Stage = "Muerto"
	StageRobado          Stage = "Robado"
)

// Normalized devuelve la etapa recortada y en minúsculas (sin quitar acentos).
func (s Stage) Normalized() string {
	return strings.ToLower(strings.TrimSpace(string(s)))
}

// Matches indica si la etapa es igual a label o lo contiene.
func (s Stage) Matches(label Stage) bool {
	want := label.Normalized()
	if want == "" {
		return false
	}
	return strings.Contains(s.Normalized(), want)
}

func (s Stage) IsDead() bool   { return s.Matches(StageMuerto) }
func (s Stage) IsStolen() bool { return s.Matches(StageRobado) }

// IsCalf: etapas de cría; si traen madre se valida con ValidateMother.
func (s Stage) IsCalf() bool {
	return s.Matches(StageCria) || s.Matches(StageBecerra) || s.Matches(StageBecerro)
}

// Documents son referencias (URL) a los papeles del animal; solo importa su presencia.
type Documents struct {
	TransitPermit       string // guía de tránsito
	SaleInvoice         string // factura de venta
	MovementCertificate string // constancia de movilización / identificación
	SanitaryCertificate string // certificado zoosanitario
	BrandPatent         string // patente de fierro
	Photo               string
}

// Animal es la entidad central del hato.
type Animal struct {
	ID      string
	OwnerID string

	Name                 string
	IdentificationNumber string // arete, normalizado a mayúsculas
	Species              string
	Breed                string
	BirthDate            *time.Time
	Sex                  Sex
	Stage                Stage

	ForSale    bool
	SalePrice  decimal.NullDecimal
	SaleStatus SaleStatus
	BuyerID    string // comprador mientras la venta está en_proceso

	Documents         Documents
	DocumentsComplete bool

	MotherID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
